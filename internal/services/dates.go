package services

import (
	"errors"
	"strings"
	"time"
)

const CalendarDateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date")

// CalendarDate maps an instant to the calendar day it falls on in location.
// Calendar days are stored as UTC midnight so comparisons ignore time of day.
func CalendarDate(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	year, month, day := value.In(location).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func ParseCalendarDate(raw string) (time.Time, error) {
	parsed, err := time.Parse(CalendarDateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return parsed, nil
}

// CustomMonthRange returns the first and last calendar day of the budget month
// containing date, for months that begin on startDay. A start day past the end
// of a short month begins that period on the month's last day.
func CustomMonthRange(date time.Time, startDay int) (time.Time, time.Time) {
	if startDay < 1 {
		startDay = 1
	}
	if startDay > 31 {
		startDay = 31
	}

	year, month, day := date.Date()
	periodStart := periodStartIn(year, month, startDay, date.Location())
	if day < periodStart.Day() {
		previous := time.Date(year, month-1, 1, 0, 0, 0, 0, date.Location())
		periodStart = periodStartIn(previous.Year(), previous.Month(), startDay, date.Location())
	}

	following := time.Date(periodStart.Year(), periodStart.Month()+1, 1, 0, 0, 0, 0, date.Location())
	periodEnd := periodStartIn(following.Year(), following.Month(), startDay, date.Location()).AddDate(0, 0, -1)
	return periodStart, periodEnd
}

func periodStartIn(year int, month time.Month, startDay int, location *time.Location) time.Time {
	if last := daysIn(year, month, location); startDay > last {
		startDay = last
	}
	return time.Date(year, month, startDay, 0, 0, 0, 0, location)
}
