package services

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidFrequency = errors.New("invalid frequency")

type Frequency string

const (
	FrequencyDaily    Frequency = "daily"
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
	FrequencyYearly   Frequency = "yearly"
)

func Frequencies() []Frequency {
	return []Frequency{FrequencyDaily, FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly, FrequencyYearly}
}

// ParseFrequency validates user input at the rule boundary. Only the closed
// set of frequencies is accepted here; Advance keeps a monthly fallback for
// rows written before validation existed.
func ParseFrequency(raw string) (Frequency, error) {
	candidate := Frequency(strings.ToLower(strings.TrimSpace(raw)))
	for _, frequency := range Frequencies() {
		if candidate == frequency {
			return frequency, nil
		}
	}
	return "", ErrInvalidFrequency
}

// Advance returns the occurrence that follows date for the given frequency.
// Month and year steps clamp to the last day of the target month, so Jan 31
// advances to Feb 28 (or 29) rather than overflowing into March.
func Advance(date time.Time, frequency Frequency) time.Time {
	switch frequency {
	case FrequencyDaily:
		return date.AddDate(0, 0, 1)
	case FrequencyWeekly:
		return date.AddDate(0, 0, 7)
	case FrequencyBiweekly:
		return date.AddDate(0, 0, 14)
	case FrequencyMonthly:
		return addMonthsClamped(date, 1)
	case FrequencyYearly:
		return addMonthsClamped(date, 12)
	default:
		return addMonthsClamped(date, 1)
	}
}

func addMonthsClamped(date time.Time, months int) time.Time {
	year, month, day := date.Date()
	hour, minute, second := date.Clock()

	firstOfTarget := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, date.Location())
	if last := daysIn(firstOfTarget.Year(), firstOfTarget.Month(), date.Location()); day > last {
		day = last
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, hour, minute, second, date.Nanosecond(), date.Location())
}

func daysIn(year int, month time.Month, location *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, location).Day()
}
