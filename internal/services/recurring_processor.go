package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/terraincognita07/finora/internal/lock"
	"github.com/terraincognita07/finora/internal/models"
	"gorm.io/gorm"
)

const DefaultRecurringDescription = "Recurring payment"

type RecurringStore interface {
	ListDue(ctx context.Context, userID uint, asOf time.Time) ([]models.RecurringRule, error)
	MaterializeOccurrence(ctx context.Context, transaction *models.Transaction, nextDue time.Time) error
	UpdateNextDueDate(ctx context.Context, ruleID string, nextDue time.Time) error
}

type ReconcileResult struct {
	Processed int      `json:"processed"`
	Errors    []string `json:"errors"`
}

func emptyReconcileResult() ReconcileResult {
	return ReconcileResult{Processed: 0, Errors: []string{}}
}

// RecurringProcessor materializes every due occurrence of a user's recurring
// rules, catching up on any backlog since the rule's cursor.
type RecurringProcessor struct {
	rules    RecurringStore
	locker   lock.Locker
	location *time.Location
	now      func() time.Time
}

func NewRecurringProcessor(rules RecurringStore, locker lock.Locker, location *time.Location) *RecurringProcessor {
	if locker == nil {
		locker = lock.NewMemory()
	}
	if location == nil {
		location = time.Local
	}
	return &RecurringProcessor{
		rules:    rules,
		locker:   locker,
		location: location,
		now:      time.Now,
	}
}

// Reconcile never fails: missing identity, missing session, a reconciliation
// already running for the user and an empty backlog all yield an empty result,
// and every per-rule failure is reported in Errors.
func (processor *RecurringProcessor) Reconcile(ctx context.Context, sessions SessionProvider, userID uint) ReconcileResult {
	if userID == 0 || sessions == nil {
		return emptyReconcileResult()
	}

	session, err := sessions.CurrentSession(ctx)
	if err != nil || !session.ActiveAt(processor.now()) || session.UserID != userID {
		return emptyReconcileResult()
	}

	release, err := processor.locker.TryLock(ctx, fmt.Sprintf("reconcile:user:%d", userID))
	switch {
	case errors.Is(err, lock.ErrNotAcquired):
		return emptyReconcileResult()
	case err != nil:
		log.Printf("recurring: lock for user %d unavailable, continuing unlocked: %v", userID, err)
	default:
		defer release()
	}

	today := CalendarDate(processor.now(), processor.location)
	due, err := processor.rules.ListDue(ctx, userID, today)
	if err != nil {
		if !hasDiagnostic(err) {
			return emptyReconcileResult()
		}
		log.Printf("recurring: fetch due rules for user %d failed: %v", userID, err)
		return ReconcileResult{Processed: 0, Errors: []string{err.Error()}}
	}

	result := emptyReconcileResult()
	for _, rule := range due {
		ruleErrors, ok := processor.catchUp(ctx, rule, today)
		result.Errors = append(result.Errors, ruleErrors...)
		if ok {
			result.Processed++
		}
	}

	for _, message := range result.Errors {
		log.Printf("recurring: user %d: %s", userID, message)
	}
	return result
}

// catchUp inserts one transaction per occurrence from the rule cursor up to
// and including today. An insert failure stops this rule without skipping the
// failed occurrence; the cursor is persisted afterwards in every case.
func (processor *RecurringProcessor) catchUp(ctx context.Context, rule models.RecurringRule, today time.Time) (ruleErrors []string, ok bool) {
	defer func() {
		if recovered := recover(); recovered != nil {
			ruleErrors = append(ruleErrors, fmt.Sprintf("Error processing rule %s: %v", rule.ID, recovered))
			ok = false
		}
	}()

	frequency := Frequency(rule.Frequency)
	cursor := CalendarDate(rule.NextDueDate, time.UTC)
	for !cursor.After(today) {
		next := Advance(cursor, frequency)
		occurrence := occurrenceFromRule(rule, cursor)
		if err := processor.rules.MaterializeOccurrence(ctx, &occurrence, next); err != nil {
			ruleErrors = append(ruleErrors, fmt.Sprintf("Error processing rule %s: %s", rule.ID, errorMessage(err)))
			break
		}
		cursor = next
	}

	if err := processor.rules.UpdateNextDueDate(ctx, rule.ID, cursor); err != nil {
		return append(ruleErrors, fmt.Sprintf("Error updating rule %s: %s", rule.ID, errorMessage(err))), false
	}
	return ruleErrors, true
}

func occurrenceFromRule(rule models.RecurringRule, date time.Time) models.Transaction {
	description := strings.TrimSpace(rule.Description)
	if description == "" {
		description = DefaultRecurringDescription
	}
	ruleID := rule.ID
	return models.Transaction{
		UserID:          rule.UserID,
		AccountID:       rule.AccountID,
		CategoryID:      rule.CategoryID,
		Amount:          rule.Amount,
		Description:     description,
		Date:            date,
		IsRecurring:     true,
		RecurringRuleID: &ruleID,
	}
}

// hasDiagnostic reports whether a storage error carries real content. Empty
// and not-found errors mean "nothing to do" for the processor.
func hasDiagnostic(err error) bool {
	if err == nil || errors.Is(err, gorm.ErrRecordNotFound) {
		return false
	}
	return strings.TrimSpace(err.Error()) != ""
}

func errorMessage(err error) string {
	if message := strings.TrimSpace(err.Error()); message != "" {
		return message
	}
	return "unknown error"
}
