package db

import (
	"context"
	"time"

	"github.com/terraincognita07/finora/internal/models"
	"gorm.io/gorm"
)

type RecurringRuleRepository struct {
	database *gorm.DB
}

func NewRecurringRuleRepository(database *gorm.DB) *RecurringRuleRepository {
	return &RecurringRuleRepository{database: database}
}

// ListDue returns the active rules of a user whose cursor is on or before asOf.
func (repo *RecurringRuleRepository) ListDue(ctx context.Context, userID uint, asOf time.Time) ([]models.RecurringRule, error) {
	rules := make([]models.RecurringRule, 0)
	if err := repo.database.WithContext(ctx).
		Where("user_id = ? AND active = ? AND next_due_date <= ?", userID, true, asOf).
		Order("next_due_date ASC, id ASC").
		Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

func (repo *RecurringRuleRepository) ListByUser(ctx context.Context, userID uint) ([]models.RecurringRule, error) {
	rules := make([]models.RecurringRule, 0)
	if err := repo.database.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("active DESC, next_due_date ASC").
		Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

func (repo *RecurringRuleRepository) FindByID(ctx context.Context, userID uint, ruleID string) (models.RecurringRule, bool, error) {
	var rule models.RecurringRule
	result := repo.database.WithContext(ctx).
		Where("id = ? AND user_id = ?", ruleID, userID).
		Limit(1).
		Find(&rule)
	if result.Error != nil {
		return models.RecurringRule{}, false, result.Error
	}
	return rule, result.RowsAffected > 0, nil
}

func (repo *RecurringRuleRepository) Create(ctx context.Context, rule *models.RecurringRule) error {
	return repo.database.WithContext(ctx).Create(rule).Error
}

func (repo *RecurringRuleRepository) UpdateByID(ctx context.Context, userID uint, ruleID string, updates map[string]any) (bool, error) {
	result := repo.database.WithContext(ctx).Model(&models.RecurringRule{}).
		Where("id = ? AND user_id = ?", ruleID, userID).
		Updates(updates)
	return result.RowsAffected > 0, result.Error
}

// UpdateNextDueDate moves the cursor forward. It never moves it backward, so a
// slower concurrent writer cannot rewind a cursor another caller advanced.
func (repo *RecurringRuleRepository) UpdateNextDueDate(ctx context.Context, ruleID string, nextDue time.Time) error {
	return advanceCursor(repo.database.WithContext(ctx), ruleID, nextDue)
}

// MaterializeOccurrence inserts one occurrence and advances the rule cursor to
// nextDue in a single database transaction.
func (repo *RecurringRuleRepository) MaterializeOccurrence(ctx context.Context, transaction *models.Transaction, nextDue time.Time) error {
	return repo.database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := createOccurrence(tx, transaction); err != nil {
			return err
		}
		return advanceCursor(tx, *transaction.RecurringRuleID, nextDue)
	})
}

func advanceCursor(database *gorm.DB, ruleID string, nextDue time.Time) error {
	return database.Model(&models.RecurringRule{}).
		Where("id = ? AND next_due_date <= ?", ruleID, nextDue).
		Update("next_due_date", nextDue).Error
}

// Delete removes the rule. Transactions it generated survive with their
// back-reference cleared.
func (repo *RecurringRuleRepository) Delete(ctx context.Context, userID uint, ruleID string) (bool, error) {
	deleted := false
	err := repo.database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Transaction{}).
			Where("user_id = ? AND recurring_rule_id = ?", userID, ruleID).
			Update("recurring_rule_id", nil).Error; err != nil {
			return err
		}
		result := tx.Where("id = ? AND user_id = ?", ruleID, userID).Delete(&models.RecurringRule{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	return deleted, err
}
