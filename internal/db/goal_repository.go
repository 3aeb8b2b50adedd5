package db

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/terraincognita07/finora/internal/models"
	"gorm.io/gorm"
)

type GoalRepository struct {
	database *gorm.DB
}

func NewGoalRepository(database *gorm.DB) *GoalRepository {
	return &GoalRepository{database: database}
}

func (repo *GoalRepository) ListByUser(ctx context.Context, userID uint) ([]models.Goal, error) {
	goals := make([]models.Goal, 0)
	if err := repo.database.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_pinned DESC, created_at ASC").
		Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

func (repo *GoalRepository) FindByID(ctx context.Context, userID uint, goalID string) (models.Goal, bool, error) {
	return findGoal(repo.database.WithContext(ctx), userID, goalID)
}

func (repo *GoalRepository) Create(ctx context.Context, goal *models.Goal) error {
	return repo.database.WithContext(ctx).Create(goal).Error
}

func (repo *GoalRepository) Save(ctx context.Context, goal *models.Goal) error {
	return repo.database.WithContext(ctx).Save(goal).Error
}

// AdjustCurrentAmount reads the saved amount, applies adjust and stores the
// result in one transaction. An error from adjust aborts without writing.
func (repo *GoalRepository) AdjustCurrentAmount(ctx context.Context, userID uint, goalID string, adjust func(decimal.Decimal) (decimal.Decimal, error)) (models.Goal, bool, error) {
	var updated models.Goal
	var found bool
	err := repo.database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		goal, ok, err := findGoal(tx, userID, goalID)
		if err != nil || !ok {
			return err
		}
		next, err := adjust(goal.CurrentAmount)
		if err != nil {
			return err
		}
		if err := tx.Model(&models.Goal{}).
			Where("id = ? AND user_id = ?", goalID, userID).
			Update("current_amount", next).Error; err != nil {
			return err
		}
		goal.CurrentAmount = next
		updated, found = goal, true
		return nil
	})
	if err != nil {
		return models.Goal{}, false, err
	}
	return updated, found, nil
}

// SetPinned pins goalID and unpins every other goal of the user, or unpins
// goalID alone when pinned is false. At most one goal per user is pinned.
func (repo *GoalRepository) SetPinned(ctx context.Context, userID uint, goalID string, pinned bool) (bool, error) {
	var found bool
	err := repo.database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, ok, err := findGoal(tx, userID, goalID); err != nil || !ok {
			return err
		}
		found = true
		if pinned {
			if err := tx.Model(&models.Goal{}).
				Where("user_id = ? AND is_pinned = ? AND id <> ?", userID, true, goalID).
				Update("is_pinned", false).Error; err != nil {
				return err
			}
		}
		return tx.Model(&models.Goal{}).
			Where("id = ? AND user_id = ?", goalID, userID).
			Update("is_pinned", pinned).Error
	})
	return found, err
}

func (repo *GoalRepository) Delete(ctx context.Context, userID uint, goalID string) (bool, error) {
	result := repo.database.WithContext(ctx).
		Where("id = ? AND user_id = ?", goalID, userID).
		Delete(&models.Goal{})
	return result.RowsAffected > 0, result.Error
}

func findGoal(database *gorm.DB, userID uint, goalID string) (models.Goal, bool, error) {
	var goal models.Goal
	result := database.
		Where("id = ? AND user_id = ?", goalID, userID).
		Limit(1).
		Find(&goal)
	if result.Error != nil {
		return models.Goal{}, false, result.Error
	}
	return goal, result.RowsAffected > 0, nil
}
