package db

import (
	"context"

	"github.com/terraincognita07/finora/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BudgetRepository struct {
	database *gorm.DB
}

func NewBudgetRepository(database *gorm.DB) *BudgetRepository {
	return &BudgetRepository{database: database}
}

func (repo *BudgetRepository) ListByUser(ctx context.Context, userID uint) ([]models.Budget, error) {
	budgets := make([]models.Budget, 0)
	if err := repo.database.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&budgets).Error; err != nil {
		return nil, err
	}
	return budgets, nil
}

// Upsert creates the budget or replaces the limit of the existing budget for
// the same category.
func (repo *BudgetRepository) Upsert(ctx context.Context, budget *models.Budget) error {
	return repo.database.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "category_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount_limit", "period", "updated_at"}),
	}).Create(budget).Error
}

func (repo *BudgetRepository) FindByCategory(ctx context.Context, userID uint, categoryID string) (models.Budget, bool, error) {
	var budget models.Budget
	result := repo.database.WithContext(ctx).
		Where("user_id = ? AND category_id = ?", userID, categoryID).
		Limit(1).
		Find(&budget)
	if result.Error != nil {
		return models.Budget{}, false, result.Error
	}
	return budget, result.RowsAffected > 0, nil
}

func (repo *BudgetRepository) Delete(ctx context.Context, userID uint, budgetID string) (bool, error) {
	result := repo.database.WithContext(ctx).
		Where("id = ? AND user_id = ?", budgetID, userID).
		Delete(&models.Budget{})
	return result.RowsAffected > 0, result.Error
}
