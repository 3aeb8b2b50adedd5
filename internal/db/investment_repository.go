package db

import (
	"context"

	"github.com/terraincognita07/finora/internal/models"
	"gorm.io/gorm"
)

type InvestmentRepository struct {
	database *gorm.DB
}

func NewInvestmentRepository(database *gorm.DB) *InvestmentRepository {
	return &InvestmentRepository{database: database}
}

func (repo *InvestmentRepository) ListByUser(ctx context.Context, userID uint) ([]models.Investment, error) {
	investments := make([]models.Investment, 0)
	if err := repo.database.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("symbol ASC, created_at ASC").
		Find(&investments).Error; err != nil {
		return nil, err
	}
	return investments, nil
}

func (repo *InvestmentRepository) FindByID(ctx context.Context, userID uint, investmentID string) (models.Investment, bool, error) {
	var investment models.Investment
	result := repo.database.WithContext(ctx).
		Where("id = ? AND user_id = ?", investmentID, userID).
		Limit(1).
		Find(&investment)
	if result.Error != nil {
		return models.Investment{}, false, result.Error
	}
	return investment, result.RowsAffected > 0, nil
}

func (repo *InvestmentRepository) Create(ctx context.Context, investment *models.Investment) error {
	return repo.database.WithContext(ctx).Create(investment).Error
}

func (repo *InvestmentRepository) Save(ctx context.Context, investment *models.Investment) error {
	return repo.database.WithContext(ctx).Save(investment).Error
}

func (repo *InvestmentRepository) Delete(ctx context.Context, userID uint, investmentID string) (bool, error) {
	result := repo.database.WithContext(ctx).
		Where("id = ? AND user_id = ?", investmentID, userID).
		Delete(&models.Investment{})
	return result.RowsAffected > 0, result.Error
}
