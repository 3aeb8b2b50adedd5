package db

import (
	"context"

	"github.com/terraincognita07/finora/internal/models"
	"gorm.io/gorm"
)

type AccountRepository struct {
	database *gorm.DB
}

func NewAccountRepository(database *gorm.DB) *AccountRepository {
	return &AccountRepository{database: database}
}

func (repo *AccountRepository) ListByUser(ctx context.Context, userID uint) ([]models.Account, error) {
	accounts := make([]models.Account, 0)
	if err := repo.database.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, name ASC").
		Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

func (repo *AccountRepository) FindByID(ctx context.Context, userID uint, accountID string) (models.Account, bool, error) {
	var account models.Account
	result := repo.database.WithContext(ctx).
		Where("id = ? AND user_id = ?", accountID, userID).
		Limit(1).
		Find(&account)
	if result.Error != nil {
		return models.Account{}, false, result.Error
	}
	return account, result.RowsAffected > 0, nil
}

func (repo *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	return repo.database.WithContext(ctx).Create(account).Error
}

func (repo *AccountRepository) Save(ctx context.Context, account *models.Account) error {
	return repo.database.WithContext(ctx).Save(account).Error
}

func (repo *AccountRepository) Delete(ctx context.Context, userID uint, accountID string) (bool, error) {
	result := repo.database.WithContext(ctx).
		Where("id = ? AND user_id = ?", accountID, userID).
		Delete(&models.Account{})
	return result.RowsAffected > 0, result.Error
}
