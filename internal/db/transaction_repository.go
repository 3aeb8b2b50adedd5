package db

import (
	"context"
	"time"

	"github.com/terraincognita07/finora/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TransactionFilter struct {
	From       *time.Time
	To         *time.Time
	AccountID  string
	CategoryID string
	Limit      int
}

type TransactionRepository struct {
	database *gorm.DB
}

func NewTransactionRepository(database *gorm.DB) *TransactionRepository {
	return &TransactionRepository{database: database}
}

func (repo *TransactionRepository) List(ctx context.Context, userID uint, filter TransactionFilter) ([]models.Transaction, error) {
	query := repo.database.WithContext(ctx).Model(&models.Transaction{}).Where("user_id = ?", userID)
	if filter.From != nil {
		query = query.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("date <= ?", *filter.To)
	}
	if filter.AccountID != "" {
		query = query.Where("account_id = ?", filter.AccountID)
	}
	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	transactions := make([]models.Transaction, 0)
	if err := query.Order("date DESC, created_at DESC").Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}

func (repo *TransactionRepository) ListByRule(ctx context.Context, ruleID string) ([]models.Transaction, error) {
	transactions := make([]models.Transaction, 0)
	if err := repo.database.WithContext(ctx).
		Where("recurring_rule_id = ?", ruleID).
		Order("date ASC").
		Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}

func (repo *TransactionRepository) Create(ctx context.Context, transaction *models.Transaction) error {
	return repo.database.WithContext(ctx).Create(transaction).Error
}

// CreateOccurrence inserts a materialized recurring occurrence. A row that
// already exists for the same rule and date is left untouched.
func (repo *TransactionRepository) CreateOccurrence(ctx context.Context, transaction *models.Transaction) error {
	return createOccurrence(repo.database.WithContext(ctx), transaction)
}

func createOccurrence(database *gorm.DB, transaction *models.Transaction) error {
	return database.Clauses(clause.OnConflict{DoNothing: true}).Create(transaction).Error
}

func (repo *TransactionRepository) Delete(ctx context.Context, userID uint, transactionID string) (bool, error) {
	result := repo.database.WithContext(ctx).
		Where("id = ? AND user_id = ?", transactionID, userID).
		Delete(&models.Transaction{})
	return result.RowsAffected > 0, result.Error
}
