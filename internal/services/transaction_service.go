package services

import (
	"context"
	"strings"
	"time"

	"github.com/terraincognita07/finora/internal/db"
	"github.com/terraincognita07/finora/internal/models"
)

type TransactionRepository interface {
	List(ctx context.Context, userID uint, filter db.TransactionFilter) ([]models.Transaction, error)
	Create(ctx context.Context, transaction *models.Transaction) error
	Delete(ctx context.Context, userID uint, transactionID string) (bool, error)
}

type AccountFinder interface {
	FindByID(ctx context.Context, userID uint, accountID string) (models.Account, bool, error)
}

type CategoryFinder interface {
	FindByID(ctx context.Context, userID uint, categoryID string) (models.Category, bool, error)
}

type TransactionQuery struct {
	From       string
	To         string
	AccountID  string
	CategoryID string
}

type TransactionInput struct {
	AccountID   string `json:"account_id"`
	CategoryID  string `json:"category_id"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

type TransactionService struct {
	transactions TransactionRepository
	accounts     AccountFinder
	categories   CategoryFinder
	location     *time.Location
	now          func() time.Time
}

func NewTransactionService(transactions TransactionRepository, accounts AccountFinder, categories CategoryFinder, location *time.Location) *TransactionService {
	if location == nil {
		location = time.Local
	}
	return &TransactionService{
		transactions: transactions,
		accounts:     accounts,
		categories:   categories,
		location:     location,
		now:          time.Now,
	}
}

func (service *TransactionService) List(ctx context.Context, userID uint, query TransactionQuery) ([]models.Transaction, error) {
	filter := db.TransactionFilter{
		AccountID:  strings.TrimSpace(query.AccountID),
		CategoryID: strings.TrimSpace(query.CategoryID),
	}
	if strings.TrimSpace(query.From) != "" {
		from, err := ParseCalendarDate(query.From)
		if err != nil {
			return nil, err
		}
		filter.From = &from
	}
	if strings.TrimSpace(query.To) != "" {
		to, err := ParseCalendarDate(query.To)
		if err != nil {
			return nil, err
		}
		filter.To = &to
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, ErrInvalidDate
	}
	return service.transactions.List(ctx, userID, filter)
}

func (service *TransactionService) Recent(ctx context.Context, userID uint, limit int) ([]models.Transaction, error) {
	return service.transactions.List(ctx, userID, db.TransactionFilter{Limit: limit})
}

// Create books a manual transaction. The amount sign follows the category
// type, so callers always send a positive magnitude.
func (service *TransactionService) Create(ctx context.Context, userID uint, input TransactionInput) (models.Transaction, error) {
	account, category, err := resolveAccountAndCategory(ctx, service.accounts, service.categories, userID, input.AccountID, input.CategoryID)
	if err != nil {
		return models.Transaction{}, err
	}
	magnitude, err := ParsePositiveAmount(input.Amount)
	if err != nil {
		return models.Transaction{}, err
	}

	date := CalendarDate(service.now(), service.location)
	if strings.TrimSpace(input.Date) != "" {
		date, err = ParseCalendarDate(input.Date)
		if err != nil {
			return models.Transaction{}, err
		}
	}

	transaction := models.Transaction{
		UserID:      userID,
		AccountID:   account.ID,
		CategoryID:  category.ID,
		Amount:      SignedAmount(magnitude, category.Type),
		Description: strings.TrimSpace(input.Description),
		Date:        date,
	}
	if err := service.transactions.Create(ctx, &transaction); err != nil {
		return models.Transaction{}, err
	}
	return transaction, nil
}

func (service *TransactionService) Delete(ctx context.Context, userID uint, transactionID string) error {
	deleted, err := service.transactions.Delete(ctx, userID, transactionID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTransactionNotFound
	}
	return nil
}

func resolveAccountAndCategory(ctx context.Context, accounts AccountFinder, categories CategoryFinder, userID uint, accountID string, categoryID string) (models.Account, models.Category, error) {
	account, found, err := accounts.FindByID(ctx, userID, strings.TrimSpace(accountID))
	if err != nil {
		return models.Account{}, models.Category{}, err
	}
	if !found {
		return models.Account{}, models.Category{}, ErrAccountNotFound
	}

	category, found, err := categories.FindByID(ctx, userID, strings.TrimSpace(categoryID))
	if err != nil {
		return models.Account{}, models.Category{}, err
	}
	if !found {
		return models.Account{}, models.Category{}, ErrCategoryNotFound
	}
	return account, category, nil
}
