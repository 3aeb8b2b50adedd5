package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/terraincognita07/finora/internal/db"
	"github.com/terraincognita07/finora/internal/models"
)

type stubAccounts struct {
	accounts []models.Account
}

func (stub *stubAccounts) ListByUser(_ context.Context, userID uint) ([]models.Account, error) {
	result := make([]models.Account, 0)
	for _, account := range stub.accounts {
		if account.UserID == userID {
			result = append(result, account)
		}
	}
	return result, nil
}

func (stub *stubAccounts) FindByID(_ context.Context, userID uint, accountID string) (models.Account, bool, error) {
	for _, account := range stub.accounts {
		if account.UserID == userID && account.ID == accountID {
			return account, true, nil
		}
	}
	return models.Account{}, false, nil
}

func (stub *stubAccounts) Create(_ context.Context, account *models.Account) error {
	if account.ID == "" {
		account.ID = "account-" + account.Name
	}
	stub.accounts = append(stub.accounts, *account)
	return nil
}

func (stub *stubAccounts) Save(_ context.Context, account *models.Account) error {
	for index := range stub.accounts {
		if stub.accounts[index].ID == account.ID {
			stub.accounts[index] = *account
			return nil
		}
	}
	return errors.New("not found")
}

func (stub *stubAccounts) Delete(_ context.Context, userID uint, accountID string) (bool, error) {
	for index, account := range stub.accounts {
		if account.UserID == userID && account.ID == accountID {
			stub.accounts = append(stub.accounts[:index], stub.accounts[index+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type stubCategories struct {
	categories []models.Category
	references map[string]int64
	batchCalls int
}

func (stub *stubCategories) ListByUser(_ context.Context, userID uint) ([]models.Category, error) {
	result := make([]models.Category, 0)
	for _, category := range stub.categories {
		if category.UserID == userID {
			result = append(result, category)
		}
	}
	return result, nil
}

func (stub *stubCategories) CountByUser(ctx context.Context, userID uint) (int64, error) {
	categories, _ := stub.ListByUser(ctx, userID)
	return int64(len(categories)), nil
}

func (stub *stubCategories) FindByID(_ context.Context, userID uint, categoryID string) (models.Category, bool, error) {
	for _, category := range stub.categories {
		if category.UserID == userID && category.ID == categoryID {
			return category, true, nil
		}
	}
	return models.Category{}, false, nil
}

func (stub *stubCategories) Create(_ context.Context, category *models.Category) error {
	if category.ID == "" {
		category.ID = "category-" + category.Name
	}
	stub.categories = append(stub.categories, *category)
	return nil
}

func (stub *stubCategories) CreateBatch(ctx context.Context, categories []models.Category) error {
	stub.batchCalls++
	for index := range categories {
		if err := stub.Create(ctx, &categories[index]); err != nil {
			return err
		}
	}
	return nil
}

func (stub *stubCategories) CountReferences(_ context.Context, _ uint, categoryID string) (int64, error) {
	return stub.references[categoryID], nil
}

func (stub *stubCategories) Delete(_ context.Context, userID uint, categoryID string) (bool, error) {
	for index, category := range stub.categories {
		if category.UserID == userID && category.ID == categoryID {
			stub.categories = append(stub.categories[:index], stub.categories[index+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type stubTransactions struct {
	transactions []models.Transaction
	filters      []db.TransactionFilter
	onList       func()
}

func (stub *stubTransactions) List(_ context.Context, userID uint, filter db.TransactionFilter) ([]models.Transaction, error) {
	stub.filters = append(stub.filters, filter)
	if stub.onList != nil {
		stub.onList()
	}

	result := make([]models.Transaction, 0)
	for _, transaction := range stub.transactions {
		if transaction.UserID != userID {
			continue
		}
		if filter.From != nil && transaction.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && transaction.Date.After(*filter.To) {
			continue
		}
		if filter.AccountID != "" && transaction.AccountID != filter.AccountID {
			continue
		}
		if filter.CategoryID != "" && transaction.CategoryID != filter.CategoryID {
			continue
		}
		result = append(result, transaction)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date.After(result[j].Date)
	})
	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

func (stub *stubTransactions) Create(_ context.Context, transaction *models.Transaction) error {
	if transaction.ID == "" {
		transaction.ID = "transaction-" + transaction.Date.Format(CalendarDateLayout)
	}
	stub.transactions = append(stub.transactions, *transaction)
	return nil
}

func (stub *stubTransactions) Delete(_ context.Context, userID uint, transactionID string) (bool, error) {
	for index, transaction := range stub.transactions {
		if transaction.UserID == userID && transaction.ID == transactionID {
			stub.transactions = append(stub.transactions[:index], stub.transactions[index+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func fixedClock(value time.Time) func() time.Time {
	return func() time.Time { return value }
}
