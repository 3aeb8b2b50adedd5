package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/terraincognita07/finora/internal/db"
	"github.com/terraincognita07/finora/internal/models"
)

type AccountRepository interface {
	ListByUser(ctx context.Context, userID uint) ([]models.Account, error)
	FindByID(ctx context.Context, userID uint, accountID string) (models.Account, bool, error)
	Create(ctx context.Context, account *models.Account) error
	Save(ctx context.Context, account *models.Account) error
	Delete(ctx context.Context, userID uint, accountID string) (bool, error)
}

type TransactionLister interface {
	List(ctx context.Context, userID uint, filter db.TransactionFilter) ([]models.Transaction, error)
}

type AccountInput struct {
	Name           string `json:"name"`
	Type           string `json:"type"`
	InitialBalance string `json:"initial_balance"`
}

type AccountBalance struct {
	models.Account
	Balance decimal.Decimal `json:"balance"`
}

type AccountService struct {
	accounts     AccountRepository
	transactions TransactionLister
}

func NewAccountService(accounts AccountRepository, transactions TransactionLister) *AccountService {
	return &AccountService{accounts: accounts, transactions: transactions}
}

// ListWithBalances returns each account with its initial balance plus the
// signed sum of every transaction booked on it.
func (service *AccountService) ListWithBalances(ctx context.Context, userID uint) ([]AccountBalance, error) {
	accounts, err := service.accounts.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	transactions, err := service.transactions.List(ctx, userID, db.TransactionFilter{})
	if err != nil {
		return nil, err
	}

	sums := make(map[string]decimal.Decimal, len(accounts))
	for _, transaction := range transactions {
		sums[transaction.AccountID] = sums[transaction.AccountID].Add(transaction.Amount)
	}

	balances := make([]AccountBalance, 0, len(accounts))
	for _, account := range accounts {
		balances = append(balances, AccountBalance{
			Account: account,
			Balance: account.InitialBalance.Add(sums[account.ID]),
		})
	}
	return balances, nil
}

func TotalBalance(balances []AccountBalance) decimal.Decimal {
	total := decimal.Zero
	for _, balance := range balances {
		total = total.Add(balance.Balance)
	}
	return total
}

func (service *AccountService) Create(ctx context.Context, userID uint, input AccountInput) (models.Account, error) {
	name, accountType, initialBalance, err := normalizeAccountInput(input)
	if err != nil {
		return models.Account{}, err
	}

	account := models.Account{
		UserID:         userID,
		Name:           name,
		Type:           accountType,
		InitialBalance: initialBalance,
	}
	if err := service.accounts.Create(ctx, &account); err != nil {
		return models.Account{}, err
	}
	return account, nil
}

func (service *AccountService) Update(ctx context.Context, userID uint, accountID string, input AccountInput) (models.Account, error) {
	account, found, err := service.accounts.FindByID(ctx, userID, accountID)
	if err != nil {
		return models.Account{}, err
	}
	if !found {
		return models.Account{}, ErrAccountNotFound
	}

	name, accountType, initialBalance, err := normalizeAccountInput(input)
	if err != nil {
		return models.Account{}, err
	}
	account.Name = name
	account.Type = accountType
	account.InitialBalance = initialBalance
	if err := service.accounts.Save(ctx, &account); err != nil {
		return models.Account{}, err
	}
	return account, nil
}

// Delete removes the account together with its transactions and recurring
// rules through the schema's cascading foreign keys.
func (service *AccountService) Delete(ctx context.Context, userID uint, accountID string) error {
	deleted, err := service.accounts.Delete(ctx, userID, accountID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrAccountNotFound
	}
	return nil
}

func normalizeAccountInput(input AccountInput) (string, string, decimal.Decimal, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return "", "", decimal.Zero, ErrAccountNameRequired
	}

	accountType := strings.ToLower(strings.TrimSpace(input.Type))
	if accountType == "" {
		accountType = models.AccountTypeBank
	}
	if !models.IsValidAccountType(accountType) {
		return "", "", decimal.Zero, ErrAccountTypeInvalid
	}

	initialBalance := decimal.Zero
	if strings.TrimSpace(input.InitialBalance) != "" {
		parsed, err := ParseAmount(input.InitialBalance)
		if err != nil {
			return "", "", decimal.Zero, err
		}
		initialBalance = parsed
	}
	return name, accountType, initialBalance, nil
}
