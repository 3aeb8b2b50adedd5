package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/terraincognita07/finora/internal/models"
)

func newTransactionServiceFixture() (*TransactionService, *stubTransactions) {
	accounts := &stubAccounts{accounts: []models.Account{{ID: "checking", UserID: 1, Name: "Checking"}}}
	categories := &stubCategories{categories: []models.Category{
		{ID: "food", UserID: 1, Name: "Food", Type: models.CategoryTypeExpense},
		{ID: "salary", UserID: 1, Name: "Salary", Type: models.CategoryTypeIncome},
	}}
	transactions := &stubTransactions{}
	service := NewTransactionService(transactions, accounts, categories, time.UTC)
	service.now = fixedClock(time.Date(2024, time.May, 10, 23, 0, 0, 0, time.UTC))
	return service, transactions
}

func TestTransactionServiceCreateSignsByCategory(t *testing.T) {
	service, _ := newTransactionServiceFixture()

	expense, err := service.Create(context.Background(), 1, TransactionInput{AccountID: "checking", CategoryID: "food", Amount: "12.30", Date: "2024-05-01"})
	if err != nil {
		t.Fatalf("create expense: %v", err)
	}
	if !expense.Amount.Equal(decimal.RequireFromString("-12.30")) {
		t.Fatalf("expected negative expense, got %s", expense.Amount)
	}
	if expense.IsRecurring || expense.RecurringRuleID != nil {
		t.Fatalf("manual transaction must not be recurring: %+v", expense)
	}

	income, err := service.Create(context.Background(), 1, TransactionInput{AccountID: "checking", CategoryID: "salary", Amount: "3000"})
	if err != nil {
		t.Fatalf("create income: %v", err)
	}
	if !income.Amount.Equal(decimal.RequireFromString("3000")) {
		t.Fatalf("expected positive income, got %s", income.Amount)
	}
	if !income.Date.Equal(calendarDay(2024, time.May, 10)) {
		t.Fatalf("expected default date today, got %s", income.Date)
	}
}

func TestTransactionServiceCreateRejectsInvalidInput(t *testing.T) {
	service, transactions := newTransactionServiceFixture()

	testCases := []struct {
		name  string
		input TransactionInput
		want  error
	}{
		{name: "unknown account", input: TransactionInput{AccountID: "missing", CategoryID: "food", Amount: "1"}, want: ErrAccountNotFound},
		{name: "unknown category", input: TransactionInput{AccountID: "checking", CategoryID: "missing", Amount: "1"}, want: ErrCategoryNotFound},
		{name: "zero amount", input: TransactionInput{AccountID: "checking", CategoryID: "food", Amount: "0"}, want: ErrAmountInvalid},
		{name: "negative amount", input: TransactionInput{AccountID: "checking", CategoryID: "food", Amount: "-5"}, want: ErrAmountInvalid},
		{name: "bad date", input: TransactionInput{AccountID: "checking", CategoryID: "food", Amount: "5", Date: "05/01/2024"}, want: ErrInvalidDate},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if _, err := service.Create(context.Background(), 1, testCase.input); !errors.Is(err, testCase.want) {
				t.Fatalf("expected %v, got %v", testCase.want, err)
			}
		})
	}
	if len(transactions.transactions) != 0 {
		t.Fatalf("expected nothing stored, got %d", len(transactions.transactions))
	}
}

func TestTransactionServiceListParsesFilters(t *testing.T) {
	service, transactions := newTransactionServiceFixture()

	if _, err := service.List(context.Background(), 1, TransactionQuery{From: "2024-05-01", To: "2024-05-31", AccountID: "checking"}); err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	filter := transactions.filters[len(transactions.filters)-1]
	if filter.From == nil || !filter.From.Equal(calendarDay(2024, time.May, 1)) || filter.To == nil || filter.AccountID != "checking" {
		t.Fatalf("unexpected filter %+v", filter)
	}

	if _, err := service.List(context.Background(), 1, TransactionQuery{From: "2024-06-01", To: "2024-05-01"}); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate for inverted range, got %v", err)
	}
}
