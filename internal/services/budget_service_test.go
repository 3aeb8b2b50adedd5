package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/terraincognita07/finora/internal/models"
)

type stubBudgets struct {
	budgets []models.Budget
}

func (stub *stubBudgets) ListByUser(_ context.Context, userID uint) ([]models.Budget, error) {
	result := make([]models.Budget, 0)
	for _, budget := range stub.budgets {
		if budget.UserID == userID {
			result = append(result, budget)
		}
	}
	return result, nil
}

func (stub *stubBudgets) Upsert(_ context.Context, budget *models.Budget) error {
	for index := range stub.budgets {
		if stub.budgets[index].UserID == budget.UserID && stub.budgets[index].CategoryID == budget.CategoryID {
			stub.budgets[index].AmountLimit = budget.AmountLimit
			return nil
		}
	}
	budget.ID = "budget-" + budget.CategoryID
	stub.budgets = append(stub.budgets, *budget)
	return nil
}

func (stub *stubBudgets) FindByCategory(_ context.Context, userID uint, categoryID string) (models.Budget, bool, error) {
	for _, budget := range stub.budgets {
		if budget.UserID == userID && budget.CategoryID == categoryID {
			return budget, true, nil
		}
	}
	return models.Budget{}, false, nil
}

func (stub *stubBudgets) Delete(_ context.Context, userID uint, budgetID string) (bool, error) {
	for index, budget := range stub.budgets {
		if budget.UserID == userID && budget.ID == budgetID {
			stub.budgets = append(stub.budgets[:index], stub.budgets[index+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func budgetCategories() *stubCategories {
	return &stubCategories{categories: []models.Category{
		{ID: "food", UserID: 1, Name: "Food", Type: models.CategoryTypeExpense, Icon: "🍔"},
		{ID: "salary", UserID: 1, Name: "Salary", Type: models.CategoryTypeIncome},
	}}
}

func TestBudgetServiceSetReplacesLimit(t *testing.T) {
	budgets := &stubBudgets{}
	service := NewBudgetService(budgets, budgetCategories(), &stubTransactions{})

	if _, err := service.Set(context.Background(), 1, BudgetInput{CategoryID: "food", AmountLimit: "300"}); err != nil {
		t.Fatalf("set budget: %v", err)
	}
	stored, err := service.Set(context.Background(), 1, BudgetInput{CategoryID: "food", AmountLimit: "450.5"})
	if err != nil {
		t.Fatalf("replace budget: %v", err)
	}
	if len(budgets.budgets) != 1 || !stored.AmountLimit.Equal(decimal.RequireFromString("450.50")) {
		t.Fatalf("expected single replaced budget, got %+v", budgets.budgets)
	}
}

func TestBudgetServiceSetRejectsIncomeCategory(t *testing.T) {
	service := NewBudgetService(&stubBudgets{}, budgetCategories(), &stubTransactions{})

	if _, err := service.Set(context.Background(), 1, BudgetInput{CategoryID: "salary", AmountLimit: "10"}); !errors.Is(err, ErrBudgetCategoryInvalid) {
		t.Fatalf("expected ErrBudgetCategoryInvalid, got %v", err)
	}
	if _, err := service.Set(context.Background(), 1, BudgetInput{CategoryID: "missing", AmountLimit: "10"}); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
	if _, err := service.Set(context.Background(), 1, BudgetInput{CategoryID: "food", AmountLimit: "0"}); !errors.Is(err, ErrAmountInvalid) {
		t.Fatalf("expected ErrAmountInvalid, got %v", err)
	}
}

func TestBudgetServiceStatusesCountPeriodExpensesOnly(t *testing.T) {
	budgets := &stubBudgets{budgets: []models.Budget{
		{ID: "b1", UserID: 1, CategoryID: "food", AmountLimit: decimal.RequireFromString("200")},
	}}
	transactions := &stubTransactions{transactions: []models.Transaction{
		{UserID: 1, CategoryID: "food", Amount: decimal.RequireFromString("-150"), Date: calendarDay(2024, time.March, 12)},
		{UserID: 1, CategoryID: "food", Amount: decimal.RequireFromString("-100"), Date: calendarDay(2024, time.March, 20)},
		{UserID: 1, CategoryID: "food", Amount: decimal.RequireFromString("30"), Date: calendarDay(2024, time.March, 21)},
		{UserID: 1, CategoryID: "food", Amount: decimal.RequireFromString("-500"), Date: calendarDay(2024, time.March, 5)},
	}}
	service := NewBudgetService(budgets, budgetCategories(), transactions)

	start, end := CustomMonthRange(calendarDay(2024, time.March, 15), 10)
	statuses, err := service.Statuses(context.Background(), 1, start, end)
	if err != nil {
		t.Fatalf("budget statuses: %v", err)
	}
	if len(statuses) != 1 {
		t.Fatalf("expected one status, got %d", len(statuses))
	}
	status := statuses[0]
	if !status.Spent.Equal(decimal.RequireFromString("250")) {
		t.Fatalf("expected spent 250, got %s", status.Spent)
	}
	if !status.Exceeded || !status.Remaining.Equal(decimal.RequireFromString("-50")) {
		t.Fatalf("expected exceeded budget, got %+v", status)
	}
	if !status.Percent.Equal(decimal.RequireFromString("125")) || status.CategoryName != "Food" {
		t.Fatalf("unexpected status %+v", status)
	}
}
