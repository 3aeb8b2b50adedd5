package services

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/terraincognita07/finora/internal/db"
	"github.com/terraincognita07/finora/internal/models"
)

type BudgetRepository interface {
	ListByUser(ctx context.Context, userID uint) ([]models.Budget, error)
	Upsert(ctx context.Context, budget *models.Budget) error
	FindByCategory(ctx context.Context, userID uint, categoryID string) (models.Budget, bool, error)
	Delete(ctx context.Context, userID uint, budgetID string) (bool, error)
}

type BudgetInput struct {
	CategoryID  string `json:"category_id"`
	AmountLimit string `json:"amount_limit"`
}

type BudgetStatus struct {
	Budget       models.Budget   `json:"budget"`
	CategoryName string          `json:"category_name"`
	CategoryIcon string          `json:"category_icon"`
	Spent        decimal.Decimal `json:"spent"`
	Remaining    decimal.Decimal `json:"remaining"`
	Percent      decimal.Decimal `json:"percent"`
	Exceeded     bool            `json:"exceeded"`
}

type BudgetService struct {
	budgets      BudgetRepository
	categories   CategoryFinder
	transactions TransactionLister
}

func NewBudgetService(budgets BudgetRepository, categories CategoryFinder, transactions TransactionLister) *BudgetService {
	return &BudgetService{budgets: budgets, categories: categories, transactions: transactions}
}

// Set creates the monthly limit for an expense category or replaces the
// existing one.
func (service *BudgetService) Set(ctx context.Context, userID uint, input BudgetInput) (models.Budget, error) {
	category, found, err := service.categories.FindByID(ctx, userID, strings.TrimSpace(input.CategoryID))
	if err != nil {
		return models.Budget{}, err
	}
	if !found {
		return models.Budget{}, ErrCategoryNotFound
	}
	if category.Type != models.CategoryTypeExpense {
		return models.Budget{}, ErrBudgetCategoryInvalid
	}

	limit, err := ParsePositiveAmount(input.AmountLimit)
	if err != nil {
		return models.Budget{}, err
	}

	budget := models.Budget{
		UserID:      userID,
		CategoryID:  category.ID,
		AmountLimit: limit,
		Period:      models.BudgetPeriodMonthly,
	}
	if err := service.budgets.Upsert(ctx, &budget); err != nil {
		return models.Budget{}, err
	}

	stored, found, err := service.budgets.FindByCategory(ctx, userID, category.ID)
	if err != nil {
		return models.Budget{}, err
	}
	if !found {
		return models.Budget{}, ErrBudgetNotFound
	}
	return stored, nil
}

func (service *BudgetService) Delete(ctx context.Context, userID uint, budgetID string) error {
	deleted, err := service.budgets.Delete(ctx, userID, budgetID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrBudgetNotFound
	}
	return nil
}

// Statuses reports spending against every budget for the period
// [periodStart, periodEnd].
func (service *BudgetService) Statuses(ctx context.Context, userID uint, periodStart time.Time, periodEnd time.Time) ([]BudgetStatus, error) {
	budgets, err := service.budgets.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(budgets) == 0 {
		return []BudgetStatus{}, nil
	}

	transactions, err := service.transactions.List(ctx, userID, db.TransactionFilter{From: &periodStart, To: &periodEnd})
	if err != nil {
		return nil, err
	}
	spentByCategory := make(map[string]decimal.Decimal)
	for _, transaction := range transactions {
		if transaction.Amount.IsNegative() {
			spentByCategory[transaction.CategoryID] = spentByCategory[transaction.CategoryID].Add(transaction.Amount.Abs())
		}
	}

	statuses := make([]BudgetStatus, 0, len(budgets))
	for _, budget := range budgets {
		category, _, err := service.categories.FindByID(ctx, userID, budget.CategoryID)
		if err != nil {
			return nil, err
		}
		spent := spentByCategory[budget.CategoryID]
		percent := decimal.Zero
		if budget.AmountLimit.IsPositive() {
			percent = spent.Div(budget.AmountLimit).Mul(decimal.NewFromInt(100)).Round(1)
		}
		statuses = append(statuses, BudgetStatus{
			Budget:       budget,
			CategoryName: category.Name,
			CategoryIcon: category.Icon,
			Spent:        spent,
			Remaining:    budget.AmountLimit.Sub(spent),
			Percent:      percent,
			Exceeded:     spent.GreaterThan(budget.AmountLimit),
		})
	}
	return statuses, nil
}
