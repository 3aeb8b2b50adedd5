package services

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/terraincognita07/finora/internal/db"
	"github.com/terraincognita07/finora/internal/models"
)

const dashboardRecentTransactions = 5

type Reconciler interface {
	Reconcile(ctx context.Context, sessions SessionProvider, userID uint) ReconcileResult
}

type DashboardCategories interface {
	EnsureDefaults(ctx context.Context, userID uint) error
	List(ctx context.Context, userID uint) ([]models.Category, error)
}

type DashboardAccounts interface {
	ListWithBalances(ctx context.Context, userID uint) ([]AccountBalance, error)
}

type DashboardBudgets interface {
	Statuses(ctx context.Context, userID uint, periodStart time.Time, periodEnd time.Time) ([]BudgetStatus, error)
}

type DashboardUpcoming interface {
	Upcoming(ctx context.Context, userID uint, days int) ([]UpcomingPayment, error)
}

type DashboardGoals interface {
	Featured(ctx context.Context, userID uint) (*GoalProgress, error)
}

type CategoryExpense struct {
	CategoryID string          `json:"category_id"`
	Name       string          `json:"name"`
	Icon       string          `json:"icon"`
	Amount     decimal.Decimal `json:"amount"`
	Percent    decimal.Decimal `json:"percent"`
}

type ReconcileCounts struct {
	Processed int `json:"processed"`
	Failed    int `json:"failed"`
}

type DashboardSummary struct {
	Currency           string               `json:"currency"`
	PeriodStart        time.Time            `json:"period_start"`
	PeriodEnd          time.Time            `json:"period_end"`
	TotalBalance       decimal.Decimal      `json:"total_balance"`
	Accounts           []AccountBalance     `json:"accounts"`
	PeriodIncome       decimal.Decimal      `json:"period_income"`
	PeriodExpenses     decimal.Decimal      `json:"period_expenses"`
	ExpensesByCategory []CategoryExpense    `json:"expenses_by_category"`
	RecentTransactions []models.Transaction `json:"recent_transactions"`
	Budgets            []BudgetStatus       `json:"budgets"`
	Upcoming           []UpcomingPayment    `json:"upcoming"`
	PinnedGoal         *GoalProgress        `json:"pinned_goal"`
	Reconcile          ReconcileCounts      `json:"reconcile"`
}

type DashboardService struct {
	reconciler   Reconciler
	categories   DashboardCategories
	accounts     DashboardAccounts
	transactions TransactionLister
	budgets      DashboardBudgets
	upcoming     DashboardUpcoming
	goals        DashboardGoals
	location     *time.Location
	now          func() time.Time
}

func NewDashboardService(
	reconciler Reconciler,
	categories DashboardCategories,
	accounts DashboardAccounts,
	transactions TransactionLister,
	budgets DashboardBudgets,
	upcoming DashboardUpcoming,
	goals DashboardGoals,
	location *time.Location,
) *DashboardService {
	if location == nil {
		location = time.Local
	}
	return &DashboardService{
		reconciler:   reconciler,
		categories:   categories,
		accounts:     accounts,
		transactions: transactions,
		budgets:      budgets,
		upcoming:     upcoming,
		goals:        goals,
		location:     location,
		now:          time.Now,
	}
}

// Load materializes due recurring occurrences before reading anything, so the
// summary always includes them. Reconciliation errors are logged only.
func (service *DashboardService) Load(ctx context.Context, sessions SessionProvider, user *models.User) (DashboardSummary, error) {
	result := service.reconciler.Reconcile(ctx, sessions, user.ID)
	for _, message := range result.Errors {
		log.Printf("dashboard: reconcile user %d: %s", user.ID, message)
	}

	if err := service.categories.EnsureDefaults(ctx, user.ID); err != nil {
		return DashboardSummary{}, err
	}

	today := CalendarDate(service.now(), service.location)
	periodStart, periodEnd := CustomMonthRange(today, user.StartDayOfMonth)
	summary := DashboardSummary{
		Currency:    user.Currency,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Reconcile:   ReconcileCounts{Processed: result.Processed, Failed: len(result.Errors)},
	}

	accounts, err := service.accounts.ListWithBalances(ctx, user.ID)
	if err != nil {
		return DashboardSummary{}, err
	}
	summary.Accounts = accounts
	summary.TotalBalance = TotalBalance(accounts)

	periodTransactions, err := service.transactions.List(ctx, user.ID, db.TransactionFilter{From: &periodStart, To: &periodEnd})
	if err != nil {
		return DashboardSummary{}, err
	}
	categories, err := service.categories.List(ctx, user.ID)
	if err != nil {
		return DashboardSummary{}, err
	}
	summary.PeriodIncome, summary.PeriodExpenses, summary.ExpensesByCategory = summarizePeriod(periodTransactions, categories)

	recent, err := service.transactions.List(ctx, user.ID, db.TransactionFilter{Limit: dashboardRecentTransactions})
	if err != nil {
		return DashboardSummary{}, err
	}
	summary.RecentTransactions = recent

	if summary.Budgets, err = service.budgets.Statuses(ctx, user.ID, periodStart, periodEnd); err != nil {
		return DashboardSummary{}, err
	}
	if summary.Upcoming, err = service.upcoming.Upcoming(ctx, user.ID, DefaultUpcomingDays); err != nil {
		return DashboardSummary{}, err
	}
	if summary.PinnedGoal, err = service.goals.Featured(ctx, user.ID); err != nil {
		return DashboardSummary{}, err
	}
	return summary, nil
}

func summarizePeriod(transactions []models.Transaction, categories []models.Category) (decimal.Decimal, decimal.Decimal, []CategoryExpense) {
	byID := make(map[string]models.Category, len(categories))
	for _, category := range categories {
		byID[category.ID] = category
	}

	income := decimal.Zero
	expenses := decimal.Zero
	spent := make(map[string]decimal.Decimal)
	for _, transaction := range transactions {
		if transaction.Amount.IsNegative() {
			amount := transaction.Amount.Abs()
			expenses = expenses.Add(amount)
			spent[transaction.CategoryID] = spent[transaction.CategoryID].Add(amount)
			continue
		}
		income = income.Add(transaction.Amount)
	}

	breakdown := make([]CategoryExpense, 0, len(spent))
	for categoryID, amount := range spent {
		percent := decimal.Zero
		if expenses.IsPositive() {
			percent = amount.Div(expenses).Mul(decimal.NewFromInt(100)).Round(1)
		}
		category := byID[categoryID]
		breakdown = append(breakdown, CategoryExpense{
			CategoryID: categoryID,
			Name:       category.Name,
			Icon:       category.Icon,
			Amount:     amount,
			Percent:    percent,
		})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Amount.Equal(breakdown[j].Amount) {
			return breakdown[i].Name < breakdown[j].Name
		}
		return breakdown[i].Amount.GreaterThan(breakdown[j].Amount)
	})
	return income, expenses, breakdown
}
