package api

import (
	"github.com/terraincognita07/finora/internal/db"
	"github.com/terraincognita07/finora/internal/services"
	"gorm.io/gorm"
)

func (handler *Handler) withDependencies(database *gorm.DB) *Handler {
	repositories := db.NewRepositories(database)
	handler.repositories = repositories

	handler.categoryService = services.NewCategoryService(repositories.Categories)
	handler.authService = services.NewAuthService(repositories.Users, handler.categoryService, handler.defaultCurrency)
	handler.accountService = services.NewAccountService(repositories.Accounts, repositories.Transactions)
	handler.transactionService = services.NewTransactionService(repositories.Transactions, repositories.Accounts, repositories.Categories, handler.location)
	handler.recurringService = services.NewRecurringService(repositories.RecurringRules, repositories.Accounts, repositories.Categories, handler.location)
	handler.budgetService = services.NewBudgetService(repositories.Budgets, repositories.Categories, repositories.Transactions)
	handler.goalService = services.NewGoalService(repositories.Goals, handler.location)
	handler.investmentService = services.NewInvestmentService(repositories.Investments, handler.defaultCurrency)
	handler.settingsService = services.NewSettingsService(repositories.Users)
	handler.processor = services.NewRecurringProcessor(repositories.RecurringRules, handler.locker, handler.location)
	handler.dashboardService = services.NewDashboardService(
		handler.processor,
		handler.categoryService,
		handler.accountService,
		repositories.Transactions,
		handler.budgetService,
		handler.recurringService,
		handler.goalService,
		handler.location,
	)
	handler.exportService = services.NewExportService(handler.transactionService, repositories.Accounts, repositories.Categories)
	return handler
}
