package db

import "gorm.io/gorm"

type Repositories struct {
	Users          *UserRepository
	Accounts       *AccountRepository
	Categories     *CategoryRepository
	Transactions   *TransactionRepository
	RecurringRules *RecurringRuleRepository
	Budgets        *BudgetRepository
	Goals          *GoalRepository
	Investments    *InvestmentRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:          NewUserRepository(database),
		Accounts:       NewAccountRepository(database),
		Categories:     NewCategoryRepository(database),
		Transactions:   NewTransactionRepository(database),
		RecurringRules: NewRecurringRuleRepository(database),
		Budgets:        NewBudgetRepository(database),
		Goals:          NewGoalRepository(database),
		Investments:    NewInvestmentRepository(database),
	}
}
