package services

import "errors"

var (
	ErrAccountNotFound            = errors.New("account not found")
	ErrAccountNameRequired        = errors.New("account name required")
	ErrAccountTypeInvalid         = errors.New("account type invalid")
	ErrCategoryNotFound           = errors.New("category not found")
	ErrCategoryNameRequired       = errors.New("category name required")
	ErrCategoryTypeInvalid        = errors.New("category type invalid")
	ErrCategoryInUse              = errors.New("category in use")
	ErrTransactionNotFound        = errors.New("transaction not found")
	ErrRecurringRuleNotFound      = errors.New("recurring rule not found")
	ErrBudgetNotFound             = errors.New("budget not found")
	ErrBudgetCategoryInvalid      = errors.New("budget category must be an expense category")
	ErrGoalNotFound               = errors.New("goal not found")
	ErrGoalNameRequired           = errors.New("goal name required")
	ErrGoalTargetInvalid          = errors.New("goal target must be at least 1")
	ErrGoalInsufficientFunds      = errors.New("withdrawal exceeds saved amount")
	ErrInvestmentNotFound         = errors.New("investment not found")
	ErrInvestmentSymbolRequired   = errors.New("investment symbol required")
	ErrInvestmentAssetTypeInvalid = errors.New("investment asset type invalid")
	ErrInvestmentQuantityInvalid  = errors.New("investment quantity invalid")
	ErrInvestmentCurrencyInvalid  = errors.New("investment currency invalid")
	ErrAmountInvalid              = errors.New("amount invalid")
)
