package services

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/terraincognita07/finora/internal/models"
)

// ParseAmount reads a user-entered amount. Comma decimal separators are
// accepted and the result is rounded to cents.
func ParseAmount(raw string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), " ", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	if cleaned == "" {
		return decimal.Zero, ErrAmountInvalid
	}
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, ErrAmountInvalid
	}
	return amount.Round(2), nil
}

// ParsePositiveAmount is ParseAmount restricted to values above zero.
func ParsePositiveAmount(raw string) (decimal.Decimal, error) {
	amount, err := ParseAmount(raw)
	if err != nil {
		return decimal.Zero, err
	}
	if !amount.IsPositive() {
		return decimal.Zero, ErrAmountInvalid
	}
	return amount, nil
}

// SignedAmount stores expenses as negative and income as positive values.
func SignedAmount(magnitude decimal.Decimal, categoryType string) decimal.Decimal {
	if categoryType == models.CategoryTypeExpense {
		return magnitude.Abs().Neg()
	}
	return magnitude.Abs()
}

func normalizeCategoryType(raw string) (string, bool) {
	switch value := strings.ToLower(strings.TrimSpace(raw)); value {
	case models.CategoryTypeIncome, models.CategoryTypeExpense:
		return value, true
	default:
		return "", false
	}
}
