package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/finora/internal/services"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// serviceError maps domain sentinel errors to HTTP responses; anything else
// is reported as an internal failure with the given fallback message.
func serviceError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrAccountNotFound),
		errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrTransactionNotFound),
		errors.Is(err, services.ErrRecurringRuleNotFound),
		errors.Is(err, services.ErrBudgetNotFound),
		errors.Is(err, services.ErrGoalNotFound),
		errors.Is(err, services.ErrInvestmentNotFound):
		return apiError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrCategoryInUse),
		errors.Is(err, services.ErrGoalInsufficientFunds),
		errors.Is(err, services.ErrEmailAlreadyExists):
		return apiError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, services.ErrAccountNameRequired),
		errors.Is(err, services.ErrAccountTypeInvalid),
		errors.Is(err, services.ErrCategoryNameRequired),
		errors.Is(err, services.ErrCategoryTypeInvalid),
		errors.Is(err, services.ErrBudgetCategoryInvalid),
		errors.Is(err, services.ErrAmountInvalid),
		errors.Is(err, services.ErrGoalNameRequired),
		errors.Is(err, services.ErrGoalTargetInvalid),
		errors.Is(err, services.ErrInvestmentSymbolRequired),
		errors.Is(err, services.ErrInvestmentAssetTypeInvalid),
		errors.Is(err, services.ErrInvestmentQuantityInvalid),
		errors.Is(err, services.ErrInvestmentCurrencyInvalid),
		errors.Is(err, services.ErrInvalidFrequency),
		errors.Is(err, services.ErrInvalidDate),
		errors.Is(err, services.ErrAuthCredentialsInvalid),
		errors.Is(err, services.ErrWeakPassword),
		errors.Is(err, services.ErrPasswordTooLong),
		errors.Is(err, services.ErrSettingsCurrencyInvalid),
		errors.Is(err, services.ErrSettingsStartDayInvalid),
		errors.Is(err, services.ErrSettingsPasswordMissing),
		errors.Is(err, services.ErrSettingsPasswordMismatch),
		errors.Is(err, services.ErrSettingsPasswordUnchanged):
		return apiError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrSettingsPasswordInvalid):
		return apiError(c, fiber.StatusUnauthorized, err.Error())
	default:
		return apiError(c, fiber.StatusInternalServerError, fallback)
	}
}

func invalidInput(c *fiber.Ctx) error {
	return apiError(c, fiber.StatusBadRequest, "invalid input")
}

func routeID(c *fiber.Ctx) string {
	return strings.TrimSpace(c.Params("id"))
}
