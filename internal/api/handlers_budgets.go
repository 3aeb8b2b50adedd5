package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/finora/internal/services"
)

func (handler *Handler) GetBudgets(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	today := services.CalendarDate(handler.now(), handler.location)
	periodStart, periodEnd := services.CustomMonthRange(today, user.StartDayOfMonth)
	statuses, err := handler.budgetService.Statuses(c.UserContext(), user.ID, periodStart, periodEnd)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load budgets")
	}
	return c.JSON(fiber.Map{
		"period_start": periodStart.Format(services.CalendarDateLayout),
		"period_end":   periodEnd.Format(services.CalendarDateLayout),
		"budgets":      statuses,
	})
}

func (handler *Handler) SetBudget(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input services.BudgetInput
	if err := c.BodyParser(&input); err != nil {
		return invalidInput(c)
	}
	budget, err := handler.budgetService.Set(c.UserContext(), user.ID, input)
	if err != nil {
		return serviceError(c, err, "failed to save budget")
	}
	return c.JSON(budget)
}

func (handler *Handler) DeleteBudget(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	if err := handler.budgetService.Delete(c.UserContext(), user.ID, routeID(c)); err != nil {
		return serviceError(c, err, "failed to delete budget")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
