package api

import (
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/finora/internal/services"
)

func (handler *Handler) GetRecurringRules(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	rules, err := handler.recurringService.List(c.UserContext(), user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load recurring rules")
	}
	return c.JSON(rules)
}

func (handler *Handler) CreateRecurringRule(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input services.RecurringRuleInput
	if err := c.BodyParser(&input); err != nil {
		return invalidInput(c)
	}
	rule, err := handler.recurringService.Create(c.UserContext(), user.ID, input)
	if err != nil {
		return serviceError(c, err, "failed to create recurring rule")
	}
	return c.Status(fiber.StatusCreated).JSON(rule)
}

func (handler *Handler) UpdateRecurringRule(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input services.RecurringRuleUpdate
	if err := c.BodyParser(&input); err != nil {
		return invalidInput(c)
	}
	rule, err := handler.recurringService.Update(c.UserContext(), user.ID, routeID(c), input)
	if err != nil {
		return serviceError(c, err, "failed to update recurring rule")
	}
	return c.JSON(rule)
}

func (handler *Handler) ToggleRecurringRule(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	rule, err := handler.recurringService.Toggle(c.UserContext(), user.ID, routeID(c))
	if err != nil {
		return serviceError(c, err, "failed to toggle recurring rule")
	}
	return c.JSON(rule)
}

func (handler *Handler) DeleteRecurringRule(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	if err := handler.recurringService.Delete(c.UserContext(), user.ID, routeID(c)); err != nil {
		return serviceError(c, err, "failed to delete recurring rule")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) GetUpcomingPayments(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	days := services.DefaultUpcomingDays
	if raw := strings.TrimSpace(c.Query("days")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return apiError(c, fiber.StatusBadRequest, "invalid days")
		}
		days = parsed
	}

	upcoming, err := handler.recurringService.Upcoming(c.UserContext(), user.ID, days)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load upcoming payments")
	}
	return c.JSON(upcoming)
}

// ReconcileRecurring runs the catch-up for the current user on demand and
// returns the raw result, errors included.
func (handler *Handler) ReconcileRecurring(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	result := handler.processor.Reconcile(c.UserContext(), requestSessions(c), user.ID)
	for _, message := range result.Errors {
		log.Printf("api: reconcile user %d: %s", user.ID, message)
	}
	return c.JSON(result)
}
