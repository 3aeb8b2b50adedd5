package api

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/finora/internal/services"
)

func (handler *Handler) GetGoals(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	goals, err := handler.goalService.List(c.UserContext(), user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load goals")
	}
	return c.JSON(goals)
}

func (handler *Handler) CreateGoal(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input services.GoalInput
	if err := c.BodyParser(&input); err != nil {
		return invalidInput(c)
	}
	goal, err := handler.goalService.Create(c.UserContext(), user.ID, input)
	if err != nil {
		return serviceError(c, err, "failed to create goal")
	}
	return c.Status(fiber.StatusCreated).JSON(goal)
}

func (handler *Handler) UpdateGoal(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input services.GoalInput
	if err := c.BodyParser(&input); err != nil {
		return invalidInput(c)
	}
	goal, err := handler.goalService.Update(c.UserContext(), user.ID, routeID(c), input)
	if err != nil {
		return serviceError(c, err, "failed to update goal")
	}
	return c.JSON(goal)
}

func (handler *Handler) ContributeToGoal(c *fiber.Ctx) error {
	return handler.adjustGoal(c, handler.goalService.Contribute)
}

func (handler *Handler) WithdrawFromGoal(c *fiber.Ctx) error {
	return handler.adjustGoal(c, handler.goalService.Withdraw)
}

type goalAdjustment func(ctx context.Context, userID uint, goalID string, input services.GoalAmountInput) (services.GoalProgress, error)

func (handler *Handler) adjustGoal(c *fiber.Ctx, adjust goalAdjustment) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input services.GoalAmountInput
	if err := c.BodyParser(&input); err != nil {
		return invalidInput(c)
	}
	goal, err := adjust(c.UserContext(), user.ID, routeID(c), input)
	if err != nil {
		return serviceError(c, err, "failed to update goal amount")
	}
	return c.JSON(goal)
}

func (handler *Handler) PinGoal(c *fiber.Ctx) error {
	return handler.setGoalPinned(c, true)
}

func (handler *Handler) UnpinGoal(c *fiber.Ctx) error {
	return handler.setGoalPinned(c, false)
}

func (handler *Handler) setGoalPinned(c *fiber.Ctx, pinned bool) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	if err := handler.goalService.SetPinned(c.UserContext(), user.ID, routeID(c), pinned); err != nil {
		return serviceError(c, err, "failed to pin goal")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) DeleteGoal(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	if err := handler.goalService.Delete(c.UserContext(), user.ID, routeID(c)); err != nil {
		return serviceError(c, err, "failed to delete goal")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
