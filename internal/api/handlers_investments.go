package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/finora/internal/services"
)

func (handler *Handler) GetInvestments(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	portfolio, err := handler.investmentService.Portfolio(c.UserContext(), user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load investments")
	}
	return c.JSON(portfolio)
}

func (handler *Handler) CreateInvestment(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input services.InvestmentInput
	if err := c.BodyParser(&input); err != nil {
		return invalidInput(c)
	}
	holding, err := handler.investmentService.Create(c.UserContext(), user.ID, input)
	if err != nil {
		return serviceError(c, err, "failed to create investment")
	}
	return c.Status(fiber.StatusCreated).JSON(holding)
}

func (handler *Handler) UpdateInvestment(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input services.InvestmentInput
	if err := c.BodyParser(&input); err != nil {
		return invalidInput(c)
	}
	holding, err := handler.investmentService.Update(c.UserContext(), user.ID, routeID(c), input)
	if err != nil {
		return serviceError(c, err, "failed to update investment")
	}
	return c.JSON(holding)
}

func (handler *Handler) UpdateInvestmentPrice(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input services.InvestmentPriceInput
	if err := c.BodyParser(&input); err != nil {
		return invalidInput(c)
	}
	holding, err := handler.investmentService.UpdatePrice(c.UserContext(), user.ID, routeID(c), input)
	if err != nil {
		return serviceError(c, err, "failed to update investment price")
	}
	return c.JSON(holding)
}

func (handler *Handler) DeleteInvestment(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	if err := handler.investmentService.Delete(c.UserContext(), user.ID, routeID(c)); err != nil {
		return serviceError(c, err, "failed to delete investment")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
