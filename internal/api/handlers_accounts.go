package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/finora/internal/services"
)

func (handler *Handler) GetAccounts(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	accounts, err := handler.accountService.ListWithBalances(c.UserContext(), user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load accounts")
	}
	return c.JSON(fiber.Map{
		"accounts":      accounts,
		"total_balance": services.TotalBalance(accounts),
	})
}

func (handler *Handler) CreateAccount(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input services.AccountInput
	if err := c.BodyParser(&input); err != nil {
		return invalidInput(c)
	}
	account, err := handler.accountService.Create(c.UserContext(), user.ID, input)
	if err != nil {
		return serviceError(c, err, "failed to create account")
	}
	return c.Status(fiber.StatusCreated).JSON(account)
}

func (handler *Handler) UpdateAccount(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input services.AccountInput
	if err := c.BodyParser(&input); err != nil {
		return invalidInput(c)
	}
	account, err := handler.accountService.Update(c.UserContext(), user.ID, routeID(c), input)
	if err != nil {
		return serviceError(c, err, "failed to update account")
	}
	return c.JSON(account)
}

func (handler *Handler) DeleteAccount(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	if err := handler.accountService.Delete(c.UserContext(), user.ID, routeID(c)); err != nil {
		return serviceError(c, err, "failed to delete account")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
