package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/finora/internal/services"
)

func transactionQuery(c *fiber.Ctx) services.TransactionQuery {
	return services.TransactionQuery{
		From:       c.Query("from"),
		To:         c.Query("to"),
		AccountID:  c.Query("account_id"),
		CategoryID: c.Query("category_id"),
	}
}

func (handler *Handler) GetTransactions(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	transactions, err := handler.transactionService.List(c.UserContext(), user.ID, transactionQuery(c))
	if err != nil {
		return serviceError(c, err, "failed to load transactions")
	}
	return c.JSON(transactions)
}

func (handler *Handler) CreateTransaction(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input services.TransactionInput
	if err := c.BodyParser(&input); err != nil {
		return invalidInput(c)
	}
	transaction, err := handler.transactionService.Create(c.UserContext(), user.ID, input)
	if err != nil {
		return serviceError(c, err, "failed to create transaction")
	}
	return c.Status(fiber.StatusCreated).JSON(transaction)
}

func (handler *Handler) DeleteTransaction(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	if err := handler.transactionService.Delete(c.UserContext(), user.ID, routeID(c)); err != nil {
		return serviceError(c, err, "failed to delete transaction")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
