package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/finora/internal/services"
)

func (handler *Handler) GetCategories(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	if err := handler.categoryService.EnsureDefaults(c.UserContext(), user.ID); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to seed categories")
	}
	categories, err := handler.categoryService.List(c.UserContext(), user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load categories")
	}
	return c.JSON(categories)
}

func (handler *Handler) CreateCategory(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input services.CategoryInput
	if err := c.BodyParser(&input); err != nil {
		return invalidInput(c)
	}
	category, err := handler.categoryService.Create(c.UserContext(), user.ID, input)
	if err != nil {
		return serviceError(c, err, "failed to create category")
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

func (handler *Handler) DeleteCategory(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	if err := handler.categoryService.Delete(c.UserContext(), user.ID, routeID(c)); err != nil {
		return serviceError(c, err, "failed to delete category")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
