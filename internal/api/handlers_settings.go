package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/finora/internal/services"
)

func (handler *Handler) GetSettings(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(settingsResponse(user.Email, user.Currency, user.StartDayOfMonth))
}

func (handler *Handler) UpdateSettings(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input services.SettingsUpdate
	if err := c.BodyParser(&input); err != nil {
		return invalidInput(c)
	}
	updated, err := handler.settingsService.Save(c.UserContext(), user.ID, input)
	if err != nil {
		return serviceError(c, err, "failed to save settings")
	}
	return c.JSON(settingsResponse(updated.Email, updated.Currency, updated.StartDayOfMonth))
}

func (handler *Handler) ChangePassword(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input services.PasswordChange
	if err := c.BodyParser(&input); err != nil {
		return invalidInput(c)
	}
	if err := handler.settingsService.ChangePassword(c.UserContext(), user, input); err != nil {
		return serviceError(c, err, "failed to change password")
	}

	user.MustChangePassword = false
	if err := handler.setAuthCookie(c, user, false); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func settingsResponse(email string, currency string, startDay int) fiber.Map {
	return fiber.Map{
		"email":              email,
		"currency":           currency,
		"start_day_of_month": startDay,
	}
}
