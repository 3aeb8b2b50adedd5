package api

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/finora/internal/services"
)

func (handler *Handler) Register(c *fiber.Ctx) error {
	var credentials credentialsInput
	if err := c.BodyParser(&credentials); err != nil {
		return invalidInput(c)
	}

	user, err := handler.authService.Register(c.UserContext(), credentials.Email, credentials.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailAlreadyExists) {
			return apiError(c, fiber.StatusConflict, "email already exists")
		}
		if errors.Is(err, services.ErrAuthCredentialsInvalid) || errors.Is(err, services.ErrWeakPassword) || errors.Is(err, services.ErrPasswordTooLong) {
			return apiError(c, fiber.StatusBadRequest, err.Error())
		}
		log.Printf("api: register failed: %v", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to create account")
	}

	if err := handler.setAuthCookie(c, &user, true); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true, "user": user})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	var credentials credentialsInput
	if err := c.BodyParser(&credentials); err != nil {
		return invalidInput(c)
	}

	now := time.Now()
	limiterKey := loginLimiterKey(c, credentials.Email)
	if handler.loginLimiter.blocked(limiterKey, now) {
		return apiError(c, fiber.StatusTooManyRequests, "too many login attempts")
	}

	user, err := handler.authService.Authenticate(c.UserContext(), credentials.Email, credentials.Password)
	if err != nil {
		if errors.Is(err, services.ErrAuthCredentialsInvalid) {
			handler.loginLimiter.addFailure(limiterKey, now)
			return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
		}
		log.Printf("api: login failed: %v", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to sign in")
	}
	handler.loginLimiter.reset(limiterKey)

	if err := handler.setAuthCookie(c, &user, credentials.RememberMe); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return c.JSON(fiber.Map{"ok": true, "user": user, "must_change_password": user.MustChangePassword})
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}
