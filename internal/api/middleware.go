package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/finora/internal/models"
	"github.com/terraincognita07/finora/internal/services"
)

const (
	authCookieName    = "finora_auth"
	authCookiePurpose = "auth"
	contextUserKey    = "current_user"
	contextSessionKey = "current_session"
)

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok && user != nil
}

// requestSessions exposes the session resolved by AuthRequired to services
// that gate work on an active session.
func requestSessions(c *fiber.Ctx) services.SessionProvider {
	session, _ := c.Locals(contextSessionKey).(*services.Session)
	return services.StaticSession{Session: session}
}
