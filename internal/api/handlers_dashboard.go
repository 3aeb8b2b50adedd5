package api

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

// ShowDashboard reconciles the user's recurring rules before building the
// summary, so catch-up occurrences are part of the response.
func (handler *Handler) ShowDashboard(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	summary, err := handler.dashboardService.Load(c.UserContext(), requestSessions(c), user)
	if err != nil {
		log.Printf("api: dashboard for user %d failed: %v", user.ID, err)
		return apiError(c, fiber.StatusInternalServerError, "failed to load dashboard")
	}
	return c.JSON(summary)
}
