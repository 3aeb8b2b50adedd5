package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/finora/internal/models"
	"github.com/terraincognita07/finora/internal/services"
)

func (handler *Handler) authenticateRequest(c *fiber.Ctx) (*models.User, *services.Session, error) {
	rawToken := strings.TrimSpace(c.Cookies(authCookieName))
	if rawToken == "" {
		return nil, nil, errors.New("missing auth cookie")
	}
	tokenValue, err := handler.cookies.open(authCookiePurpose, rawToken)
	if err != nil {
		return nil, nil, errors.New("invalid token")
	}

	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(string(tokenValue), claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return handler.secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, nil, errors.New("invalid token")
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(time.Now()) {
		return nil, nil, errors.New("token expired")
	}

	user, err := handler.authService.FindByID(c.UserContext(), claims.UserID)
	if err != nil {
		return nil, nil, err
	}

	session := &services.Session{UserID: user.ID, ExpiresAt: claims.ExpiresAt.Time}
	return &user, session, nil
}
