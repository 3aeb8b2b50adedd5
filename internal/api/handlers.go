package api

import (
	"errors"
	"time"

	"github.com/terraincognita07/finora/internal/lock"
	"github.com/terraincognita07/finora/internal/models"
	"gorm.io/gorm"
)

func NewHandler(database *gorm.DB, config HandlerConfig) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	location := config.Location
	if location == nil {
		location = time.Local
	}
	locker := config.Locker
	if locker == nil {
		locker = lock.NewMemory()
	}
	defaultCurrency := config.DefaultCurrency
	if defaultCurrency == "" {
		defaultCurrency = models.DefaultCurrency
	}

	cookies, err := newSecureCookieCodec([]byte(config.SecretKey))
	if err != nil {
		return nil, err
	}

	handler := &Handler{
		db:              database,
		secretKey:       []byte(config.SecretKey),
		location:        location,
		cookieSecure:    config.CookieSecure,
		defaultCurrency: defaultCurrency,
		locker:          locker,
		cookies:         cookies,
		loginLimiter:    newAttemptLimiter(),
		now:             time.Now,
	}
	return handler.withDependencies(database), nil
}
