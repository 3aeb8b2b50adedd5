package services

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/terraincognita07/finora/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrSettingsCurrencyInvalid = errors.New("settings currency invalid")
	ErrSettingsStartDayInvalid = errors.New("settings start day invalid")
)

var currencyCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

type SettingsUserRepository interface {
	FindByID(ctx context.Context, userID uint) (models.User, error)
	UpdateSettings(ctx context.Context, userID uint, currency string, startDayOfMonth int) error
	UpdatePassword(ctx context.Context, userID uint, passwordHash string, mustChangePassword bool) error
}

type SettingsUpdate struct {
	Currency        string `json:"currency"`
	StartDayOfMonth int    `json:"start_day_of_month"`
}

type PasswordChange struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

type SettingsService struct {
	users SettingsUserRepository
}

func NewSettingsService(users SettingsUserRepository) *SettingsService {
	return &SettingsService{users: users}
}

func (service *SettingsService) Load(ctx context.Context, userID uint) (models.User, error) {
	return service.users.FindByID(ctx, userID)
}

func (service *SettingsService) Save(ctx context.Context, userID uint, update SettingsUpdate) (models.User, error) {
	currency := strings.ToUpper(strings.TrimSpace(update.Currency))
	if !currencyCodeRegex.MatchString(currency) {
		return models.User{}, ErrSettingsCurrencyInvalid
	}
	if update.StartDayOfMonth < 1 || update.StartDayOfMonth > 31 {
		return models.User{}, ErrSettingsStartDayInvalid
	}

	if err := service.users.UpdateSettings(ctx, userID, currency, update.StartDayOfMonth); err != nil {
		return models.User{}, err
	}
	return service.users.FindByID(ctx, userID)
}

// ChangePassword verifies the current password and clears any pending
// forced-change flag set by an operator reset.
func (service *SettingsService) ChangePassword(ctx context.Context, user *models.User, change PasswordChange) error {
	if err := ValidatePasswordChange(user.PasswordHash, change); err != nil {
		return err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(change.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return service.users.UpdatePassword(ctx, user.ID, string(passwordHash), false)
}
