package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/terraincognita07/finora/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrEmailAlreadyExists = errors.New("email already exists")

type AuthUserRepository interface {
	ExistsByNormalizedEmail(ctx context.Context, email string) (bool, error)
	FindByNormalizedEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, userID uint) (models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, userID uint, passwordHash string, mustChangePassword bool) error
}

type CategorySeeder interface {
	EnsureDefaults(ctx context.Context, userID uint) error
}

type AuthService struct {
	users           AuthUserRepository
	categories      CategorySeeder
	defaultCurrency string
}

func NewAuthService(users AuthUserRepository, categories CategorySeeder, defaultCurrency string) *AuthService {
	if defaultCurrency == "" {
		defaultCurrency = models.DefaultCurrency
	}
	return &AuthService{users: users, categories: categories, defaultCurrency: defaultCurrency}
}

// Register creates the user and seeds the default categories.
func (service *AuthService) Register(ctx context.Context, emailRaw string, passwordRaw string) (models.User, error) {
	email, password, err := NormalizeCredentialsInput(emailRaw, passwordRaw)
	if err != nil {
		return models.User{}, err
	}
	if err := ValidatePasswordStrength(password); err != nil {
		return models.User{}, err
	}

	exists, err := service.users.ExistsByNormalizedEmail(ctx, email)
	if err != nil {
		return models.User{}, err
	}
	if exists {
		return models.User{}, ErrEmailAlreadyExists
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Email:           email,
		PasswordHash:    string(passwordHash),
		Currency:        service.defaultCurrency,
		StartDayOfMonth: models.DefaultStartDayOfMonth,
	}
	if err := service.users.Create(ctx, &user); err != nil {
		return models.User{}, ErrEmailAlreadyExists
	}

	if service.categories != nil {
		if err := service.categories.EnsureDefaults(ctx, user.ID); err != nil {
			return models.User{}, fmt.Errorf("seed categories: %w", err)
		}
	}
	return user, nil
}

// Authenticate returns ErrAuthCredentialsInvalid for unknown emails and wrong
// passwords alike.
func (service *AuthService) Authenticate(ctx context.Context, emailRaw string, passwordRaw string) (models.User, error) {
	email, password, err := NormalizeCredentialsInput(emailRaw, passwordRaw)
	if err != nil {
		return models.User{}, err
	}

	user, err := service.users.FindByNormalizedEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrAuthCredentialsInvalid
		}
		return models.User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrAuthCredentialsInvalid
	}
	return user, nil
}

func (service *AuthService) FindByID(ctx context.Context, userID uint) (models.User, error) {
	return service.users.FindByID(ctx, userID)
}

func (service *AuthService) FindByEmail(ctx context.Context, emailRaw string) (models.User, error) {
	email := NormalizeAuthEmail(emailRaw)
	if email == "" {
		return models.User{}, ErrAuthCredentialsInvalid
	}
	return service.users.FindByNormalizedEmail(ctx, email)
}

// ForcePasswordReset replaces the password with a temporary one that the user
// must change on the next login.
func (service *AuthService) ForcePasswordReset(ctx context.Context, userID uint, temporaryPassword string) error {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(temporaryPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash temporary password: %w", err)
	}
	return service.users.UpdatePassword(ctx, userID, string(passwordHash), true)
}
