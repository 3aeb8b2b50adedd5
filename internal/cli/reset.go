package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/terraincognita07/finora/internal/db"
	"github.com/terraincognita07/finora/internal/models"
	"github.com/terraincognita07/finora/internal/security"
	"github.com/terraincognita07/finora/internal/services"
	"gorm.io/gorm"
)

const temporaryPasswordLength = 12

// PasswordSource supplies the temporary password for a reset.
type PasswordSource func() (string, error)

func GeneratedPassword() (string, error) {
	return security.TemporaryPassword(temporaryPasswordLength)
}

// RunResetPasswordCommand replaces the user's password with a temporary one
// and forces a change on the next login.
func RunResetPasswordCommand(ctx context.Context, dbPath string, email string, source PasswordSource, out io.Writer) error {
	if source == nil {
		source = GeneratedPassword
	}

	database, closeDatabase, err := openDatabase(dbPath)
	if err != nil {
		return err
	}
	defer closeDatabase()

	authService := newAuthService(database)
	user, err := findUser(ctx, authService, email)
	if err != nil {
		return err
	}

	temporaryPassword, err := source()
	if err != nil {
		return fmt.Errorf("temporary password: %w", err)
	}
	if err := services.ValidatePasswordStrength(temporaryPassword); err != nil {
		return fmt.Errorf("temporary password rejected: %w", err)
	}
	if err := authService.ForcePasswordReset(ctx, user.ID, temporaryPassword); err != nil {
		return fmt.Errorf("update user password: %w", err)
	}

	fmt.Fprintln(out, "Password reset successful")
	fmt.Fprintf(out, "Temporary password: %s\n", temporaryPassword)
	fmt.Fprintln(out, "User must change password on next login.")
	return nil
}

func newAuthService(database *gorm.DB) *services.AuthService {
	repositories := db.NewRepositories(database)
	return services.NewAuthService(repositories.Users, services.NewCategoryService(repositories.Categories), models.DefaultCurrency)
}

func findUser(ctx context.Context, authService *services.AuthService, email string) (models.User, error) {
	user, err := authService.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, services.ErrAuthCredentialsInvalid) {
			return models.User{}, errors.New("a valid email is required")
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, fmt.Errorf("user %s not found", services.NormalizeAuthEmail(email))
		}
		return models.User{}, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}
