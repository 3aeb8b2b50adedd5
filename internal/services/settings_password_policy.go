package services

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrSettingsPasswordMissing   = errors.New("settings password missing")
	ErrSettingsPasswordInvalid   = errors.New("settings password invalid")
	ErrSettingsPasswordUnchanged = errors.New("settings password unchanged")
	ErrSettingsPasswordMismatch  = errors.New("settings password mismatch")
)

// ValidatePasswordChange checks the current password against passwordHash
// before the new one is accepted.
func ValidatePasswordChange(passwordHash string, change PasswordChange) error {
	current := strings.TrimSpace(change.CurrentPassword)
	if current == "" {
		return ErrSettingsPasswordMissing
	}
	if bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(current)) != nil {
		return ErrSettingsPasswordInvalid
	}
	if change.NewPassword != change.ConfirmPassword {
		return ErrSettingsPasswordMismatch
	}
	if change.NewPassword == current {
		return ErrSettingsPasswordUnchanged
	}
	return ValidatePasswordStrength(change.NewPassword)
}
