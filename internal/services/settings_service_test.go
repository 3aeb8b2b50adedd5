package services

import (
	"context"
	"errors"
	"testing"

	"github.com/terraincognita07/finora/internal/models"
	"golang.org/x/crypto/bcrypt"
)

type stubSettingsUsers struct {
	user               models.User
	passwordHash       string
	mustChangePassword bool
}

func (stub *stubSettingsUsers) FindByID(context.Context, uint) (models.User, error) {
	return stub.user, nil
}

func (stub *stubSettingsUsers) UpdateSettings(_ context.Context, _ uint, currency string, startDay int) error {
	stub.user.Currency = currency
	stub.user.StartDayOfMonth = startDay
	return nil
}

func (stub *stubSettingsUsers) UpdatePassword(_ context.Context, _ uint, passwordHash string, mustChangePassword bool) error {
	stub.passwordHash = passwordHash
	stub.mustChangePassword = mustChangePassword
	return nil
}

func TestSettingsServiceSaveValidates(t *testing.T) {
	users := &stubSettingsUsers{user: models.User{ID: 1, Currency: "EUR", StartDayOfMonth: 1}}
	service := NewSettingsService(users)

	if _, err := service.Save(context.Background(), 1, SettingsUpdate{Currency: "euro", StartDayOfMonth: 1}); !errors.Is(err, ErrSettingsCurrencyInvalid) {
		t.Fatalf("expected ErrSettingsCurrencyInvalid, got %v", err)
	}
	if _, err := service.Save(context.Background(), 1, SettingsUpdate{Currency: "USD", StartDayOfMonth: 32}); !errors.Is(err, ErrSettingsStartDayInvalid) {
		t.Fatalf("expected ErrSettingsStartDayInvalid, got %v", err)
	}

	saved, err := service.Save(context.Background(), 1, SettingsUpdate{Currency: " usd ", StartDayOfMonth: 25})
	if err != nil {
		t.Fatalf("save settings: %v", err)
	}
	if saved.Currency != "USD" || saved.StartDayOfMonth != 25 {
		t.Fatalf("unexpected settings %+v", saved)
	}
}

func TestSettingsServiceChangePassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("OldPass123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	users := &stubSettingsUsers{}
	service := NewSettingsService(users)
	user := &models.User{ID: 1, PasswordHash: string(hash), MustChangePassword: true}

	testCases := []struct {
		name   string
		change PasswordChange
		want   error
	}{
		{name: "missing current", change: PasswordChange{NewPassword: "NewPass123", ConfirmPassword: "NewPass123"}, want: ErrSettingsPasswordMissing},
		{name: "wrong current", change: PasswordChange{CurrentPassword: "Wrong1234", NewPassword: "NewPass123", ConfirmPassword: "NewPass123"}, want: ErrSettingsPasswordInvalid},
		{name: "mismatch", change: PasswordChange{CurrentPassword: "OldPass123", NewPassword: "NewPass123", ConfirmPassword: "NewPass124"}, want: ErrSettingsPasswordMismatch},
		{name: "unchanged", change: PasswordChange{CurrentPassword: "OldPass123", NewPassword: "OldPass123", ConfirmPassword: "OldPass123"}, want: ErrSettingsPasswordUnchanged},
		{name: "weak", change: PasswordChange{CurrentPassword: "OldPass123", NewPassword: "weak", ConfirmPassword: "weak"}, want: ErrWeakPassword},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if err := service.ChangePassword(context.Background(), user, testCase.change); !errors.Is(err, testCase.want) {
				t.Fatalf("expected %v, got %v", testCase.want, err)
			}
		})
	}

	if err := service.ChangePassword(context.Background(), user, PasswordChange{CurrentPassword: "OldPass123", NewPassword: "NewPass123", ConfirmPassword: "NewPass123"}); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if users.mustChangePassword {
		t.Fatal("expected forced-change flag cleared")
	}
	if bcrypt.CompareHashAndPassword([]byte(users.passwordHash), []byte("NewPass123")) != nil {
		t.Fatal("expected new password hash stored")
	}
}
