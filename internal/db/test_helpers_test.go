package db

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/terraincognita07/finora/internal/models"
	"gorm.io/gorm"
)

func openTestDatabase(t *testing.T, databasePath string) *gorm.DB {
	t.Helper()

	database, err := Open(Options{Path: databasePath, LogLevel: "silent"})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return database
}

type financeFixture struct {
	user     models.User
	account  models.Account
	category models.Category
}

func seedFinanceFixture(t *testing.T, database *gorm.DB, email string) financeFixture {
	t.Helper()

	user := models.User{Email: email, PasswordHash: "hash", CreatedAt: time.Now().UTC()}
	if err := database.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	account := models.Account{UserID: user.ID, Name: "Checking", Type: models.AccountTypeBank, InitialBalance: decimal.NewFromInt(100)}
	if err := database.Create(&account).Error; err != nil {
		t.Fatalf("create account: %v", err)
	}
	category := models.Category{UserID: user.ID, Name: "Housing", Type: models.CategoryTypeExpense, Icon: "🏠"}
	if err := database.Create(&category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	return financeFixture{user: user, account: account, category: category}
}

func calendarDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
