package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	AccountTypeBank       = "bank"
	AccountTypeCash       = "cash"
	AccountTypeSavings    = "savings"
	AccountTypeInvestment = "investment"
)

type Account struct {
	ID             string          `gorm:"primaryKey;type:text" json:"id"`
	UserID         uint            `gorm:"not null;index" json:"user_id"`
	Name           string          `gorm:"not null" json:"name"`
	Type           string          `gorm:"not null;default:bank" json:"type"`
	InitialBalance decimal.Decimal `gorm:"type:text;not null" json:"initial_balance"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (account *Account) BeforeCreate(*gorm.DB) error {
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	return nil
}

func IsValidAccountType(value string) bool {
	switch value {
	case AccountTypeBank, AccountTypeCash, AccountTypeSavings, AccountTypeInvestment:
		return true
	default:
		return false
	}
}
