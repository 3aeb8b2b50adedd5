package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction is an immutable financial event. Amount is signed: negative for
// expenses, positive for income.
type Transaction struct {
	ID              string          `gorm:"primaryKey;type:text" json:"id"`
	UserID          uint            `gorm:"not null;index" json:"user_id"`
	AccountID       string          `gorm:"type:text;not null;index" json:"account_id"`
	CategoryID      string          `gorm:"type:text;not null;index" json:"category_id"`
	Amount          decimal.Decimal `gorm:"type:text;not null" json:"amount"`
	Description     string          `json:"description"`
	Date            time.Time       `gorm:"type:date;not null" json:"date"`
	IsRecurring     bool            `gorm:"not null;default:false" json:"is_recurring"`
	RecurringRuleID *string         `gorm:"type:text" json:"recurring_rule_id,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

func (transaction *Transaction) BeforeCreate(*gorm.DB) error {
	if transaction.ID == "" {
		transaction.ID = uuid.NewString()
	}
	return nil
}
