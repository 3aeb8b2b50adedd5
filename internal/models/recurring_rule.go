package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RecurringRule is a user-owned schedule template. NextDueDate is the earliest
// occurrence not yet materialized as a transaction; it only moves forward.
type RecurringRule struct {
	ID          string          `gorm:"primaryKey;type:text" json:"id"`
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	AccountID   string          `gorm:"type:text;not null" json:"account_id"`
	CategoryID  string          `gorm:"type:text;not null" json:"category_id"`
	Amount      decimal.Decimal `gorm:"type:text;not null" json:"amount"`
	Description string          `json:"description"`
	Frequency   string          `gorm:"not null" json:"frequency"`
	StartDate   time.Time       `gorm:"type:date;not null" json:"start_date"`
	NextDueDate time.Time       `gorm:"type:date;not null" json:"next_due_date"`
	Active      bool            `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (rule *RecurringRule) BeforeCreate(*gorm.DB) error {
	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}
	return nil
}
