package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const BudgetPeriodMonthly = "monthly"

type Budget struct {
	ID          string          `gorm:"primaryKey;type:text" json:"id"`
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	CategoryID  string          `gorm:"type:text;not null" json:"category_id"`
	AmountLimit decimal.Decimal `gorm:"type:text;not null" json:"amount_limit"`
	Period      string          `gorm:"not null;default:monthly" json:"period"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (budget *Budget) BeforeCreate(*gorm.DB) error {
	if budget.ID == "" {
		budget.ID = uuid.NewString()
	}
	return nil
}
