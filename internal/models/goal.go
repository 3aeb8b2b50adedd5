package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const DefaultGoalIcon = "🎯"

// Goal is a savings target. CurrentAmount moves only through contributions
// and withdrawals and never drops below zero.
type Goal struct {
	ID            string          `gorm:"primaryKey;type:text" json:"id"`
	UserID        uint            `gorm:"not null;index" json:"user_id"`
	Name          string          `gorm:"not null" json:"name"`
	Icon          string          `gorm:"not null" json:"icon"`
	TargetAmount  decimal.Decimal `gorm:"type:text;not null" json:"target_amount"`
	CurrentAmount decimal.Decimal `gorm:"type:text;not null" json:"current_amount"`
	Deadline      *time.Time      `gorm:"type:date" json:"deadline,omitempty"`
	IsPinned      bool            `gorm:"not null;default:false" json:"is_pinned"`
	CreatedAt     time.Time       `json:"created_at"`
}

func (goal *Goal) BeforeCreate(*gorm.DB) error {
	if goal.ID == "" {
		goal.ID = uuid.NewString()
	}
	return nil
}
