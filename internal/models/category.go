package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CategoryTypeIncome  = "income"
	CategoryTypeExpense = "expense"
)

type Category struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Name      string    `gorm:"not null" json:"name"`
	Type      string    `gorm:"not null" json:"type"`
	Icon      string    `gorm:"not null" json:"icon"`
	CreatedAt time.Time `json:"created_at"`
}

func (category *Category) BeforeCreate(*gorm.DB) error {
	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	return nil
}

type DefaultCategory struct {
	Name string
	Type string
	Icon string
}

func DefaultCategories() []DefaultCategory {
	return []DefaultCategory{
		{Name: "Salary", Type: CategoryTypeIncome, Icon: "💰"},
		{Name: "Freelance", Type: CategoryTypeIncome, Icon: "💻"},
		{Name: "Investments", Type: CategoryTypeIncome, Icon: "📈"},
		{Name: "Other income", Type: CategoryTypeIncome, Icon: "💵"},
		{Name: "Food", Type: CategoryTypeExpense, Icon: "🍔"},
		{Name: "Transport", Type: CategoryTypeExpense, Icon: "🚗"},
		{Name: "Housing", Type: CategoryTypeExpense, Icon: "🏠"},
		{Name: "Entertainment", Type: CategoryTypeExpense, Icon: "🎬"},
		{Name: "Health", Type: CategoryTypeExpense, Icon: "🏥"},
		{Name: "Shopping", Type: CategoryTypeExpense, Icon: "🛒"},
		{Name: "Utilities", Type: CategoryTypeExpense, Icon: "📱"},
		{Name: "Other expenses", Type: CategoryTypeExpense, Icon: "📦"},
	}
}
