package models

import "time"

const (
	DefaultCurrency        = "EUR"
	DefaultStartDayOfMonth = 1
)

type User struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Email              string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash       string    `gorm:"not null" json:"-"`
	MustChangePassword bool      `gorm:"not null;default:false" json:"-"`
	Currency           string    `gorm:"not null;default:EUR" json:"currency"`
	StartDayOfMonth    int       `gorm:"not null;default:1" json:"start_day_of_month"`
	CreatedAt          time.Time `gorm:"not null" json:"created_at"`
}
