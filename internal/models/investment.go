package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	AssetTypeStock  = "stock"
	AssetTypeCrypto = "crypto"
	AssetTypeETF    = "etf"
	AssetTypeBond   = "bond"
	AssetTypeOther  = "other"
)

// Investment is a manually tracked holding. CurrentPrice is whatever the user
// last entered; it is nil until the first price update.
type Investment struct {
	ID           string           `gorm:"primaryKey;type:text" json:"id"`
	UserID       uint             `gorm:"not null;index" json:"user_id"`
	Symbol       string           `gorm:"not null" json:"symbol"`
	Name         string           `json:"name"`
	AssetType    string           `gorm:"not null;default:stock" json:"asset_type"`
	Quantity     decimal.Decimal  `gorm:"type:text;not null" json:"quantity"`
	AvgBuyPrice  decimal.Decimal  `gorm:"type:text;not null" json:"avg_buy_price"`
	Currency     string           `gorm:"not null" json:"currency"`
	CurrentPrice *decimal.Decimal `gorm:"type:text" json:"current_price,omitempty"`
	LastUpdated  *time.Time       `json:"last_updated,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}

func (investment *Investment) BeforeCreate(*gorm.DB) error {
	if investment.ID == "" {
		investment.ID = uuid.NewString()
	}
	return nil
}

func IsValidAssetType(value string) bool {
	switch value {
	case AssetTypeStock, AssetTypeCrypto, AssetTypeETF, AssetTypeBond, AssetTypeOther:
		return true
	default:
		return false
	}
}
