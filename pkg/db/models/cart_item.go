package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem is a priced line inside a Cart. Prices are copied from the
// product at checkout time so later catalog edits cannot change a priced
// cart. SpecialPrice is nil when no valid promotion applied.
type CartItem struct {
	ID           uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CartID       uuid.UUID        `gorm:"column:cart_id;type:uuid;not null;index"`
	ProductID    uuid.UUID        `gorm:"column:product_id;type:uuid;not null"`
	Name         string           `gorm:"column:name;not null"`
	Quantity     int              `gorm:"column:quantity;not null"`
	MainPrice    decimal.Decimal  `gorm:"column:main_price;type:numeric(12,2);not null"`
	SpecialPrice *decimal.Decimal `gorm:"column:special_price;type:numeric(12,2)"`
	ItemTotal    decimal.Decimal  `gorm:"column:item_total;type:numeric(12,2);not null"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime"`
}
