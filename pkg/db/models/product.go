package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a vendor menu listing. MainPrice is the list price;
// SpecialPrice is an optional promotional price (nil or zero means no
// promotion). PackagingCharge is a per-unit fee summed into the cart-level
// packaging charge at checkout.
type Product struct {
	ID              uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VendorID        uuid.UUID        `gorm:"column:vendor_id;type:uuid;not null"`
	ModuleID        *uuid.UUID       `gorm:"column:module_id;type:uuid"`
	Name            string           `gorm:"column:name;not null"`
	Description     *string          `gorm:"column:description"`
	Image           string           `gorm:"column:image;not null;default:''"`
	MainPrice       decimal.Decimal  `gorm:"column:main_price;type:numeric(12,2);not null"`
	SpecialPrice    *decimal.Decimal `gorm:"column:special_price;type:numeric(12,2)"`
	PackagingCharge decimal.Decimal  `gorm:"column:packaging_charge;type:numeric(12,2);not null;default:0"`
	IsAvailable     bool             `gorm:"column:is_available;not null;default:true"`
	CreatedAt       time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
