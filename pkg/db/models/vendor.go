package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Vendor represents a storefront merchant. The three charge columns are
// cart-level fees applied once per priced cart at checkout; absent values
// read back as zero.
type Vendor struct {
	ID                uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ModuleID          *uuid.UUID      `gorm:"column:module_id;type:uuid"`
	Name              string          `gorm:"column:name;not null"`
	Description       *string         `gorm:"column:description"`
	Image             string          `gorm:"column:image;not null;default:''"`
	Cuisines          pq.StringArray  `gorm:"column:cuisines;type:text[];not null;default:ARRAY[]::text[]"`
	AddressLine       *string         `gorm:"column:address_line"`
	City              *string         `gorm:"column:city"`
	PackagingCharge   decimal.Decimal `gorm:"column:packaging_charge;type:numeric(12,2);not null;default:0"`
	DeliveryCharge    decimal.Decimal `gorm:"column:delivery_charge;type:numeric(12,2);not null;default:0"`
	ConvenienceCharge decimal.Decimal `gorm:"column:convenience_charge;type:numeric(12,2);not null;default:0"`
	IsActive          bool            `gorm:"column:is_active;not null;default:true"`
	Products          []Product       `gorm:"foreignKey:VendorID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
