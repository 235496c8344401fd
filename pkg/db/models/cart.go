package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avinashrao/platterly-backend/pkg/enums"
)

// Cart is the priced per-vendor snapshot persisted at checkout. Exactly one
// row is created per vendor block in a checkout submission; rows with status
// "New" are replaced wholesale on the user's next checkout.
type Cart struct {
	ID                 uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID             uuid.UUID        `gorm:"column:user_id;type:uuid;not null;index"`
	VendorID           uuid.UUID        `gorm:"column:vendor_id;type:uuid;not null"`
	Items              []CartItem       `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	Subtotal           decimal.Decimal  `gorm:"column:subtotal;type:numeric(12,2);not null;default:0"`
	Discount           decimal.Decimal  `gorm:"column:discount;type:numeric(12,2);not null;default:0"`
	PackagingCharge    decimal.Decimal  `gorm:"column:packaging_charge;type:numeric(12,2);not null;default:0"`
	DeliveryCharge     decimal.Decimal  `gorm:"column:delivery_charge;type:numeric(12,2);not null;default:0"`
	ConvenienceCharge  decimal.Decimal  `gorm:"column:convenience_charge;type:numeric(12,2);not null;default:0"`
	TotalQuantity      int              `gorm:"column:total_quantity;not null;default:0"`
	TotalPayableAmount decimal.Decimal  `gorm:"column:total_payable_amount;type:numeric(12,2);not null;default:0"`
	Status             enums.CartStatus `gorm:"column:status;type:text;not null;default:'New';index"`
	CreatedAt          time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
