package vendors

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avinashrao/platterly-backend/pkg/db/models"
)

// VendorDTO is the transport shape for a storefront merchant.
type VendorDTO struct {
	ID                uuid.UUID       `json:"id"`
	ModuleID          *uuid.UUID      `json:"module_id,omitempty"`
	Name              string          `json:"name"`
	Description       *string         `json:"description,omitempty"`
	Image             string          `json:"image"`
	Cuisines          []string        `json:"cuisines"`
	AddressLine       *string         `json:"address_line,omitempty"`
	City              *string         `json:"city,omitempty"`
	PackagingCharge   decimal.Decimal `json:"packaging_charge"`
	DeliveryCharge    decimal.Decimal `json:"delivery_charge"`
	ConvenienceCharge decimal.Decimal `json:"convenience_charge"`
	IsActive          bool            `json:"is_active"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// VendorListResult wraps a page of vendors plus the cursor for the next page.
type VendorListResult struct {
	Vendors    []VendorDTO `json:"vendors"`
	NextCursor *string     `json:"next_cursor,omitempty"`
}

func FromModel(v *models.Vendor) *VendorDTO {
	if v == nil {
		return nil
	}
	return &VendorDTO{
		ID:                v.ID,
		ModuleID:          v.ModuleID,
		Name:              v.Name,
		Description:       v.Description,
		Image:             v.Image,
		Cuisines:          append([]string(nil), v.Cuisines...),
		AddressLine:       v.AddressLine,
		City:              v.City,
		PackagingCharge:   v.PackagingCharge,
		DeliveryCharge:    v.DeliveryCharge,
		ConvenienceCharge: v.ConvenienceCharge,
		IsActive:          v.IsActive,
		CreatedAt:         v.CreatedAt,
		UpdatedAt:         v.UpdatedAt,
	}
}
