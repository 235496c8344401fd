package products

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avinashrao/platterly-backend/pkg/db/models"
)

// ProductDTO is the transport shape for a vendor menu listing.
type ProductDTO struct {
	ID              uuid.UUID        `json:"id"`
	VendorID        uuid.UUID        `json:"vendor_id"`
	ModuleID        *uuid.UUID       `json:"module_id,omitempty"`
	Name            string           `json:"name"`
	Description     *string          `json:"description,omitempty"`
	Image           string           `json:"image"`
	MainPrice       decimal.Decimal  `json:"main_price"`
	SpecialPrice    *decimal.Decimal `json:"special_price,omitempty"`
	PackagingCharge decimal.Decimal  `json:"packaging_charge"`
	IsAvailable     bool             `json:"is_available"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// ProductListResult wraps a page of products plus the cursor for the next page.
type ProductListResult struct {
	Products   []ProductDTO `json:"products"`
	NextCursor *string      `json:"next_cursor,omitempty"`
}

func FromModel(p *models.Product) *ProductDTO {
	if p == nil {
		return nil
	}
	return &ProductDTO{
		ID:              p.ID,
		VendorID:        p.VendorID,
		ModuleID:        p.ModuleID,
		Name:            p.Name,
		Description:     p.Description,
		Image:           p.Image,
		MainPrice:       p.MainPrice,
		SpecialPrice:    p.SpecialPrice,
		PackagingCharge: p.PackagingCharge,
		IsAvailable:     p.IsAvailable,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
