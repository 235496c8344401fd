package carts

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avinashrao/platterly-backend/pkg/db/models"
	"github.com/avinashrao/platterly-backend/pkg/enums"
)

// CartDTO is the API shape of a priced per-vendor cart.
type CartDTO struct {
	ID                 uuid.UUID        `json:"id"`
	UserID             uuid.UUID        `json:"user_id"`
	VendorID           uuid.UUID        `json:"vendor_id"`
	Items              []CartItemDTO    `json:"items"`
	Subtotal           decimal.Decimal  `json:"subtotal"`
	Discount           decimal.Decimal  `json:"discount"`
	PackagingCharge    decimal.Decimal  `json:"packaging_charge"`
	DeliveryCharge     decimal.Decimal  `json:"delivery_charge"`
	ConvenienceCharge  decimal.Decimal  `json:"convenience_charge"`
	TotalQuantity      int              `json:"total_quantity"`
	TotalPayableAmount decimal.Decimal  `json:"total_payable_amount"`
	Status             enums.CartStatus `json:"status"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// CartItemDTO is the API shape of one priced cart line.
type CartItemDTO struct {
	ID           uuid.UUID        `json:"id"`
	ProductID    uuid.UUID        `json:"product_id"`
	Name         string           `json:"name"`
	Quantity     int              `json:"quantity"`
	MainPrice    decimal.Decimal  `json:"main_price"`
	SpecialPrice *decimal.Decimal `json:"special_price"`
	ItemTotal    decimal.Decimal  `json:"item_total"`
}

// FromModel converts a cart model into its API representation.
func FromModel(cart *models.Cart) *CartDTO {
	if cart == nil {
		return nil
	}
	items := make([]CartItemDTO, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, CartItemDTO{
			ID:           item.ID,
			ProductID:    item.ProductID,
			Name:         item.Name,
			Quantity:     item.Quantity,
			MainPrice:    item.MainPrice,
			SpecialPrice: item.SpecialPrice,
			ItemTotal:    item.ItemTotal,
		})
	}
	return &CartDTO{
		ID:                 cart.ID,
		UserID:             cart.UserID,
		VendorID:           cart.VendorID,
		Items:              items,
		Subtotal:           cart.Subtotal,
		Discount:           cart.Discount,
		PackagingCharge:    cart.PackagingCharge,
		DeliveryCharge:     cart.DeliveryCharge,
		ConvenienceCharge:  cart.ConvenienceCharge,
		TotalQuantity:      cart.TotalQuantity,
		TotalPayableAmount: cart.TotalPayableAmount,
		Status:             cart.Status,
		CreatedAt:          cart.CreatedAt,
		UpdatedAt:          cart.UpdatedAt,
	}
}

// FromModels converts a slice of cart models.
func FromModels(carts []models.Cart) []CartDTO {
	out := make([]CartDTO, 0, len(carts))
	for i := range carts {
		out = append(out, *FromModel(&carts[i]))
	}
	return out
}
