package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avinashrao/platterly-backend/internal/carts"
	"github.com/avinashrao/platterly-backend/pkg/db/models"
	"github.com/avinashrao/platterly-backend/pkg/enums"
	pkgerrors "github.com/avinashrao/platterly-backend/pkg/errors"
	"github.com/avinashrao/platterly-backend/pkg/logger"
)

type vendorLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
}

type productLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type cartStore interface {
	DeleteByUserAndStatus(ctx context.Context, userID uuid.UUID, status enums.CartStatus) error
	Create(ctx context.Context, cart *models.Cart) (*models.Cart, error)
}

// Service turns a raw multi-vendor cart submission into persisted priced
// cart records, one per vendor block.
type Service interface {
	Checkout(ctx context.Context, userID uuid.UUID, req CheckoutRequest) ([]carts.CartDTO, error)
}

type service struct {
	vendors  vendorLoader
	products productLoader
	carts    cartStore
	logg     *logger.Logger
}

// NewService builds the checkout service.
func NewService(vendors vendorLoader, products productLoader, cartRepo cartStore, logg *logger.Logger) (Service, error) {
	if vendors == nil {
		return nil, fmt.Errorf("vendor loader required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if cartRepo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		vendors:  vendors,
		products: products,
		carts:    cartRepo,
		logg:     logg,
	}, nil
}

// Checkout validates the submission, purges the user's pending carts, then
// prices and persists one cart per vendor block in submission order.
//
// Blocks commit sequentially with no wrapping transaction. A failure on
// block N leaves blocks 1..N-1 durably persisted; callers that need to know
// what landed can query the user's carts in status "New". This matches the
// established storefront behavior and is exercised directly by tests.
func (s *service) Checkout(ctx context.Context, userID uuid.UUID, req CheckoutRequest) ([]carts.CartDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Unauthorized")
	}
	if len(req.Cart) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Cart must be a non-empty array")
	}

	if err := s.carts.DeleteByUserAndStatus(ctx, userID, enums.CartStatusNew); err != nil {
		return nil, s.storageError(ctx, err, "purge pending carts")
	}

	created := make([]carts.CartDTO, 0, len(req.Cart))
	for _, block := range req.Cart {
		cart, err := s.processBlock(ctx, userID, block)
		if err != nil {
			return nil, err
		}
		created = append(created, *carts.FromModel(cart))
	}
	return created, nil
}

func (s *service) processBlock(ctx context.Context, userID uuid.UUID, block VendorBlock) (*models.Cart, error) {
	if block.Vendor == "" || len(block.Products) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Each cart entry must include vendor and products")
	}

	vendorID, err := uuid.Parse(block.Vendor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("Vendor not found: %s", block.Vendor))
	}
	vendor, err := s.vendors.FindByID(ctx, vendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("Vendor not found: %s", block.Vendor))
		}
		return nil, s.storageError(ctx, err, "lookup vendor")
	}

	lines := make([]resolvedLine, 0, len(block.Products))
	for _, entry := range block.Products {
		// Quantity is vetted before the product lookup so a malformed line
		// never costs a round trip.
		qty, ok := entry.Quantity.Int()
		rawID := entry.ResolveID()
		if rawID == "" || !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid product or quantity")
		}

		productID, err := uuid.Parse(rawID)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("Product not found: %s", rawID))
		}
		product, err := s.products.FindByID(ctx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("Product not found: %s", rawID))
			}
			return nil, s.storageError(ctx, err, "lookup product")
		}
		lines = append(lines, resolvedLine{product: product, quantity: qty})
	}

	totals := priceBlock(vendor, lines)

	cart := &models.Cart{
		UserID:             userID,
		VendorID:           vendor.ID,
		Items:              totals.items,
		Subtotal:           totals.subtotal,
		Discount:           totals.discount,
		PackagingCharge:    totals.packagingCharge,
		DeliveryCharge:     vendor.DeliveryCharge,
		ConvenienceCharge:  vendor.ConvenienceCharge,
		TotalQuantity:      totals.totalQuantity,
		TotalPayableAmount: totals.totalPayableAmount,
		Status:             enums.CartStatusNew,
	}
	saved, err := s.carts.Create(ctx, cart)
	if err != nil {
		return nil, s.storageError(ctx, err, "persist cart")
	}
	return saved, nil
}

func (s *service) storageError(ctx context.Context, err error, op string) error {
	s.logg.Error(s.logg.WithField(ctx, "op", op), "checkout storage failure", err)
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, op)
}
