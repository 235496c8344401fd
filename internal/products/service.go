package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/avinashrao/platterly-backend/pkg/db/models"
	pkgerrors "github.com/avinashrao/platterly-backend/pkg/errors"
	"github.com/avinashrao/platterly-backend/pkg/pagination"
)

// Service exposes product catalog operations.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	VendorID        uuid.UUID
	ModuleID        *uuid.UUID
	Name            string
	Description     *string
	Image           string
	MainPrice       decimal.Decimal
	SpecialPrice    *decimal.Decimal
	PackagingCharge decimal.Decimal
	IsAvailable     *bool
}

// UpdateProductInput holds optional mutation values for a product.
// SpecialPrice uses a double pointer so callers can clear the promotion
// (outer non-nil, inner nil) as well as set a new value.
type UpdateProductInput struct {
	ModuleID        *uuid.UUID
	Name            *string
	Description     *string
	Image           *string
	MainPrice       *decimal.Decimal
	SpecialPrice    **decimal.Decimal
	PackagingCharge *decimal.Decimal
	IsAvailable     *bool
}

// ListProductsInput filters the product listing.
type ListProductsInput struct {
	Pagination    pagination.Params
	VendorID      *uuid.UUID
	OnlyAvailable bool
}

type vendorLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
}

type productRepo interface {
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context, query ListQuery) ([]models.Product, *pagination.Cursor, error)
	Update(ctx context.Context, product *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo    productRepo
	vendors vendorLoader
}

// NewService constructs a product service instance.
func NewService(repo productRepo, vendors vendorLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if vendors == nil {
		return nil, fmt.Errorf("vendor repository required")
	}
	return &service{repo: repo, vendors: vendors}, nil
}

// CreateProduct validates prices and persists a new menu listing.
func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if err := validatePrices(input.MainPrice, input.SpecialPrice, input.PackagingCharge); err != nil {
		return nil, err
	}

	if _, err := s.vendors.FindByID(ctx, input.VendorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor")
	}

	isAvailable := true
	if input.IsAvailable != nil {
		isAvailable = *input.IsAvailable
	}

	product := &models.Product{
		VendorID:        input.VendorID,
		ModuleID:        input.ModuleID,
		Name:            name,
		Description:     input.Description,
		Image:           input.Image,
		MainPrice:       input.MainPrice,
		SpecialPrice:    input.SpecialPrice,
		PackagingCharge: input.PackagingCharge,
		IsAvailable:     isAvailable,
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
	}
	return FromModel(created), nil
}

// GetProduct loads a single product by ID.
func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return FromModel(product), nil
}

// ListProducts returns a cursor page of products.
func (s *service) ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error) {
	rows, next, err := s.repo.List(ctx, ListQuery{
		Pagination:    input.Pagination,
		VendorID:      input.VendorID,
		OnlyAvailable: input.OnlyAvailable,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	result := &ProductListResult{Products: make([]ProductDTO, 0, len(rows))}
	for i := range rows {
		result.Products = append(result.Products, *FromModel(&rows[i]))
	}
	if next != nil {
		cursor := pagination.EncodeCursor(*next)
		result.NextCursor = &cursor
	}
	return result, nil
}

// UpdateProduct applies the provided mutations to an existing product.
func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	if input.ModuleID != nil {
		product.ModuleID = input.ModuleID
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name cannot be empty")
		}
		product.Name = name
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.Image != nil {
		product.Image = *input.Image
	}
	if input.MainPrice != nil {
		product.MainPrice = *input.MainPrice
	}
	if input.SpecialPrice != nil {
		product.SpecialPrice = *input.SpecialPrice
	}
	if input.PackagingCharge != nil {
		product.PackagingCharge = *input.PackagingCharge
	}
	if input.IsAvailable != nil {
		product.IsAvailable = *input.IsAvailable
	}

	if err := validatePrices(product.MainPrice, product.SpecialPrice, product.PackagingCharge); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product")
	}
	return FromModel(updated), nil
}

// DeleteProduct removes a product.
func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

func validatePrices(main decimal.Decimal, special *decimal.Decimal, packaging decimal.Decimal) error {
	if main.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "main_price must be non-negative")
	}
	if special != nil && special.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "special_price must be non-negative")
	}
	if packaging.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "packaging_charge must be non-negative")
	}
	return nil
}
