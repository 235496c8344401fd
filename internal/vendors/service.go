package vendors

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

// Service exposes vendor management operations.
type Service interface {
	CreateVendor(ctx context.Context, input CreateVendorInput) (*VendorDTO, error)
	GetVendor(ctx context.Context, id uuid.UUID) (*VendorDTO, error)
	ListVendors(ctx context.Context, input ListVendorsInput) (*VendorListResult, error)
	UpdateVendor(ctx context.Context, id uuid.UUID, input UpdateVendorInput) (*VendorDTO, error)
	DeleteVendor(ctx context.Context, id uuid.UUID) error
}

// CreateVendorInput holds the validated payload to create a vendor.
type CreateVendorInput struct {
	ModuleID          *uuid.UUID
	Name              string
	Description       *string
	Image             string
	Cuisines          []string
	AddressLine       *string
	City              *string
	PackagingCharge   decimal.Decimal
	DeliveryCharge    decimal.Decimal
	ConvenienceCharge decimal.Decimal
	IsActive          *bool
}

// UpdateVendorInput holds optional mutation values for a vendor.
type UpdateVendorInput struct {
	ModuleID          *uuid.UUID
	Name              *string
	Description       *string
	Image             *string
	Cuisines          *[]string
	AddressLine       *string
	City              *string
	PackagingCharge   *decimal.Decimal
	DeliveryCharge    *decimal.Decimal
	ConvenienceCharge *decimal.Decimal
	IsActive          *bool
}

// ListVendorsInput filters the vendor listing.
type ListVendorsInput struct {
	Pagination pagination.Params
	ModuleID   *uuid.UUID
	OnlyActive bool
}

type moduleLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Module, error)
}

type vendorRepo interface {
	Create(ctx context.Context, vendor *models.Vendor) (*models.Vendor, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
	List(ctx context.Context, query ListQuery) ([]models.Vendor, *pagination.Cursor, error)
	Update(ctx context.Context, vendor *models.Vendor) (*models.Vendor, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo    vendorRepo
	modules moduleLoader
}

// NewService constructs a vendor service instance.
func NewService(repo vendorRepo, modules moduleLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("vendor repository required")
	}
	if modules == nil {
		return nil, fmt.Errorf("module repository required")
	}
	return &service{repo: repo, modules: modules}, nil
}

// CreateVendor validates charges and persists a new vendor.
func (s *service) CreateVendor(ctx context.Context, input CreateVendorInput) (*VendorDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor name is required")
	}
	if err := validateCharges(input.PackagingCharge, input.DeliveryCharge, input.ConvenienceCharge); err != nil {
		return nil, err
	}
	if input.ModuleID != nil {
		if err := s.ensureModule(ctx, *input.ModuleID); err != nil {
			return nil, err
		}
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	cuisines := input.Cuisines
	if cuisines == nil {
		cuisines = []string{}
	}

	vendor := &models.Vendor{
		ModuleID:          input.ModuleID,
		Name:              name,
		Description:       input.Description,
		Image:             input.Image,
		Cuisines:          append([]string(nil), cuisines...),
		AddressLine:       input.AddressLine,
		City:              input.City,
		PackagingCharge:   input.PackagingCharge,
		DeliveryCharge:    input.DeliveryCharge,
		ConvenienceCharge: input.ConvenienceCharge,
		IsActive:          isActive,
	}

	created, err := s.repo.Create(ctx, vendor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert vendor")
	}
	return FromModel(created), nil
}

// GetVendor loads a single vendor by ID.
func (s *service) GetVendor(ctx context.Context, id uuid.UUID) (*VendorDTO, error) {
	vendor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor")
	}
	return FromModel(vendor), nil
}

// ListVendors returns a cursor page of vendors.
func (s *service) ListVendors(ctx context.Context, input ListVendorsInput) (*VendorListResult, error) {
	rows, next, err := s.repo.List(ctx, ListQuery{
		Pagination: input.Pagination,
		ModuleID:   input.ModuleID,
		OnlyActive: input.OnlyActive,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list vendors")
	}

	result := &VendorListResult{Vendors: make([]VendorDTO, 0, len(rows))}
	for i := range rows {
		result.Vendors = append(result.Vendors, *FromModel(&rows[i]))
	}
	if next != nil {
		cursor := pagination.EncodeCursor(*next)
		result.NextCursor = &cursor
	}
	return result, nil
}

// UpdateVendor applies the provided mutations to an existing vendor.
func (s *service) UpdateVendor(ctx context.Context, id uuid.UUID, input UpdateVendorInput) (*VendorDTO, error) {
	vendor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor")
	}

	if input.ModuleID != nil {
		if err := s.ensureModule(ctx, *input.ModuleID); err != nil {
			return nil, err
		}
		vendor.ModuleID = input.ModuleID
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor name cannot be empty")
		}
		vendor.Name = name
	}
	if input.Description != nil {
		vendor.Description = input.Description
	}
	if input.Image != nil {
		vendor.Image = *input.Image
	}
	if input.Cuisines != nil {
		vendor.Cuisines = append([]string(nil), *input.Cuisines...)
	}
	if input.AddressLine != nil {
		vendor.AddressLine = input.AddressLine
	}
	if input.City != nil {
		vendor.City = input.City
	}
	if input.PackagingCharge != nil {
		vendor.PackagingCharge = *input.PackagingCharge
	}
	if input.DeliveryCharge != nil {
		vendor.DeliveryCharge = *input.DeliveryCharge
	}
	if input.ConvenienceCharge != nil {
		vendor.ConvenienceCharge = *input.ConvenienceCharge
	}
	if input.IsActive != nil {
		vendor.IsActive = *input.IsActive
	}

	if err := validateCharges(vendor.PackagingCharge, vendor.DeliveryCharge, vendor.ConvenienceCharge); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, vendor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update vendor")
	}
	return FromModel(updated), nil
}

// DeleteVendor removes a vendor and relies on FK cascades for related rows.
func (s *service) DeleteVendor(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete vendor")
	}
	return nil
}

func (s *service) ensureModule(ctx context.Context, moduleID uuid.UUID) error {
	if _, err := s.modules.FindByID(ctx, moduleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeValidation, "module not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load module")
	}
	return nil
}

func validateCharges(charges ...decimal.Decimal) error {
	for _, charge := range charges {
		if charge.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "vendor charges must be non-negative")
		}
	}
	return nil
}
