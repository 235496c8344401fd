package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avinashrao/platterly-backend/api/responses"
	"github.com/avinashrao/platterly-backend/api/validators"
	"github.com/avinashrao/platterly-backend/internal/vendors"
	pkgerrors "github.com/avinashrao/platterly-backend/pkg/errors"
	"github.com/avinashrao/platterly-backend/pkg/logger"
)

type createVendorRequest struct {
	ModuleID          *uuid.UUID      `json:"module_id,omitempty"`
	Name              string          `json:"name" validate:"required"`
	Description       *string         `json:"description,omitempty"`
	Image             string          `json:"image"`
	Cuisines          []string        `json:"cuisines,omitempty"`
	AddressLine       *string         `json:"address_line,omitempty"`
	City              *string         `json:"city,omitempty"`
	PackagingCharge   decimal.Decimal `json:"packaging_charge"`
	DeliveryCharge    decimal.Decimal `json:"delivery_charge"`
	ConvenienceCharge decimal.Decimal `json:"convenience_charge"`
	IsActive          *bool           `json:"is_active,omitempty"`
}

func (req createVendorRequest) toInput() vendors.CreateVendorInput {
	return vendors.CreateVendorInput{
		ModuleID:          req.ModuleID,
		Name:              req.Name,
		Description:       req.Description,
		Image:             req.Image,
		Cuisines:          req.Cuisines,
		AddressLine:       req.AddressLine,
		City:              req.City,
		PackagingCharge:   req.PackagingCharge,
		DeliveryCharge:    req.DeliveryCharge,
		ConvenienceCharge: req.ConvenienceCharge,
		IsActive:          req.IsActive,
	}
}

type updateVendorRequest struct {
	ModuleID          *uuid.UUID       `json:"module_id,omitempty"`
	Name              *string          `json:"name,omitempty"`
	Description       *string          `json:"description,omitempty"`
	Image             *string          `json:"image,omitempty"`
	Cuisines          *[]string        `json:"cuisines,omitempty"`
	AddressLine       *string          `json:"address_line,omitempty"`
	City              *string          `json:"city,omitempty"`
	PackagingCharge   *decimal.Decimal `json:"packaging_charge,omitempty"`
	DeliveryCharge    *decimal.Decimal `json:"delivery_charge,omitempty"`
	ConvenienceCharge *decimal.Decimal `json:"convenience_charge,omitempty"`
	IsActive          *bool            `json:"is_active,omitempty"`
}

func (req updateVendorRequest) toInput() vendors.UpdateVendorInput {
	return vendors.UpdateVendorInput{
		ModuleID:          req.ModuleID,
		Name:              req.Name,
		Description:       req.Description,
		Image:             req.Image,
		Cuisines:          req.Cuisines,
		AddressLine:       req.AddressLine,
		City:              req.City,
		PackagingCharge:   req.PackagingCharge,
		DeliveryCharge:    req.DeliveryCharge,
		ConvenienceCharge: req.ConvenienceCharge,
		IsActive:          req.IsActive,
	}
}

// CreateVendor registers a new vendor. Admin only.
func CreateVendor(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendor service not configured"))
			return
		}

		var req createVendorRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vendor, err := svc.CreateVendor(r.Context(), req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, "vendor created", vendor)
	}
}

// GetVendor returns a single vendor by id.
func GetVendor(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendor service not configured"))
			return
		}

		id, err := validators.URLParamUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vendor, err := svc.GetVendor(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "vendor", vendor)
	}
}

// ListVendors returns a cursor page of vendors. The public storefront
// filters to active vendors; admins see everything.
func ListVendors(svc vendors.Service, logg *logger.Logger, onlyActive bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendor service not configured"))
			return
		}

		page, err := parsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		moduleID, err := parseQueryUUID(r, "module_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListVendors(r.Context(), vendors.ListVendorsInput{
			Pagination: page,
			ModuleID:   moduleID,
			OnlyActive: onlyActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "vendors", result)
	}
}

// UpdateVendor applies partial changes to a vendor. Admin only.
func UpdateVendor(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendor service not configured"))
			return
		}

		id, err := validators.URLParamUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateVendorRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vendor, err := svc.UpdateVendor(r.Context(), id, req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "vendor updated", vendor)
	}
}

// DeleteVendor removes a vendor. Admin only.
func DeleteVendor(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendor service not configured"))
			return
		}

		id, err := validators.URLParamUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteVendor(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "vendor deleted", nil)
	}
}
