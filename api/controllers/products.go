package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avinashrao/platterly-backend/api/responses"
	"github.com/avinashrao/platterly-backend/api/validators"
	"github.com/avinashrao/platterly-backend/internal/products"
	pkgerrors "github.com/avinashrao/platterly-backend/pkg/errors"
	"github.com/avinashrao/platterly-backend/pkg/logger"
)

// optionalDecimal distinguishes an absent field from an explicit null so
// updates can clear a promotional price.
type optionalDecimal struct {
	set   bool
	value *decimal.Decimal
}

func (o *optionalDecimal) UnmarshalJSON(b []byte) error {
	o.set = true
	if string(b) == "null" {
		o.value = nil
		return nil
	}
	var d decimal.Decimal
	if err := json.Unmarshal(b, &d); err != nil {
		return err
	}
	o.value = &d
	return nil
}

type createProductRequest struct {
	VendorID        uuid.UUID        `json:"vendor_id" validate:"required"`
	ModuleID        *uuid.UUID       `json:"module_id,omitempty"`
	Name            string           `json:"name" validate:"required"`
	Description     *string          `json:"description,omitempty"`
	Image           string           `json:"image"`
	MainPrice       decimal.Decimal  `json:"main_price"`
	SpecialPrice    *decimal.Decimal `json:"special_price,omitempty"`
	PackagingCharge decimal.Decimal  `json:"packaging_charge"`
	IsAvailable     *bool            `json:"is_available,omitempty"`
}

func (req createProductRequest) toInput() products.CreateProductInput {
	return products.CreateProductInput{
		VendorID:        req.VendorID,
		ModuleID:        req.ModuleID,
		Name:            req.Name,
		Description:     req.Description,
		Image:           req.Image,
		MainPrice:       req.MainPrice,
		SpecialPrice:    req.SpecialPrice,
		PackagingCharge: req.PackagingCharge,
		IsAvailable:     req.IsAvailable,
	}
}

type updateProductRequest struct {
	ModuleID        *uuid.UUID       `json:"module_id,omitempty"`
	Name            *string          `json:"name,omitempty"`
	Description     *string          `json:"description,omitempty"`
	Image           *string          `json:"image,omitempty"`
	MainPrice       *decimal.Decimal `json:"main_price,omitempty"`
	SpecialPrice    optionalDecimal  `json:"special_price"`
	PackagingCharge *decimal.Decimal `json:"packaging_charge,omitempty"`
	IsAvailable     *bool            `json:"is_available,omitempty"`
}

func (req updateProductRequest) toInput() products.UpdateProductInput {
	input := products.UpdateProductInput{
		ModuleID:        req.ModuleID,
		Name:            req.Name,
		Description:     req.Description,
		Image:           req.Image,
		MainPrice:       req.MainPrice,
		PackagingCharge: req.PackagingCharge,
		IsAvailable:     req.IsAvailable,
	}
	if req.SpecialPrice.set {
		v := req.SpecialPrice.value
		input.SpecialPrice = &v
	}
	return input
}

// CreateProduct adds a product to a vendor's menu. Admin only.
func CreateProduct(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service not configured"))
			return
		}

		var req createProductRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, "product created", product)
	}
}

// GetProduct returns a single product by id.
func GetProduct(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service not configured"))
			return
		}

		id, err := validators.URLParamUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "product", product)
	}
}

// ListProducts returns a cursor page of products, optionally scoped to a
// vendor. The storefront variant hides unavailable items.
func ListProducts(svc products.Service, logg *logger.Logger, onlyAvailable bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service not configured"))
			return
		}

		page, err := parsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		vendorID, err := parseQueryUUID(r, "vendor_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListProducts(r.Context(), products.ListProductsInput{
			Pagination:    page,
			VendorID:      vendorID,
			OnlyAvailable: onlyAvailable,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "products", result)
	}
}

// UpdateProduct applies partial changes to a product. Admin only.
func UpdateProduct(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service not configured"))
			return
		}

		id, err := validators.URLParamUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateProductRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), id, req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "product updated", product)
	}
}

// DeleteProduct removes a product. Admin only.
func DeleteProduct(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service not configured"))
			return
		}

		id, err := validators.URLParamUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProduct(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "product deleted", nil)
	}
}
