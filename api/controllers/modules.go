package controllers

import (
	"net/http"

	"github.com/avinashrao/platterly-backend/api/responses"
	"github.com/avinashrao/platterly-backend/api/validators"
	"github.com/avinashrao/platterly-backend/internal/modules"
	pkgerrors "github.com/avinashrao/platterly-backend/pkg/errors"
	"github.com/avinashrao/platterly-backend/pkg/logger"
)

type createModuleRequest struct {
	Name   string `json:"name" validate:"required"`
	Image  string `json:"image"`
	Active *bool  `json:"active,omitempty"`
}

func (req createModuleRequest) toInput() modules.CreateModuleInput {
	return modules.CreateModuleInput{Name: req.Name, Image: req.Image, Active: req.Active}
}

type updateModuleRequest struct {
	Name   *string `json:"name,omitempty"`
	Image  *string `json:"image,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

func (req updateModuleRequest) toInput() modules.UpdateModuleInput {
	return modules.UpdateModuleInput{Name: req.Name, Image: req.Image, Active: req.Active}
}

// ListModules returns service modules. The storefront sees active modules
// only; admins see all of them.
func ListModules(svc modules.Service, logg *logger.Logger, includeInactive bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "module service not configured"))
			return
		}

		var (
			result []modules.ModuleDTO
			err    error
		)
		if includeInactive {
			result, err = svc.ListAllModules(r.Context())
		} else {
			result, err = svc.ListActiveModules(r.Context())
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "modules", result)
	}
}

// CreateModule registers a new service module. Admin only.
func CreateModule(svc modules.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "module service not configured"))
			return
		}

		var req createModuleRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		module, err := svc.CreateModule(r.Context(), req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, "module created", module)
	}
}

// UpdateModule applies partial changes to a module. Admin only.
func UpdateModule(svc modules.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "module service not configured"))
			return
		}

		id, err := validators.URLParamUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateModuleRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		module, err := svc.UpdateModule(r.Context(), id, req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "module updated", module)
	}
}

// DeleteModule removes a module. Admin only.
func DeleteModule(svc modules.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "module service not configured"))
			return
		}

		id, err := validators.URLParamUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteModule(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "module deleted", nil)
	}
}
