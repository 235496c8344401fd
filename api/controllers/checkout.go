package controllers

import (
	"net/http"

	"github.com/avinashrao/platterly-backend/api/middleware"
	"github.com/avinashrao/platterly-backend/api/responses"
	"github.com/avinashrao/platterly-backend/api/validators"
	"github.com/avinashrao/platterly-backend/internal/checkout"
	pkgerrors "github.com/avinashrao/platterly-backend/pkg/errors"
	"github.com/avinashrao/platterly-backend/pkg/logger"
)

// Checkout prices the submitted multi-vendor cart and persists one pending
// cart per vendor. Client mistakes come back through the standard error
// envelope; storage failures use the fixed "Checkout failed" shape.
func Checkout(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service not configured"))
			return
		}

		userID := middleware.UserIDFromContext(r.Context())

		var req checkout.CheckoutRequest
		if err := validators.DecodeJSONBodyLenient(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		saved, err := svc.Checkout(r.Context(), userID, req)
		if err != nil {
			if appErr := pkgerrors.As(err); appErr != nil && appErr.Code() != pkgerrors.CodeInternal {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteFailure(r.Context(), logg, w, http.StatusInternalServerError, "Checkout failed", err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, "Cart(s) saved", saved)
	}
}
