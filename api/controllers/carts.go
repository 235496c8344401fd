package controllers

import (
	"net/http"

	"github.com/avinashrao/platterly-backend/api/middleware"
	"github.com/avinashrao/platterly-backend/api/responses"
	"github.com/avinashrao/platterly-backend/internal/carts"
	pkgerrors "github.com/avinashrao/platterly-backend/pkg/errors"
	"github.com/avinashrao/platterly-backend/pkg/logger"
)

// ListActiveCarts returns the caller's pending carts, newest first.
func ListActiveCarts(svc carts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service not configured"))
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		result, err := svc.GetActiveCarts(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "active carts", result)
	}
}
