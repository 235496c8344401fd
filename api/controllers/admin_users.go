package controllers

import (
	"net/http"
	"strings"

	"github.com/avinashrao/platterly-backend/api/responses"
	"github.com/avinashrao/platterly-backend/api/validators"
	"github.com/avinashrao/platterly-backend/internal/users"
	"github.com/avinashrao/platterly-backend/pkg/enums"
	pkgerrors "github.com/avinashrao/platterly-backend/pkg/errors"
	"github.com/avinashrao/platterly-backend/pkg/logger"
)

type updateUserRequest struct {
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	Name       *string `json:"name,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Role       *string `json:"role,omitempty"`
	IsVerified *bool   `json:"is_verified,omitempty"`
}

func (req updateUserRequest) toInput() (users.UpdateUserInput, error) {
	input := users.UpdateUserInput{
		Email:      req.Email,
		Name:       req.Name,
		Phone:      req.Phone,
		IsVerified: req.IsVerified,
	}
	if req.Role != nil {
		role, err := enums.ParseUserRole(*req.Role)
		if err != nil {
			return users.UpdateUserInput{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
		}
		input.Role = &role
	}
	return input, nil
}

// AdminListUsers returns a cursor page of accounts, filterable by role and
// blocked state.
func AdminListUsers(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user service not configured"))
			return
		}

		page, err := parsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := users.ListUsersInput{Pagination: page}
		if raw := strings.TrimSpace(r.URL.Query().Get("role")); raw != "" {
			role, err := enums.ParseUserRole(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid role"))
				return
			}
			input.Role = &role
		}
		blocked, err := validators.ParseQueryBool(r, "blocked")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input.Blocked = blocked

		result, err := svc.ListUsers(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "users", result)
	}
}

// AdminGetUser returns a single account by id.
func AdminGetUser(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user service not configured"))
			return
		}

		id, err := validators.URLParamUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.GetUser(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "user", user)
	}
}

// AdminUpdateUser applies partial changes to an account.
func AdminUpdateUser(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user service not configured"))
			return
		}

		id, err := validators.URLParamUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateUserRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := req.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.UpdateUser(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "user updated", user)
	}
}

// AdminDeleteUser removes an account.
func AdminDeleteUser(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user service not configured"))
			return
		}

		id, err := validators.URLParamUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteUser(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "user deleted", nil)
	}
}

// AdminSetUserBlocked toggles an account's blocked flag.
func AdminSetUserBlocked(svc users.Service, logg *logger.Logger, blocked bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user service not configured"))
			return
		}

		id, err := validators.URLParamUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.SetUserBlocked(r.Context(), id, blocked)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		message := "user unblocked"
		if blocked {
			message = "user blocked"
		}
		responses.WriteSuccess(w, message, user)
	}
}

// AdminUserStats returns aggregate account counts for the dashboard.
func AdminUserStats(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user service not configured"))
			return
		}

		stats, err := svc.GetUserStats(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, "user stats", stats)
	}
}
