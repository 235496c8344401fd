package carts

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/avinashrao/platterly-backend/pkg/db/models"
	"github.com/avinashrao/platterly-backend/pkg/enums"
	pkgerrors "github.com/avinashrao/platterly-backend/pkg/errors"
)

// Service exposes read access to a user's saved carts.
type Service interface {
	GetActiveCarts(ctx context.Context, userID uuid.UUID) ([]CartDTO, error)
}

type cartReader interface {
	ListByUserAndStatus(ctx context.Context, userID uuid.UUID, status enums.CartStatus) ([]models.Cart, error)
}

type service struct {
	carts cartReader
}

// NewService constructs a cart read service.
func NewService(carts cartReader) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart repository is required")
	}
	return &service{carts: carts}, nil
}

// GetActiveCarts returns the user's carts still in status "New".
func (s *service) GetActiveCarts(ctx context.Context, userID uuid.UUID) ([]CartDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Unauthorized")
	}
	carts, err := s.carts.ListByUserAndStatus(ctx, userID, enums.CartStatusNew)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list carts")
	}
	return FromModels(carts), nil
}
