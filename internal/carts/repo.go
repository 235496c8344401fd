package carts

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avinashrao/platterly-backend/pkg/db/models"
	"github.com/avinashrao/platterly-backend/pkg/enums"
)

// Repository encapsulates cart persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repository to the provided GORM handle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx scopes the repository to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// Create inserts the cart together with its items.
func (r *Repository) Create(ctx context.Context, cart *models.Cart) (*models.Cart, error) {
	if cart.Status == "" {
		cart.Status = enums.CartStatusNew
	}
	if err := r.db.WithContext(ctx).Create(cart).Error; err != nil {
		return nil, err
	}
	return cart, nil
}

// ListByUserAndStatus returns the user's carts in the given status, newest
// first, with items preloaded.
func (r *Repository) ListByUserAndStatus(ctx context.Context, userID uuid.UUID, status enums.CartStatus) ([]models.Cart, error) {
	var carts []models.Cart
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ? AND status = ?", userID, status).
		Order("created_at DESC").
		Find(&carts).Error
	if err != nil {
		return nil, err
	}
	return carts, nil
}

// DeleteByUserAndStatus removes all of the user's carts in the given status.
// Items go with them via the FK cascade.
func (r *Repository) DeleteByUserAndStatus(ctx context.Context, userID uuid.UUID, status enums.CartStatus) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, status).
		Delete(&models.Cart{}).Error
}

// DeleteStaleNew removes carts still in status "New" that were last touched
// before the cutoff. Returns the number of carts purged.
func (r *Repository) DeleteStaleNew(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("status = ? AND updated_at < ?", enums.CartStatusNew, before).
		Delete(&models.Cart{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
