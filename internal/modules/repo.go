package modules

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avinashrao/platterly-backend/pkg/db/models"
)

// Repository exposes storefront module persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a new module.
func (r *Repository) Create(ctx context.Context, module *models.Module) (*models.Module, error) {
	if err := r.db.WithContext(ctx).Create(module).Error; err != nil {
		return nil, err
	}
	return module, nil
}

// FindByID loads a module by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Module, error) {
	var module models.Module
	if err := r.db.WithContext(ctx).First(&module, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &module, nil
}

// ListActive returns every active module ordered by name.
func (r *Repository) ListActive(ctx context.Context) ([]models.Module, error) {
	var rows []models.Module
	if err := r.db.WithContext(ctx).Where("active = true").Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListAll returns every module regardless of active state.
func (r *Repository) ListAll(ctx context.Context) ([]models.Module, error) {
	var rows []models.Module
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Update persists the mutated module row.
func (r *Repository) Update(ctx context.Context, module *models.Module) (*models.Module, error) {
	if err := r.db.WithContext(ctx).Save(module).Error; err != nil {
		return nil, err
	}
	return module, nil
}

// Delete removes the module; vendor and product references null out via FKs.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Module{}, "id = ?", id).Error
}
