package modules

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avinashrao/platterly-backend/pkg/db/models"
	pkgerrors "github.com/avinashrao/platterly-backend/pkg/errors"
)

// Service exposes storefront module operations. Customers only ever see
// active modules; the admin surface manages the full set.
type Service interface {
	ListActiveModules(ctx context.Context) ([]ModuleDTO, error)
	ListAllModules(ctx context.Context) ([]ModuleDTO, error)
	CreateModule(ctx context.Context, input CreateModuleInput) (*ModuleDTO, error)
	UpdateModule(ctx context.Context, id uuid.UUID, input UpdateModuleInput) (*ModuleDTO, error)
	DeleteModule(ctx context.Context, id uuid.UUID) error
}

// CreateModuleInput holds the validated payload to create a module.
type CreateModuleInput struct {
	Name   string
	Image  string
	Active *bool
}

// UpdateModuleInput holds optional mutation values for a module.
type UpdateModuleInput struct {
	Name   *string
	Image  *string
	Active *bool
}

type moduleRepo interface {
	Create(ctx context.Context, module *models.Module) (*models.Module, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Module, error)
	ListActive(ctx context.Context) ([]models.Module, error)
	ListAll(ctx context.Context) ([]models.Module, error)
	Update(ctx context.Context, module *models.Module) (*models.Module, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo moduleRepo
}

// NewService constructs a module service instance.
func NewService(repo moduleRepo) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("module repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListActiveModules(ctx context.Context) ([]ModuleDTO, error) {
	rows, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list active modules")
	}
	return FromModels(rows), nil
}

func (s *service) ListAllModules(ctx context.Context) ([]ModuleDTO, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list modules")
	}
	return FromModels(rows), nil
}

func (s *service) CreateModule(ctx context.Context, input CreateModuleInput) (*ModuleDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "module name is required")
	}

	active := true
	if input.Active != nil {
		active = *input.Active
	}

	created, err := s.repo.Create(ctx, &models.Module{
		Name:   name,
		Image:  input.Image,
		Active: active,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert module")
	}
	return FromModel(created), nil
}

func (s *service) UpdateModule(ctx context.Context, id uuid.UUID, input UpdateModuleInput) (*ModuleDTO, error) {
	module, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "module not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load module")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "module name cannot be empty")
		}
		module.Name = name
	}
	if input.Image != nil {
		module.Image = *input.Image
	}
	if input.Active != nil {
		module.Active = *input.Active
	}

	updated, err := s.repo.Update(ctx, module)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update module")
	}
	return FromModel(updated), nil
}

func (s *service) DeleteModule(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "module not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load module")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete module")
	}
	return nil
}
