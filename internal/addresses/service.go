package addresses

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

// Service exposes delivery address operations scoped to the owning user.
type Service interface {
	CreateAddress(ctx context.Context, userID uuid.UUID, input CreateAddressInput) (*AddressDTO, error)
	ListAddresses(ctx context.Context, userID uuid.UUID) ([]AddressDTO, error)
	UpdateAddress(ctx context.Context, userID, addressID uuid.UUID, input UpdateAddressInput) (*AddressDTO, error)
	DeleteAddress(ctx context.Context, userID, addressID uuid.UUID) error
}

// CreateAddressInput holds the validated payload to create an address.
type CreateAddressInput struct {
	Label      string
	Line1      string
	Line2      *string
	City       string
	State      string
	PostalCode string
	IsDefault  bool
}

// UpdateAddressInput holds optional mutation values for an address.
type UpdateAddressInput struct {
	Label      *string
	Line1      *string
	Line2      *string
	City       *string
	State      *string
	PostalCode *string
	IsDefault  *bool
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// AddressRepository defines the persistence surface required by the service.
type AddressRepository interface {
	WithTx(tx *gorm.DB) AddressRepository
	Create(ctx context.Context, address *models.Address) (*models.Address, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Address, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Address, error)
	ClearDefault(ctx context.Context, userID uuid.UUID) error
	Update(ctx context.Context, address *models.Address) (*models.Address, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo AddressRepository
	tx   txRunner
}

// NewService constructs an address service instance.
func NewService(repo AddressRepository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("address repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

// CreateAddress persists a new address. Marking it default clears the
// previous default in the same transaction.
func (s *service) CreateAddress(ctx context.Context, userID uuid.UUID, input CreateAddressInput) (*AddressDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Unauthorized")
	}
	if err := validateRequired(input.Line1, input.City, input.State, input.PostalCode); err != nil {
		return nil, err
	}

	label := strings.TrimSpace(input.Label)
	if label == "" {
		label = "Home"
	}

	address := &models.Address{
		UserID:     userID,
		Label:      label,
		Line1:      strings.TrimSpace(input.Line1),
		Line2:      input.Line2,
		City:       strings.TrimSpace(input.City),
		State:      strings.TrimSpace(input.State),
		PostalCode: strings.TrimSpace(input.PostalCode),
		IsDefault:  input.IsDefault,
	}

	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if input.IsDefault {
			if err := txRepo.ClearDefault(ctx, userID); err != nil {
				return err
			}
		}
		_, err := txRepo.Create(ctx, address)
		return err
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert address")
	}

	return FromModel(address), nil
}

// ListAddresses returns the user's addresses, default first.
func (s *service) ListAddresses(ctx context.Context, userID uuid.UUID) ([]AddressDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Unauthorized")
	}
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list addresses")
	}
	return FromModels(rows), nil
}

// UpdateAddress applies mutations to an address the user owns.
func (s *service) UpdateAddress(ctx context.Context, userID, addressID uuid.UUID, input UpdateAddressInput) (*AddressDTO, error) {
	address, err := s.loadOwned(ctx, userID, addressID)
	if err != nil {
		return nil, err
	}

	if input.Label != nil {
		address.Label = strings.TrimSpace(*input.Label)
	}
	if input.Line1 != nil {
		address.Line1 = strings.TrimSpace(*input.Line1)
	}
	if input.Line2 != nil {
		address.Line2 = input.Line2
	}
	if input.City != nil {
		address.City = strings.TrimSpace(*input.City)
	}
	if input.State != nil {
		address.State = strings.TrimSpace(*input.State)
	}
	if input.PostalCode != nil {
		address.PostalCode = strings.TrimSpace(*input.PostalCode)
	}
	if err := validateRequired(address.Line1, address.City, address.State, address.PostalCode); err != nil {
		return nil, err
	}

	makeDefault := input.IsDefault != nil && *input.IsDefault && !address.IsDefault
	if input.IsDefault != nil {
		address.IsDefault = *input.IsDefault
	}

	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if makeDefault {
			if err := txRepo.ClearDefault(ctx, userID); err != nil {
				return err
			}
		}
		_, err := txRepo.Update(ctx, address)
		return err
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update address")
	}

	return FromModel(address), nil
}

// DeleteAddress removes an address the user owns.
func (s *service) DeleteAddress(ctx context.Context, userID, addressID uuid.UUID) error {
	if _, err := s.loadOwned(ctx, userID, addressID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, addressID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete address")
	}
	return nil
}

func (s *service) loadOwned(ctx context.Context, userID, addressID uuid.UUID) (*models.Address, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Unauthorized")
	}
	address, err := s.repo.FindByID(ctx, addressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load address")
	}
	if address.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "address does not belong to user")
	}
	return address, nil
}

func validateRequired(line1, city, state, postalCode string) error {
	if strings.TrimSpace(line1) == "" || strings.TrimSpace(city) == "" ||
		strings.TrimSpace(state) == "" || strings.TrimSpace(postalCode) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "line1, city, state, and postal_code are required")
	}
	return nil
}
