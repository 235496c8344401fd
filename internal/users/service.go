package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avinashrao/platterly-backend/pkg/db/models"
	"github.com/avinashrao/platterly-backend/pkg/enums"
	pkgerrors "github.com/avinashrao/platterly-backend/pkg/errors"
	"github.com/avinashrao/platterly-backend/pkg/pagination"
)

// Service exposes the admin user management surface.
type Service interface {
	ListUsers(ctx context.Context, input ListUsersInput) (*UserListResult, error)
	GetUser(ctx context.Context, id uuid.UUID) (*UserDTO, error)
	UpdateUser(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*UserDTO, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	SetUserBlocked(ctx context.Context, id uuid.UUID, blocked bool) (*UserDTO, error)
	GetUserStats(ctx context.Context) (*UserStats, error)
}

// ListUsersInput filters the admin user listing.
type ListUsersInput struct {
	Pagination pagination.Params
	Role       *enums.UserRole
	Blocked    *bool
}

// UpdateUserInput holds optional mutation values for a user.
type UpdateUserInput struct {
	Email      *string
	Name       *string
	Phone      *string
	Role       *enums.UserRole
	IsVerified *bool
}

type userRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, query ListQuery) ([]models.User, *pagination.Cursor, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	SetBlocked(ctx context.Context, id uuid.UUID, blocked bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*UserStats, error)
}

type service struct {
	repo userRepo
}

// NewService constructs a user management service instance.
func NewService(repo userRepo) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListUsers(ctx context.Context, input ListUsersInput) (*UserListResult, error) {
	rows, next, err := s.repo.List(ctx, ListQuery{
		Pagination: input.Pagination,
		Role:       input.Role,
		Blocked:    input.Blocked,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}

	result := &UserListResult{Users: make([]UserDTO, 0, len(rows))}
	for i := range rows {
		result.Users = append(result.Users, *FromModel(&rows[i]))
	}
	if next != nil {
		cursor := pagination.EncodeCursor(*next)
		result.NextCursor = &cursor
	}
	return result, nil
}

func (s *service) GetUser(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.loadUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(user), nil
}

// UpdateUser applies admin mutations. Changing the email to one already in
// use by another account returns a conflict.
func (s *service) UpdateUser(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*UserDTO, error) {
	user, err := s.loadUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if email == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "email cannot be empty")
		}
		if email != user.Email {
			existing, err := s.repo.FindByEmail(ctx, email)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check email")
			}
			if existing != nil && existing.ID != user.ID {
				return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already in use")
			}
			user.Email = email
		}
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		user.Name = name
	}
	if input.Phone != nil {
		user.Phone = input.Phone
	}
	if input.Role != nil {
		if !input.Role.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
		}
		user.Role = *input.Role
	}
	if input.IsVerified != nil {
		user.IsVerified = *input.IsVerified
	}

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update user")
	}
	return FromModel(updated), nil
}

func (s *service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if _, err := s.loadUser(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete user")
	}
	return nil
}

// SetUserBlocked flips the block flag and returns the updated user.
func (s *service) SetUserBlocked(ctx context.Context, id uuid.UUID, blocked bool) (*UserDTO, error) {
	user, err := s.loadUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetBlocked(ctx, id, blocked); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: set blocked")
	}
	user.IsBlocked = blocked
	return FromModel(user), nil
}

func (s *service) GetUserStats(ctx context.Context) (*UserStats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "user stats")
	}
	return stats, nil
}

func (s *service) loadUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return user, nil
}
