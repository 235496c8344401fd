package users

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avinashrao/platterly-backend/pkg/db/models"
	"github.com/avinashrao/platterly-backend/pkg/enums"
	pkgerrors "github.com/avinashrao/platterly-backend/pkg/errors"
	"github.com/avinashrao/platterly-backend/pkg/pagination"
)

type fakeUserRepo struct {
	rows    map[uuid.UUID]*models.User
	deleted []uuid.UUID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{rows: make(map[uuid.UUID]*models.User)}
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return row, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, row := range f.rows {
		if row.Email == email {
			return row, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) List(ctx context.Context, query ListQuery) ([]models.User, *pagination.Cursor, error) {
	out := []models.User{}
	for _, row := range f.rows {
		if query.Role != nil && row.Role != *query.Role {
			continue
		}
		if query.Blocked != nil && row.IsBlocked != *query.Blocked {
			continue
		}
		out = append(out, *row)
	}
	return out, nil, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *models.User) (*models.User, error) {
	f.rows[user.ID] = user
	return user, nil
}

func (f *fakeUserRepo) SetBlocked(ctx context.Context, id uuid.UUID, blocked bool) error {
	if row, ok := f.rows[id]; ok {
		row.IsBlocked = blocked
	}
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.rows, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeUserRepo) Stats(ctx context.Context) (*UserStats, error) {
	stats := &UserStats{}
	for _, row := range f.rows {
		stats.Total++
		if row.IsBlocked {
			stats.Blocked++
		}
		if row.IsVerified {
			stats.Verified++
		}
		if row.Role == enums.UserRoleAdmin {
			stats.Admins++
		}
	}
	return stats, nil
}

func seedUser(repo *fakeUserRepo, email string, role enums.UserRole) *models.User {
	user := &models.User{
		ID:    uuid.New(),
		Email: email,
		Name:  "Test User",
		Role:  role,
	}
	repo.rows[user.ID] = user
	return user
}

func TestUpdateUserEmailConflict(t *testing.T) {
	repo := newFakeUserRepo()
	alice := seedUser(repo, "alice@example.com", enums.UserRoleCustomer)
	seedUser(repo, "bob@example.com", enums.UserRoleCustomer)

	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	taken := "bob@example.com"
	_, err = svc.UpdateUser(context.Background(), alice.ID, UpdateUserInput{Email: &taken})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}

	fresh := "  Alice.New@Example.com "
	dto, err := svc.UpdateUser(context.Background(), alice.ID, UpdateUserInput{Email: &fresh})
	if err != nil {
		t.Fatalf("update user: %v", err)
	}
	if dto.Email != "alice.new@example.com" {
		t.Fatalf("expected normalized email, got %q", dto.Email)
	}
}

func TestUpdateUserRoleValidation(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedUser(repo, "carol@example.com", enums.UserRoleCustomer)

	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	bogus := enums.UserRole("superuser")
	_, err = svc.UpdateUser(context.Background(), user.ID, UpdateUserInput{Role: &bogus})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	admin := enums.UserRoleAdmin
	dto, err := svc.UpdateUser(context.Background(), user.ID, UpdateUserInput{Role: &admin})
	if err != nil {
		t.Fatalf("update user: %v", err)
	}
	if dto.Role != enums.UserRoleAdmin {
		t.Fatalf("expected admin role, got %s", dto.Role)
	}
}

func TestSetUserBlocked(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedUser(repo, "dave@example.com", enums.UserRoleCustomer)

	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.SetUserBlocked(context.Background(), user.ID, true)
	if err != nil {
		t.Fatalf("set blocked: %v", err)
	}
	if !dto.IsBlocked {
		t.Fatal("expected user to be blocked")
	}

	_, err = svc.SetUserBlocked(context.Background(), uuid.New(), true)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListUsersFilters(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(repo, "a@example.com", enums.UserRoleCustomer)
	admin := seedUser(repo, "b@example.com", enums.UserRoleAdmin)
	admin.IsVerified = true

	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	role := enums.UserRoleAdmin
	result, err := svc.ListUsers(context.Background(), ListUsersInput{Role: &role})
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(result.Users) != 1 || result.Users[0].Email != "b@example.com" {
		t.Fatalf("expected only admin user, got %v", result.Users)
	}

	stats, err := svc.GetUserStats(context.Background())
	if err != nil {
		t.Fatalf("user stats: %v", err)
	}
	if stats.Total != 2 || stats.Admins != 1 || stats.Verified != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestDeleteUser(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedUser(repo, "gone@example.com", enums.UserRoleCustomer)

	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if err := svc.DeleteUser(context.Background(), user.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != user.ID {
		t.Fatalf("expected delete of %s, got %v", user.ID, repo.deleted)
	}
}
