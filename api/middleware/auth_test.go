package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgAuth "github.com/avinashrao/platterly-backend/pkg/auth"
	"github.com/avinashrao/platterly-backend/pkg/config"
	"github.com/avinashrao/platterly-backend/pkg/enums"
	"github.com/avinashrao/platterly-backend/pkg/logger"
)

type stubSessionChecker struct {
	has bool
	err error
}

func (s *stubSessionChecker) HasSession(context.Context, string) (bool, error) {
	return s.has, s.err
}

func authTestConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "middleware-secret", Issuer: "platterly-test", ExpirationMinutes: 5}
}

func mintTestToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(authTestConfig(), time.Now().UTC(), pkgAuth.AccessTokenPayload{
		UserID: userID,
		Role:   enums.UserRoleCustomer,
		JTI:    "session-1",
	})
	require.NoError(t, err)
	return token
}

func TestAuthSeedsIdentity(t *testing.T) {
	userID := uuid.New()
	var gotUser uuid.UUID
	var gotAccessID string
	probe := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = UserIDFromContext(r.Context())
		gotAccessID = AccessIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	handler := Auth(authTestConfig(), &stubSessionChecker{has: true}, logger.New(logger.Options{ServiceName: "test"}))(probe)

	req := httptest.NewRequest(http.MethodGet, "/carts", nil)
	req.Header.Set("Authorization", "Bearer "+mintTestToken(t, userID))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, userID, gotUser)
	assert.Equal(t, "session-1", gotAccessID)
}

func TestAuthRejectsMissingOrBadToken(t *testing.T) {
	handler := Auth(authTestConfig(), &stubSessionChecker{has: true}, logger.New(logger.Options{ServiceName: "test"}))(
		http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Fatal("handler must not run")
		}))

	for name, header := range map[string]string{
		"missing": "",
		"garbage": "Bearer not-a-token",
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/carts", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAuthRejectsRevokedSession(t *testing.T) {
	handler := Auth(authTestConfig(), &stubSessionChecker{has: false}, logger.New(logger.Options{ServiceName: "test"}))(
		http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Fatal("handler must not run")
		}))

	req := httptest.NewRequest(http.MethodGet, "/carts", nil)
	req.Header.Set("Authorization", "Bearer "+mintTestToken(t, uuid.New()))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test"})
	probe := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := RequireRole(logg, enums.UserRoleAdmin)(probe)

	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req = req.WithContext(WithIdentity(req.Context(), uuid.New(), enums.UserRoleCustomer, "s"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req = req.WithContext(WithIdentity(req.Context(), uuid.New(), enums.UserRoleAdmin, "s"))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
