package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/avinashrao/platterly-backend/api/middleware"
	"github.com/avinashrao/platterly-backend/internal/auth"
	pkgerrors "github.com/avinashrao/platterly-backend/pkg/errors"
)

type stubAuthService struct {
	loginResp   *auth.LoginResponse
	loginErr    error
	refreshResp *auth.TokenPair
	refreshErr  error
	logoutErr   error
	gotAccessID string
}

func (s *stubAuthService) Register(ctx context.Context, req auth.RegisterRequest) (*auth.LoginResponse, error) {
	return s.loginResp, s.loginErr
}

func (s *stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	return s.loginResp, s.loginErr
}

func (s *stubAuthService) Refresh(ctx context.Context, req auth.RefreshRequest) (*auth.TokenPair, error) {
	return s.refreshResp, s.refreshErr
}

func (s *stubAuthService) Logout(ctx context.Context, accessID string) error {
	s.gotAccessID = accessID
	return s.logoutErr
}

func TestRegisterCreated(t *testing.T) {
	svc := &stubAuthService{loginResp: &auth.LoginResponse{
		TokenPair: auth.TokenPair{AccessToken: "at", RefreshToken: "rt"},
	}}
	handler := Register(svc, nil)

	body := `{"name":"Priya","email":"priya@example.com","password":"supersecret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}

	var envelope struct {
		Data auth.LoginResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.AccessToken != "at" {
		t.Fatalf("unexpected access token: %q", envelope.Data.AccessToken)
	}
}

func TestRegisterValidationFailure(t *testing.T) {
	handler := Register(&stubAuthService{}, nil)

	body := `{"name":"Priya","email":"not-an-email","password":"short"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc := &stubAuthService{loginErr: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")}
	handler := Login(svc, nil)

	body := `{"email":"priya@example.com","password":"wrongpassword"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}

	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Message != "invalid credentials" {
		t.Fatalf("unexpected message: %q", envelope.Message)
	}
}

func TestRefreshReturnsPair(t *testing.T) {
	svc := &stubAuthService{refreshResp: &auth.TokenPair{AccessToken: "new-at", RefreshToken: "new-rt"}}
	handler := Refresh(svc, nil)

	body := `{"access_token":"old-at","refresh_token":"old-rt"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data auth.TokenPair `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.RefreshToken != "new-rt" {
		t.Fatalf("unexpected refresh token: %q", envelope.Data.RefreshToken)
	}
}

func TestLogoutUsesContextAccessID(t *testing.T) {
	svc := &stubAuthService{}
	handler := Logout(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req = req.WithContext(middleware.WithIdentity(req.Context(), uuid.New(), "customer", "access-42"))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.gotAccessID != "access-42" {
		t.Fatalf("expected access-42 got %q", svc.gotAccessID)
	}
}
