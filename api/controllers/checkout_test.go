package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/avinashrao/platterly-backend/api/middleware"
	"github.com/avinashrao/platterly-backend/internal/carts"
	"github.com/avinashrao/platterly-backend/internal/checkout"
	pkgerrors "github.com/avinashrao/platterly-backend/pkg/errors"
)

type stubCheckoutService struct {
	saved   []carts.CartDTO
	err     error
	gotUser uuid.UUID
}

func (s *stubCheckoutService) Checkout(ctx context.Context, userID uuid.UUID, req checkout.CheckoutRequest) ([]carts.CartDTO, error) {
	s.gotUser = userID
	if s.err != nil {
		return nil, s.err
	}
	return s.saved, nil
}

func checkoutRequest(t *testing.T, userID uuid.UUID, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithIdentity(req.Context(), userID, "customer", "access-1"))
	return req
}

func TestCheckoutSavedResponse(t *testing.T) {
	userID := uuid.New()
	svc := &stubCheckoutService{saved: []carts.CartDTO{{ID: uuid.New()}}}
	handler := Checkout(svc, nil)

	body := `{"cart":[{"vendor":"` + uuid.NewString() + `","products":[{"product_id":"` + uuid.NewString() + `","quantity":1}]}]}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, checkoutRequest(t, userID, body))

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	if svc.gotUser != userID {
		t.Fatalf("expected user %s got %s", userID, svc.gotUser)
	}

	var envelope struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !envelope.Success || envelope.Message != "Cart(s) saved" {
		t.Fatalf("unexpected envelope: %+v", envelope)
	}
}

func TestCheckoutClientErrorPassesThrough(t *testing.T) {
	svc := &stubCheckoutService{err: pkgerrors.New(pkgerrors.CodeNotFound, "Vendor not found: abc")}
	handler := Checkout(svc, nil)

	body := `{"cart":[{"vendor":"abc","products":[{"product_id":"x","quantity":1}]}]}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, checkoutRequest(t, uuid.New(), body))

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}

	var envelope struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Success || envelope.Message != "Vendor not found: abc" {
		t.Fatalf("unexpected envelope: %+v", envelope)
	}
}

func TestCheckoutStorageFailureShape(t *testing.T) {
	svc := &stubCheckoutService{err: pkgerrors.Wrap(pkgerrors.CodeInternal, errors.New("pq: disk full"), "persist cart")}
	handler := Checkout(svc, nil)

	body := `{"cart":[{"vendor":"` + uuid.NewString() + `","products":[{"product_id":"` + uuid.NewString() + `","quantity":1}]}]}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, checkoutRequest(t, uuid.New(), body))

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", resp.Code)
	}

	var envelope struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Err     string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Success || envelope.Message != "Checkout failed" {
		t.Fatalf("unexpected envelope: %+v", envelope)
	}
	if envelope.Err != "pq: disk full" {
		t.Fatalf("expected underlying cause in envelope, got %q", envelope.Err)
	}
}

func TestCheckoutMalformedBody(t *testing.T) {
	svc := &stubCheckoutService{}
	handler := Checkout(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, checkoutRequest(t, uuid.New(), `{"cart": [`))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
