package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/avinashrao/platterly-backend/internal/vendors"
	pkgerrors "github.com/avinashrao/platterly-backend/pkg/errors"
)

type stubVendorService struct {
	vendor   *vendors.VendorDTO
	list     *vendors.VendorListResult
	err      error
	gotInput vendors.ListVendorsInput
}

func (s *stubVendorService) CreateVendor(ctx context.Context, input vendors.CreateVendorInput) (*vendors.VendorDTO, error) {
	return s.vendor, s.err
}

func (s *stubVendorService) GetVendor(ctx context.Context, id uuid.UUID) (*vendors.VendorDTO, error) {
	return s.vendor, s.err
}

func (s *stubVendorService) ListVendors(ctx context.Context, input vendors.ListVendorsInput) (*vendors.VendorListResult, error) {
	s.gotInput = input
	return s.list, s.err
}

func (s *stubVendorService) UpdateVendor(ctx context.Context, id uuid.UUID, input vendors.UpdateVendorInput) (*vendors.VendorDTO, error) {
	return s.vendor, s.err
}

func (s *stubVendorService) DeleteVendor(ctx context.Context, id uuid.UUID) error {
	return s.err
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestListVendorsActiveFilter(t *testing.T) {
	svc := &stubVendorService{list: &vendors.VendorListResult{}}
	handler := ListVendors(svc, nil, true)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/vendors?limit=5", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !svc.gotInput.OnlyActive {
		t.Fatal("expected active-only filter")
	}
	if svc.gotInput.Pagination.Limit != 5 {
		t.Fatalf("expected limit 5 got %d", svc.gotInput.Pagination.Limit)
	}
}

func TestListVendorsBadLimit(t *testing.T) {
	handler := ListVendors(&stubVendorService{}, nil, false)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/vendors?limit=0", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestGetVendorNotFound(t *testing.T) {
	svc := &stubVendorService{err: pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")}
	handler := GetVendor(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/vendors/x", nil)
	req = withURLParam(req, "id", uuid.NewString())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestCreateVendorCreated(t *testing.T) {
	dto := &vendors.VendorDTO{ID: uuid.New(), Name: "Dosa Corner"}
	svc := &stubVendorService{vendor: dto}
	handler := CreateVendor(svc, nil)

	body := `{"name":"Dosa Corner","image":"dosa.png","packaging_charge":"2","delivery_charge":"5","convenience_charge":"1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/vendors", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}

	var envelope struct {
		Data vendors.VendorDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Name != "Dosa Corner" {
		t.Fatalf("unexpected name: %q", envelope.Data.Name)
	}
}
