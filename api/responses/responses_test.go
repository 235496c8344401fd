package responses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/avinashrao/platterly-backend/pkg/errors"
	"github.com/avinashrao/platterly-backend/pkg/logger"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestWriteSuccessStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccessStatus(rec, http.StatusCreated, "Cart(s) saved", []string{"a"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Cart(s) saved", body["message"])
	assert.NotNil(t, body["data"])
}

func TestWriteErrorClientCodesKeepMessage(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test"})

	cases := []struct {
		err    error
		status int
		msg    string
	}{
		{pkgerrors.New(pkgerrors.CodeValidation, "Cart must be a non-empty array"), http.StatusBadRequest, "Cart must be a non-empty array"},
		{pkgerrors.New(pkgerrors.CodeUnauthorized, "Unauthorized"), http.StatusUnauthorized, "Unauthorized"},
		{pkgerrors.New(pkgerrors.CodeNotFound, "Vendor not found: abc"), http.StatusNotFound, "Vendor not found: abc"},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		WriteError(context.Background(), logg, rec, tc.err)
		assert.Equal(t, tc.status, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, tc.msg, body["message"])
		assert.NotContains(t, body, "error")
	}
}

func TestWriteErrorInternalHidesMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	cause := errors.New("connection refused")
	WriteError(context.Background(), logger.New(logger.Options{ServiceName: "test"}), rec,
		pkgerrors.Wrap(pkgerrors.CodeInternal, cause, "persist cart"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "internal server error", body["message"])
	assert.Equal(t, "connection refused", body["error"])
}

func TestWriteFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteFailure(context.Background(), logger.New(logger.Options{ServiceName: "test"}), rec,
		http.StatusInternalServerError, "Checkout failed", errors.New("db down"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Checkout failed", body["message"])
	assert.Equal(t, "db down", body["error"])
}

func TestWriteFailureUnwrapsCodedError(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := pkgerrors.Wrap(pkgerrors.CodeInternal, errors.New("pq: disk full"), "persist cart")
	WriteFailure(context.Background(), logger.New(logger.Options{ServiceName: "test"}), rec,
		http.StatusInternalServerError, "Checkout failed", wrapped)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Checkout failed", body["message"])
	assert.Equal(t, "pq: disk full", body["error"])
}
