package handler_test

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vzoverflow/vzoverflow/handler"

	"github.com/stretchr/testify/assert"
)

func callErrorHandler(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	eh := handler.NewErrorHandler(log)

	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/2fa/verify", nil)
	eh(handler.NewContext(w, r), err)
	return w
}

func TestNewErrorHandler(t *testing.T) {
	t.Parallel()

	t.Run("http error", func(t *testing.T) {
		t.Parallel()
		w := callErrorHandler(t, handler.ErrUnauthorized)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":{"code":"unauthorized","message":"Unauthorized"}}`, w.Body.String())
	})

	t.Run("wrapped http error", func(t *testing.T) {
		t.Parallel()
		w := callErrorHandler(t, errors.Join(handler.ErrNotFound, errors.New("row missing")))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("validation error", func(t *testing.T) {
		t.Parallel()
		valErr := handler.NewValidationError()
		valErr.Add("purpose", "unknown purpose")

		w := callErrorHandler(t, valErr)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "unknown purpose")
	})

	t.Run("unknown error hides internals", func(t *testing.T) {
		t.Parallel()
		w := callErrorHandler(t, errors.New("pq: connection refused"))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection refused")
		assert.Contains(t, w.Body.String(), "internal_error")
	})
}
