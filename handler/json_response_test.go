package handler_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vzoverflow/vzoverflow/handler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, resp handler.Response) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	require.NoError(t, resp.Render(w, httptest.NewRequest("GET", "/", nil)))
	return w
}

func TestJSON(t *testing.T) {
	t.Parallel()

	t.Run("data payload", func(t *testing.T) {
		t.Parallel()
		w := render(t, handler.JSON(map[string]string{"status": "enabled"}))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"data":{"status":"enabled"}}`, w.Body.String())
	})

	t.Run("custom status and meta", func(t *testing.T) {
		t.Parallel()
		w := render(t, handler.JSON(map[string]string{"id": "1"},
			handler.WithJSONStatus(http.StatusCreated),
			handler.WithJSONMeta(map[string]any{"version": "v1"}),
		))
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"data":{"id":"1"},"meta":{"version":"v1"}}`, w.Body.String())
	})

	t.Run("error payload takes error envelope", func(t *testing.T) {
		t.Parallel()
		w := render(t, handler.JSON(errors.New("boom")))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":{"code":"internal_error","message":"boom"}}`, w.Body.String())
	})
}

func TestJSONError(t *testing.T) {
	t.Parallel()

	t.Run("http error maps status and code", func(t *testing.T) {
		t.Parallel()
		w := render(t, handler.JSONError(handler.ErrUnauthorized))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":{"code":"unauthorized","message":"Unauthorized"}}`, w.Body.String())
	})

	t.Run("validation error carries field details", func(t *testing.T) {
		t.Parallel()
		valErr := handler.NewValidationError()
		valErr.Add("code", "must be six digits")

		w := render(t, handler.JSONError(valErr))
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), `"validation_error"`)
		assert.Contains(t, w.Body.String(), "must be six digits")
	})

	t.Run("plain error is a 500", func(t *testing.T) {
		t.Parallel()
		w := render(t, handler.JSONError(errors.New("db gone")))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":{"code":"internal_error","message":"db gone"}}`, w.Body.String())
	})
}
