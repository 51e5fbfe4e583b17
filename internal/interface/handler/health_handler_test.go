package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHealthContext(target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func healthOK(context.Context) error { return nil }

func TestHealthHandler_Check(t *testing.T) {
	h := NewHealthHandler(nil, nil, nil)
	c, rec := newHealthContext("/health")

	require.NoError(t, h.Check(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHealthHandler_Ready(t *testing.T) {
	t.Run("全依存が疎通していればready", func(t *testing.T) {
		h := NewHealthHandler(
			HealthCheckerFunc(healthOK),
			HealthCheckerFunc(healthOK),
			HealthCheckerFunc(healthOK),
		)
		c, rec := newHealthContext("/ready")

		require.NoError(t, h.Ready(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		var body ReadyResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "ready", body.Status)
		assert.Equal(t, "healthy", body.Services["postgres"].Status)
		assert.Equal(t, "healthy", body.Services["redis"].Status)
		assert.Equal(t, "healthy", body.Services["chunk_dir"].Status)
	})

	t.Run("1つでも疎通しなければ503", func(t *testing.T) {
		h := NewHealthHandler(
			HealthCheckerFunc(healthOK),
			HealthCheckerFunc(func(context.Context) error {
				return errors.New("connection refused")
			}),
			HealthCheckerFunc(healthOK),
		)
		c, rec := newHealthContext("/ready")

		require.NoError(t, h.Ready(c))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		var body ReadyResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "not_ready", body.Status)
		assert.Equal(t, "unhealthy", body.Services["redis"].Status)
		assert.Equal(t, "connection refused", body.Services["redis"].Message)
	})

	t.Run("nilのチェッカーは対象外", func(t *testing.T) {
		h := NewHealthHandler(nil, nil, HealthCheckerFunc(healthOK))
		c, rec := newHealthContext("/ready")

		require.NoError(t, h.Ready(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		var body ReadyResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.NotContains(t, body.Services, "postgres")
		assert.NotContains(t, body.Services, "redis")
	})
}
