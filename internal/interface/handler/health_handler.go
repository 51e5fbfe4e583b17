package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthChecker は依存サービスの疎通確認を実行するインターフェースです
type HealthChecker interface {
	Health(ctx context.Context) error
}

// HealthCheckerFunc は関数をHealthCheckerとして使うためのアダプターです
type HealthCheckerFunc func(ctx context.Context) error

// Health はラップした関数を実行します
func (f HealthCheckerFunc) Health(ctx context.Context) error {
	return f(ctx)
}

// HealthHandler はライブネスとレディネスのHTTPハンドラーです
// レディネスはPostgres、Redis、チャンク置き場の3点を確認します
type HealthHandler struct {
	database HealthChecker
	redis    HealthChecker
	chunkDir HealthChecker
}

// NewHealthHandler は新しいHealthHandlerを作成します
// 不要な依存はnilで省略できます
func NewHealthHandler(database, redis, chunkDir HealthChecker) *HealthHandler {
	return &HealthHandler{
		database: database,
		redis:    redis,
		chunkDir: chunkDir,
	}
}

// HealthResponse はライブネスチェックレスポンスを定義します
type HealthResponse struct {
	Status string `json:"status"`
}

// ReadyResponse はレディネスチェックレスポンスを定義します
type ReadyResponse struct {
	Status   string                   `json:"status"`
	Services map[string]ServiceStatus `json:"services,omitempty"`
}

// ServiceStatus はサービスのステータスを定義します
type ServiceStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Check はライブネスチェックを実行します
// GET /health
func (h *HealthHandler) Check(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status: "ok",
	})
}

// Ready はレディネスチェックを実行します
// 1つでも疎通しない依存があれば503を返します
// GET /ready
func (h *HealthHandler) Ready(c echo.Context) error {
	ctx := c.Request().Context()

	checks := []struct {
		name    string
		checker HealthChecker
	}{
		{"postgres", h.database},
		{"redis", h.redis},
		{"chunk_dir", h.chunkDir},
	}

	services := make(map[string]ServiceStatus, len(checks))
	ready := true

	for _, check := range checks {
		if check.checker == nil {
			continue
		}
		if err := check.checker.Health(ctx); err != nil {
			services[check.name] = ServiceStatus{
				Status:  "unhealthy",
				Message: err.Error(),
			}
			ready = false
			continue
		}
		services[check.name] = ServiceStatus{Status: "healthy"}
	}

	status := "ready"
	statusCode := http.StatusOK
	if !ready {
		status = "not_ready"
		statusCode = http.StatusServiceUnavailable
	}

	return c.JSON(statusCode, ReadyResponse{
		Status:   status,
		Services: services,
	})
}
