package middleware

import (
	"log/slog"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/jvqze/fe2.jaylen.nyc/internal/infrastructure/cache"
	"github.com/jvqze/fe2.jaylen.nyc/pkg/apperror"
)

// RateLimitMiddleware はレート制限ミドルウェアを提供します
type RateLimitMiddleware struct {
	limiter *cache.RateLimiter
}

// NewRateLimitMiddleware は新しいRateLimitMiddlewareを作成します
func NewRateLimitMiddleware(limiter *cache.RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter}
}

// ByIP はクライアントIPを識別子としてレート制限を適用します
func (m *RateLimitMiddleware) ByIP(config cache.RateLimitConfig) echo.MiddlewareFunc {
	return m.limit(config, func(c echo.Context) string {
		return c.RealIP()
	})
}

// ByUser は認証済みユーザーIDを識別子としてレート制限を適用します。
// 未認証の場合はIPにフォールバックします
func (m *RateLimitMiddleware) ByUser(config cache.RateLimitConfig) echo.MiddlewareFunc {
	return m.limit(config, func(c echo.Context) string {
		if userID := GetUserID(c); userID != "" {
			return userID
		}
		return c.RealIP()
	})
}

func (m *RateLimitMiddleware) limit(config cache.RateLimitConfig, identify func(echo.Context) string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			result, err := m.limiter.Allow(c.Request().Context(), identify(c), config)
			if err != nil {
				// Redis障害時はリクエストを通す（フェイルオープン）
				slog.Warn("rate limit check failed",
					"request_id", GetRequestID(c),
					"type", config.Type,
					"error", err,
				)
				return next(c)
			}

			setRateLimitHeaders(c, result)

			if !result.Allowed {
				return apperror.NewTooManyRequestsError("rate limit exceeded")
			}

			return next(c)
		}
	}
}

func setRateLimitHeaders(c echo.Context, result *cache.RateLimitResult) {
	c.Response().Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	c.Response().Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
}
