package di

import (
	"github.com/jvqze/fe2.jaylen.nyc/internal/interface/middleware"
)

// Middlewares はアプリケーションのミドルウェアを保持します
type Middlewares struct {
	SessionAuth *middleware.SessionAuthMiddleware
	RateLimit   *middleware.RateLimitMiddleware
}

// NewMiddlewares はContainerから全てのミドルウェアを初期化します
func NewMiddlewares(c *Container) *Middlewares {
	return &Middlewares{
		SessionAuth: middleware.NewSessionAuthMiddleware(c.SessionRepo, c.UserRepo),
		RateLimit:   middleware.NewRateLimitMiddleware(c.RateLimiter),
	}
}
