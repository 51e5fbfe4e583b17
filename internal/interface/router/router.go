package router

import (
	"github.com/labstack/echo/v4"

	"github.com/jvqze/fe2.jaylen.nyc/internal/infrastructure/cache"
	"github.com/jvqze/fe2.jaylen.nyc/internal/infrastructure/di"
	"github.com/jvqze/fe2.jaylen.nyc/internal/interface/presenter"
)

// Router はルート定義を管理します
type Router struct {
	echo        *echo.Echo
	handlers    *di.Handlers
	middlewares *di.Middlewares
}

// NewRouter は新しいRouterを作成します
func NewRouter(e *echo.Echo, handlers *di.Handlers, middlewares *di.Middlewares) *Router {
	return &Router{
		echo:        e,
		handlers:    handlers,
		middlewares: middlewares,
	}
}

// Setup は全てのルートを設定します
func (r *Router) Setup() {
	r.setupHealthRoutes()
	r.setupAPIRoutes()
}

// setupHealthRoutes はヘルスチェックルートを設定します
func (r *Router) setupHealthRoutes() {
	if r.handlers.Health == nil {
		return
	}
	r.echo.GET("/health", r.handlers.Health.Check)
	r.echo.GET("/ready", r.handlers.Health.Ready)
}

// setupAPIRoutes はAPIルートを設定します
func (r *Router) setupAPIRoutes() {
	api := r.echo.Group("/api/v1")

	api.GET("/", func(c echo.Context) error {
		return presenter.OK(c, map[string]string{
			"message": "fe2.jaylen.nyc API v1",
		})
	})

	r.setupAuthRoutes(api)
	r.setupUploadRoutes(api)
	r.setupAudioRoutes(api)
	r.setupProfileRoutes(api)
}

// setupAuthRoutes は認証関連ルートを設定します
func (r *Router) setupAuthRoutes(api *echo.Group) {
	authGroup := api.Group("/auth")

	// Discord OAuth（公開）
	authGroup.GET("/discord/login", r.handlers.Auth.Login,
		r.middlewares.RateLimit.ByIP(cache.RateLimitAuthLogin))
	authGroup.GET("/discord/callback", r.handlers.Auth.Callback,
		r.middlewares.RateLimit.ByIP(cache.RateLimitAuthLogin))

	// 認証済みのみ
	authGroup.POST("/logout", r.handlers.Auth.Logout, r.middlewares.SessionAuth.Authenticate())

	api.GET("/me", r.handlers.Auth.Me, r.middlewares.SessionAuth.Authenticate())
}

// setupUploadRoutes はアップロード関連ルートを設定します
func (r *Router) setupUploadRoutes(api *echo.Group) {
	api.POST("/files/upload/chunk", r.handlers.Upload.UploadChunk,
		r.middlewares.SessionAuth.Authenticate(),
		r.middlewares.RateLimit.ByUser(cache.RateLimitChunkUpload))
}

// setupAudioRoutes はアップロードレコード関連ルートを設定します
func (r *Router) setupAudioRoutes(api *echo.Group) {
	// 自分のアップロード管理（認証済み）
	filesGroup := api.Group("/files", r.middlewares.SessionAuth.Authenticate())
	filesGroup.GET("", r.handlers.Audio.ListMyFiles)
	filesGroup.PATCH("/:id", r.handlers.Audio.UpdateFile)

	// 公開フィード
	api.GET("/audios", r.handlers.Audio.ListPublicAudios,
		r.middlewares.RateLimit.ByIP(cache.RateLimitAPIDefault))
}

// setupProfileRoutes は公開プロフィール関連ルートを設定します
func (r *Router) setupProfileRoutes(api *echo.Group) {
	profilesGroup := api.Group("/profiles")

	// 公開ルート
	profilesGroup.GET("", r.handlers.Profile.ListProfiles,
		r.middlewares.RateLimit.ByIP(cache.RateLimitAPIDefault))
	profilesGroup.GET("/:discordId", r.handlers.Profile.GetProfile,
		r.middlewares.RateLimit.ByIP(cache.RateLimitAPIDefault))

	// バッジ付与（管理者のみ、権限チェックはユースケース側）
	profilesGroup.POST("/:discordId/badges", r.handlers.Profile.AwardBadge,
		r.middlewares.SessionAuth.Authenticate())
}
