package di

import (
	"context"

	"github.com/jvqze/fe2.jaylen.nyc/internal/interface/handler"
)

// Handlers はアプリケーションのハンドラーを保持します
type Handlers struct {
	Health  *handler.HealthHandler
	Auth    *handler.AuthHandler
	Upload  *handler.UploadHandler
	Audio   *handler.AudioHandler
	Profile *handler.ProfileHandler
}

// NewHandlers はContainerから全てのハンドラーを初期化します
func NewHandlers(c *Container) *Handlers {
	var database, redis handler.HealthChecker
	if c.PgClient != nil {
		database = c.PgClient
	}
	if c.RedisClient != nil {
		redis = c.RedisClient
	}
	chunkDir := handler.HealthCheckerFunc(func(context.Context) error {
		return c.ChunkStore.EnsureReady()
	})

	h := NewHandlersForTest(c)
	h.Health = handler.NewHealthHandler(database, redis, chunkDir)
	return h
}

// NewHandlersForTest はテスト用にハンドラーを初期化します（HealthHandlerなし）
func NewHandlersForTest(c *Container) *Handlers {
	authHandler := handler.NewAuthHandler(
		c.UseCases.OAuthLogin,
		c.UseCases.Logout,
		c.UseCases.GetMe,
		c.OAuthClient,
		c.StateTokens,
		c.config.App.URL,
		!c.config.Server.Debug,
	)

	uploadHandler := handler.NewUploadHandler(c.UseCases.UploadChunk)

	audioHandler := handler.NewAudioHandler(
		c.UseCases.UpdateAudioFile,
		c.UseCases.ListUserFiles,
		c.UseCases.ListPublicAudios,
	)

	profileHandler := handler.NewProfileHandler(
		c.UseCases.AwardBadge,
		c.UseCases.GetProfile,
		c.UseCases.ListProfiles,
	)

	return &Handlers{
		Auth:    authHandler,
		Upload:  uploadHandler,
		Audio:   audioHandler,
		Profile: profileHandler,
	}
}
