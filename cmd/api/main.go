package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jvqze/fe2.jaylen.nyc/internal/infrastructure/database"
	"github.com/jvqze/fe2.jaylen.nyc/internal/infrastructure/di"
	"github.com/jvqze/fe2.jaylen.nyc/internal/infrastructure/worker"
	"github.com/jvqze/fe2.jaylen.nyc/internal/interface/middleware"
	"github.com/jvqze/fe2.jaylen.nyc/internal/interface/router"
	"github.com/jvqze/fe2.jaylen.nyc/internal/interface/server"
	"github.com/jvqze/fe2.jaylen.nyc/internal/interface/validator"
	"github.com/jvqze/fe2.jaylen.nyc/pkg/config"
	"github.com/jvqze/fe2.jaylen.nyc/pkg/logger"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Logger setup
	logger.Setup(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	// Run database migrations
	if err := database.RunMigrations(ctx, cfg.Database.URL); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize DI Container
	container, err := di.NewContainer(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize container", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	handlers := di.NewHandlers(container)
	middlewares := di.NewMiddlewares(container)

	// Setup Server
	serverConfig := server.DefaultConfig()
	serverConfig.Port = cfg.Server.Port
	serverConfig.Debug = cfg.Server.Debug
	srv := server.NewServer(serverConfig)
	e := srv.Echo()

	// Setup validator and error handler
	e.Validator = validator.NewCustomValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler

	// Global middleware
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.SecurityHeadersWithConfig(middleware.SecurityHeadersConfig{
		EnableHSTS:    cfg.Security.EnableHSTS,
		HSTSMaxAge:    31536000, // 1年
		CSPDirectives: "default-src 'self'",
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Security.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Setup Router
	router.NewRouter(e, handlers, middlewares).Setup()

	// Start background workers
	workerMgr := worker.NewManager()
	workerMgr.Register(worker.NewChunkSweepJob(container.ChunkStore.SweepStale, worker.ChunkSweepJobConfig{
		StaleAfter: cfg.Chunks.StaleAfter,
		Interval:   cfg.Chunks.SweepInterval,
	}))
	workerMgr.Register(worker.NewHealthCheckJob(func(ctx context.Context) error {
		return container.PgClient.Pool().Ping(ctx)
	}))
	workerMgr.Start()

	// Start server
	slog.Info("starting server", "port", cfg.Server.Port)
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("server error", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")
	workerMgr.Shutdown(10 * time.Second)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), srv.Config().ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	slog.Info("server stopped")
}
