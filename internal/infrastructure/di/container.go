package di

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/entity"
	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/repository"
	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/service"
	"github.com/jvqze/fe2.jaylen.nyc/internal/infrastructure/cache"
	"github.com/jvqze/fe2.jaylen.nyc/internal/infrastructure/chunkstore"
	"github.com/jvqze/fe2.jaylen.nyc/internal/infrastructure/database"
	"github.com/jvqze/fe2.jaylen.nyc/internal/infrastructure/oauth"
	"github.com/jvqze/fe2.jaylen.nyc/internal/infrastructure/objecthost"
	infraRepo "github.com/jvqze/fe2.jaylen.nyc/internal/infrastructure/repository"
	"github.com/jvqze/fe2.jaylen.nyc/pkg/config"
	"github.com/jvqze/fe2.jaylen.nyc/pkg/jwt"
)

// feedCacheTTL は公開フィードキャッシュの有効期限
const feedCacheTTL = 30 * time.Second

// Container はアプリケーションの依存関係を保持するDIコンテナです
type Container struct {
	// Infrastructure
	PgClient    *database.PostgresClient
	RedisClient *cache.RedisClient
	TxManager   *database.TxManager

	// Services
	RateLimiter *cache.RateLimiter
	FeedCache   *cache.Cache
	ChunkStore  *chunkstore.Store
	Assembler   *chunkstore.Assembler
	ObjectHost  service.ObjectHost
	OAuthClient service.OAuthClient
	StateTokens *jwt.StateTokenService

	// Repositories
	UserRepo        repository.UserRepository
	UserProfileRepo repository.UserProfileRepository
	AudioFileRepo   repository.AudioFileRepository
	SessionRepo     repository.SessionRepository

	// UseCases
	UseCases *UseCases

	// config
	config *config.Config
}

// NewContainer は新しいContainerを作成します
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	return NewContainerWithOptions(ctx, cfg, Options{})
}

// NewContainerWithOptions はオプションを指定してContainerを作成します
func NewContainerWithOptions(ctx context.Context, cfg *config.Config, opts Options) (*Container, error) {
	c := &Container{
		config: cfg,
	}

	// PostgreSQL
	if opts.PostgresPool != nil {
		c.TxManager = database.NewTxManager(opts.PostgresPool)
	} else {
		slog.Info("connecting to PostgreSQL...")
		pgClient, err := database.NewPostgresClient(ctx, cfg.Database.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		c.PgClient = pgClient
		c.TxManager = database.NewTxManager(pgClient.Pool())
		slog.Info("connected to PostgreSQL")
	}

	// Redis
	if opts.RedisClient != nil {
		c.SessionRepo = cache.NewSessionStore(opts.RedisClient, entity.SessionTTL)
		c.RateLimiter = cache.NewRateLimiter(opts.RedisClient)
		c.FeedCache = cache.NewCache(opts.RedisClient, "feed", feedCacheTTL)
	} else {
		slog.Info("connecting to Redis...")
		redisConfig := cache.DefaultConfig()
		redisConfig.URL = cfg.Redis.URL
		redisClient, err := cache.NewRedisClient(redisConfig)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		c.RedisClient = redisClient
		c.SessionRepo = cache.NewSessionStore(redisClient.Client(), entity.SessionTTL)
		c.RateLimiter = cache.NewRateLimiter(redisClient.Client())
		c.FeedCache = cache.NewCache(redisClient.Client(), "feed", feedCacheTTL)
		slog.Info("connected to Redis")
	}

	// チャンク一時保存領域
	c.ChunkStore = chunkstore.NewStore(cfg.Chunks.Dir)
	if err := c.ChunkStore.EnsureReady(); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to prepare chunk dir: %w", err)
	}
	c.Assembler = chunkstore.NewAssembler(cfg.Chunks.Dir, c.ChunkStore)

	// オブジェクトホスト
	if opts.ObjectHost != nil {
		c.ObjectHost = opts.ObjectHost
	} else {
		host, err := newObjectHost(ctx, cfg.ObjectHost)
		if err != nil {
			c.Close()
			return nil, err
		}
		c.ObjectHost = host
	}

	// Discord OAuth
	if opts.OAuthClient != nil {
		c.OAuthClient = opts.OAuthClient
	} else {
		c.OAuthClient = oauth.NewDiscordClient(
			cfg.OAuth.DiscordClientID,
			cfg.OAuth.DiscordClientSecret,
			cfg.OAuth.DiscordRedirectURL,
		)
	}

	// OAuth stateトークン
	c.StateTokens = jwt.NewStateTokenService(jwt.Config{
		SecretKey: cfg.OAuth.StateSecret,
		Expiry:    cfg.OAuth.StateTokenExpiry,
	})

	// Repositories
	c.UserRepo = infraRepo.NewUserRepository(c.TxManager)
	c.UserProfileRepo = infraRepo.NewUserProfileRepository(c.TxManager)
	c.AudioFileRepo = infraRepo.NewAudioFileRepository(c.TxManager)

	c.UseCases = NewUseCases(c)

	return c, nil
}

// newObjectHost は設定されたプロバイダーのオブジェクトホストを作成します
func newObjectHost(ctx context.Context, cfg config.ObjectHostConfig) (service.ObjectHost, error) {
	switch cfg.Provider {
	case config.ObjectHostMinIO:
		host, err := objecthost.NewMinIOHost(cfg.MinIO)
		if err != nil {
			return nil, fmt.Errorf("failed to create MinIO host: %w", err)
		}
		if err := host.EnsureBucket(ctx); err != nil {
			return nil, fmt.Errorf("failed to prepare MinIO bucket: %w", err)
		}
		return host, nil
	case config.ObjectHostTixte:
		return objecthost.NewTixteHost(cfg.Tixte), nil
	default:
		return nil, fmt.Errorf("unknown object host provider: %s", cfg.Provider)
	}
}

// Close はリソースをクリーンアップします
func (c *Container) Close() error {
	var errs []error

	if c.PgClient != nil {
		c.PgClient.Close()
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during close: %v", errs)
	}
	return nil
}

// Options はContainer作成時のオプションを定義します
type Options struct {
	PostgresPool *pgxpool.Pool
	RedisClient  *redis.Client
	ObjectHost   service.ObjectHost
	OAuthClient  service.OAuthClient
}
