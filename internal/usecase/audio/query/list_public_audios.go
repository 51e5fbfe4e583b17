package query

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/entity"
	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/repository"
	"github.com/jvqze/fe2.jaylen.nyc/internal/infrastructure/cache"
	"github.com/jvqze/fe2.jaylen.nyc/pkg/apperror"
)

// DefaultFeedLimit は公開フィードの既定の取得件数です
const DefaultFeedLimit = 100

const feedCacheKey = "feed"

// ListPublicAudiosQuery は全ユーザーの公開音声フィードクエリです
// 読み取りが支配的なため、短いTTLのキャッシュを挟みます
type ListPublicAudiosQuery struct {
	audioFileRepo repository.AudioFileRepository
	feedCache     *cache.Cache
}

// NewListPublicAudiosQuery は新しいListPublicAudiosQueryを作成します
// feedCacheはnil可で、その場合は常にデータベースへ問い合わせます
func NewListPublicAudiosQuery(audioFileRepo repository.AudioFileRepository, feedCache *cache.Cache) *ListPublicAudiosQuery {
	return &ListPublicAudiosQuery{
		audioFileRepo: audioFileRepo,
		feedCache:     feedCache,
	}
}

// Execute は公開フィードを新しい順に取得します
func (q *ListPublicAudiosQuery) Execute(ctx context.Context) ([]*entity.AudioFile, error) {
	if q.feedCache != nil {
		var cached []*entity.AudioFile
		err := q.feedCache.Get(ctx, feedCacheKey, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			slog.Warn("feed cache read failed", "error", err)
		}
	}

	files, err := q.audioFileRepo.ListPublic(ctx, DefaultFeedLimit)
	if err != nil {
		return nil, apperror.NewInternalError(err)
	}

	if q.feedCache != nil {
		if err := q.feedCache.Set(ctx, feedCacheKey, files); err != nil {
			slog.Warn("feed cache write failed", "error", err)
		}
	}
	return files, nil
}
