package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/entity"
	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/repository"
	"github.com/jvqze/fe2.jaylen.nyc/pkg/apperror"
)

// ListUserFilesQuery はログイン中ユーザーのアップロード一覧クエリです
// 本人向けのため非公開レコードも含みます
type ListUserFilesQuery struct {
	audioFileRepo repository.AudioFileRepository
}

// NewListUserFilesQuery は新しいListUserFilesQueryを作成します
func NewListUserFilesQuery(audioFileRepo repository.AudioFileRepository) *ListUserFilesQuery {
	return &ListUserFilesQuery{
		audioFileRepo: audioFileRepo,
	}
}

// Execute はアップロード一覧を新しい順に取得します
func (q *ListUserFilesQuery) Execute(ctx context.Context, userID uuid.UUID) ([]*entity.AudioFile, error) {
	files, err := q.audioFileRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, apperror.NewInternalError(err)
	}
	return files, nil
}
