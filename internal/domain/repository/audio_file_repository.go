package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/entity"
)

// AudioFileRepository はアップロードレコードの永続化を定義します
// レコードは追記専用で、このサブシステムから削除されることはありません
type AudioFileRepository interface {
	Create(ctx context.Context, file *entity.AudioFile) error
	Update(ctx context.Context, file *entity.AudioFile) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.AudioFile, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.AudioFile, error)
	// ListPublicByOwner は指定ユーザーの非公開を除いたレコードを返します
	ListPublicByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.AudioFile, error)
	// ListPublic は全ユーザーの公開レコードを新しい順に返します
	ListPublic(ctx context.Context, limit int) ([]*entity.AudioFile, error)
}
