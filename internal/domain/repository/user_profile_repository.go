package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/entity"
)

// UserProfileRepository は公開プロフィールの永続化を定義します
type UserProfileRepository interface {
	// Upsert はプロフィールを作成または更新します（owner単位のupsert）
	Upsert(ctx context.Context, profile *entity.UserProfile) error
	Update(ctx context.Context, profile *entity.UserProfile) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserProfile, error)
	List(ctx context.Context) ([]*entity.UserProfile, error)
}
