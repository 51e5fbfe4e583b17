package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/entity"
)

// UserRepository はユーザーの永続化を定義します
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByDiscordID(ctx context.Context, discordID string) (*entity.User, error)
}
