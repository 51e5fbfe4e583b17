package repository

import (
	"context"

	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/entity"
)

// SessionRepository はセッションの永続化を定義します
type SessionRepository interface {
	Save(ctx context.Context, session *entity.Session) error
	FindByID(ctx context.Context, sessionID string) (*entity.Session, error)
	Delete(ctx context.Context, sessionID string) error
}
