package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/entity"
	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/repository"
	"github.com/jvqze/fe2.jaylen.nyc/internal/infrastructure/database"
	"github.com/jvqze/fe2.jaylen.nyc/pkg/apperror"
)

// GetMeQuery はログイン中ユーザーの取得クエリです
type GetMeQuery struct {
	userRepo repository.UserRepository
}

// NewGetMeQuery は新しいGetMeQueryを作成します
func NewGetMeQuery(userRepo repository.UserRepository) *GetMeQuery {
	return &GetMeQuery{
		userRepo: userRepo,
	}
}

// Execute はユーザーを取得します
func (q *GetMeQuery) Execute(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := q.userRepo.FindByID(ctx, userID)
	if err != nil {
		if database.IsNotFoundError(err) {
			return nil, apperror.NewNotFoundError("user")
		}
		return nil, apperror.NewInternalError(err)
	}
	return user, nil
}
