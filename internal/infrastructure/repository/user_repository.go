package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/entity"
	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/repository"
	"github.com/jvqze/fe2.jaylen.nyc/internal/infrastructure/database"
)

// UserRepository はユーザーリポジトリの実装です
type UserRepository struct {
	*database.BaseRepository
}

// NewUserRepository は新しいUserRepositoryを作成します
func NewUserRepository(txManager *database.TxManager) *UserRepository {
	return &UserRepository{
		BaseRepository: database.NewBaseRepository(txManager),
	}
}

// Create はユーザーを作成します
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	querier := r.Querier(ctx)

	_, err := querier.Exec(ctx, `
		INSERT INTO users (id, discord_id, username, avatar_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.DiscordID, user.Username, user.AvatarURL, user.CreatedAt, user.UpdatedAt,
	)
	return r.HandleError(err)
}

// Update はユーザーを更新します
func (r *UserRepository) Update(ctx context.Context, user *entity.User) error {
	querier := r.Querier(ctx)

	tag, err := querier.Exec(ctx, `
		UPDATE users
		SET username = $2, avatar_url = $3, updated_at = $4
		WHERE id = $1`,
		user.ID, user.Username, user.AvatarURL, user.UpdatedAt,
	)
	if err != nil {
		return r.HandleError(err)
	}
	if tag.RowsAffected() == 0 {
		return database.ErrNotFound
	}
	return nil
}

// FindByID はIDでユーザーを検索します
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	querier := r.Querier(ctx)

	row := querier.QueryRow(ctx, `
		SELECT id, discord_id, username, avatar_url, created_at, updated_at
		FROM users
		WHERE id = $1`,
		id,
	)
	return r.scanUser(row)
}

// FindByDiscordID はDiscordのユーザーIDでユーザーを検索します
func (r *UserRepository) FindByDiscordID(ctx context.Context, discordID string) (*entity.User, error) {
	querier := r.Querier(ctx)

	row := querier.QueryRow(ctx, `
		SELECT id, discord_id, username, avatar_url, created_at, updated_at
		FROM users
		WHERE discord_id = $1`,
		discordID,
	)
	return r.scanUser(row)
}

// scanUser は1行をエンティティへ復元します
func (r *UserRepository) scanUser(row interface{ Scan(dest ...any) error }) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.ID,
		&user.DiscordID,
		&user.Username,
		&user.AvatarURL,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, r.HandleError(err)
	}
	return &user, nil
}

// インターフェースの実装を保証
var _ repository.UserRepository = (*UserRepository)(nil)
