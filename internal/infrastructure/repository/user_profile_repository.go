package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/entity"
	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/repository"
	"github.com/jvqze/fe2.jaylen.nyc/internal/infrastructure/database"
	"github.com/jvqze/fe2.jaylen.nyc/pkg/apperror"
)

// UserProfileRepository は公開プロフィールリポジトリの実装です
// バッジ一覧はJSONBカラムに保持します
type UserProfileRepository struct {
	*database.BaseRepository
}

// NewUserProfileRepository は新しいUserProfileRepositoryを作成します
func NewUserProfileRepository(txManager *database.TxManager) *UserProfileRepository {
	return &UserProfileRepository{
		BaseRepository: database.NewBaseRepository(txManager),
	}
}

// Upsert はプロフィールを作成または更新します
// アップロードのたびに呼ばれ、既存行があればアバターのみ更新します
func (r *UserProfileRepository) Upsert(ctx context.Context, profile *entity.UserProfile) error {
	querier := r.Querier(ctx)

	badgesJSON, err := json.Marshal(profile.Badges)
	if err != nil {
		return apperror.NewInternalError(err)
	}

	_, err = querier.Exec(ctx, `
		INSERT INTO user_profiles (user_id, discord_avatar, badges, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id)
		DO UPDATE SET discord_avatar = EXCLUDED.discord_avatar`,
		profile.UserID, profile.DiscordAvatar, badgesJSON, profile.CreatedAt,
	)
	return r.HandleError(err)
}

// Update はプロフィールの全フィールドを更新します（バッジ授与用）
func (r *UserProfileRepository) Update(ctx context.Context, profile *entity.UserProfile) error {
	querier := r.Querier(ctx)

	badgesJSON, err := json.Marshal(profile.Badges)
	if err != nil {
		return apperror.NewInternalError(err)
	}

	tag, err := querier.Exec(ctx, `
		UPDATE user_profiles
		SET discord_avatar = $2, badges = $3
		WHERE user_id = $1`,
		profile.UserID, profile.DiscordAvatar, badgesJSON,
	)
	if err != nil {
		return r.HandleError(err)
	}
	if tag.RowsAffected() == 0 {
		return database.ErrNotFound
	}
	return nil
}

// FindByUserID はユーザーIDでプロフィールを検索します
func (r *UserProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserProfile, error) {
	querier := r.Querier(ctx)

	row := querier.QueryRow(ctx, `
		SELECT user_id, discord_avatar, badges, created_at
		FROM user_profiles
		WHERE user_id = $1`,
		userID,
	)
	return r.scanProfile(row)
}

// List は全プロフィールを作成順に返します
func (r *UserProfileRepository) List(ctx context.Context) ([]*entity.UserProfile, error) {
	querier := r.Querier(ctx)

	rows, err := querier.Query(ctx, `
		SELECT user_id, discord_avatar, badges, created_at
		FROM user_profiles
		ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, r.HandleError(err)
	}
	defer rows.Close()

	profiles := make([]*entity.UserProfile, 0)
	for rows.Next() {
		profile, err := r.scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, r.HandleError(err)
	}
	return profiles, nil
}

// scanProfile は1行をエンティティへ復元します
func (r *UserProfileRepository) scanProfile(row interface{ Scan(dest ...any) error }) (*entity.UserProfile, error) {
	var profile entity.UserProfile
	var badgesJSON []byte

	err := row.Scan(&profile.UserID, &profile.DiscordAvatar, &badgesJSON, &profile.CreatedAt)
	if err != nil {
		return nil, r.HandleError(err)
	}

	badges := make([]entity.Badge, 0)
	if len(badgesJSON) > 0 {
		if err := json.Unmarshal(badgesJSON, &badges); err != nil {
			return nil, apperror.NewInternalError(err)
		}
	}
	profile.Badges = badges
	return &profile, nil
}

// インターフェースの実装を保証
var _ repository.UserProfileRepository = (*UserProfileRepository)(nil)
