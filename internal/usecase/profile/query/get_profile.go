package query

import (
	"context"

	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/entity"
	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/repository"
	"github.com/jvqze/fe2.jaylen.nyc/internal/infrastructure/database"
	"github.com/jvqze/fe2.jaylen.nyc/pkg/apperror"
)

// GetProfileOutput は公開プロフィールの出力を定義します
// Uploadsには非公開を除いたレコードのみが含まれます
type GetProfileOutput struct {
	User    *entity.User
	Profile *entity.UserProfile
	Uploads []*entity.AudioFile
}

// GetProfileQuery はDiscordユーザーIDによる公開プロフィールクエリです
type GetProfileQuery struct {
	userRepo      repository.UserRepository
	profileRepo   repository.UserProfileRepository
	audioFileRepo repository.AudioFileRepository
}

// NewGetProfileQuery は新しいGetProfileQueryを作成します
func NewGetProfileQuery(
	userRepo repository.UserRepository,
	profileRepo repository.UserProfileRepository,
	audioFileRepo repository.AudioFileRepository,
) *GetProfileQuery {
	return &GetProfileQuery{
		userRepo:      userRepo,
		profileRepo:   profileRepo,
		audioFileRepo: audioFileRepo,
	}
}

// Execute は公開プロフィールを取得します
func (q *GetProfileQuery) Execute(ctx context.Context, discordID string) (*GetProfileOutput, error) {
	user, err := q.userRepo.FindByDiscordID(ctx, discordID)
	if err != nil {
		if database.IsNotFoundError(err) {
			return nil, apperror.NewNotFoundError("profile")
		}
		return nil, apperror.NewInternalError(err)
	}

	profile, err := q.profileRepo.FindByUserID(ctx, user.ID)
	if err != nil {
		if database.IsNotFoundError(err) {
			// ログインのみでアップロードが1件もないユーザー
			profile = entity.NewUserProfile(user.ID, user.AvatarURL)
		} else {
			return nil, apperror.NewInternalError(err)
		}
	}

	uploads, err := q.audioFileRepo.ListPublicByOwner(ctx, user.ID)
	if err != nil {
		return nil, apperror.NewInternalError(err)
	}

	return &GetProfileOutput{
		User:    user,
		Profile: profile,
		Uploads: uploads,
	}, nil
}
