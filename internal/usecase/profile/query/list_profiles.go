package query

import (
	"context"
	"log/slog"

	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/entity"
	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/repository"
	"github.com/jvqze/fe2.jaylen.nyc/pkg/apperror"
)

// ProfileSummary はプロフィール一覧の1エントリです
type ProfileSummary struct {
	User    *entity.User
	Profile *entity.UserProfile
}

// ListProfilesQuery は全公開プロフィールの一覧クエリです
type ListProfilesQuery struct {
	userRepo    repository.UserRepository
	profileRepo repository.UserProfileRepository
}

// NewListProfilesQuery は新しいListProfilesQueryを作成します
func NewListProfilesQuery(
	userRepo repository.UserRepository,
	profileRepo repository.UserProfileRepository,
) *ListProfilesQuery {
	return &ListProfilesQuery{
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

// Execute はプロフィール一覧を作成順に取得します
func (q *ListProfilesQuery) Execute(ctx context.Context) ([]ProfileSummary, error) {
	profiles, err := q.profileRepo.List(ctx)
	if err != nil {
		return nil, apperror.NewInternalError(err)
	}

	summaries := make([]ProfileSummary, 0, len(profiles))
	for _, profile := range profiles {
		user, err := q.userRepo.FindByID(ctx, profile.UserID)
		if err != nil {
			// 退会などで消えたユーザーの行はスキップする
			slog.Warn("profile without user", "user_id", profile.UserID, "error", err)
			continue
		}
		summaries = append(summaries, ProfileSummary{User: user, Profile: profile})
	}
	return summaries, nil
}
