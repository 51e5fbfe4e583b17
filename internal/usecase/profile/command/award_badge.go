package command

import (
	"context"

	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/entity"
	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/repository"
	"github.com/jvqze/fe2.jaylen.nyc/internal/infrastructure/database"
	"github.com/jvqze/fe2.jaylen.nyc/pkg/apperror"
)

// AwardBadgeInput はバッジ授与の入力を定義します
type AwardBadgeInput struct {
	ActorDiscordID  string
	TargetDiscordID string
	BadgeName       string
	BadgeIcon       string
}

// AwardBadgeCommand はプロフィールへのバッジ授与コマンドです
// 授与は設定された管理者のDiscordユーザーIDからのみ許可されます
type AwardBadgeCommand struct {
	userRepo       repository.UserRepository
	profileRepo    repository.UserProfileRepository
	adminDiscordID string
}

// NewAwardBadgeCommand は新しいAwardBadgeCommandを作成します
func NewAwardBadgeCommand(
	userRepo repository.UserRepository,
	profileRepo repository.UserProfileRepository,
	adminDiscordID string,
) *AwardBadgeCommand {
	return &AwardBadgeCommand{
		userRepo:       userRepo,
		profileRepo:    profileRepo,
		adminDiscordID: adminDiscordID,
	}
}

// Execute はバッジを授与します。同名バッジの二重授与は無視されます
func (c *AwardBadgeCommand) Execute(ctx context.Context, input AwardBadgeInput) (*entity.UserProfile, error) {
	if c.adminDiscordID == "" || input.ActorDiscordID != c.adminDiscordID {
		return nil, apperror.NewForbiddenError("only the administrator can award badges")
	}
	if input.BadgeName == "" {
		return nil, apperror.NewValidationError("badge name is required", nil)
	}

	user, err := c.userRepo.FindByDiscordID(ctx, input.TargetDiscordID)
	if err != nil {
		if database.IsNotFoundError(err) {
			return nil, apperror.NewNotFoundError("profile")
		}
		return nil, apperror.NewInternalError(err)
	}

	profile, err := c.profileRepo.FindByUserID(ctx, user.ID)
	if err != nil {
		if database.IsNotFoundError(err) {
			return nil, apperror.NewNotFoundError("profile")
		}
		return nil, apperror.NewInternalError(err)
	}

	if profile.HasBadge(input.BadgeName) {
		return profile, nil
	}

	profile.AwardBadge(input.BadgeName, input.BadgeIcon)
	if err := c.profileRepo.Update(ctx, profile); err != nil {
		return nil, apperror.NewInternalError(err)
	}
	return profile, nil
}
