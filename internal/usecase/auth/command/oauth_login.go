package command

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/entity"
	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/repository"
	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/service"
	"github.com/jvqze/fe2.jaylen.nyc/internal/infrastructure/database"
	"github.com/jvqze/fe2.jaylen.nyc/pkg/apperror"
)

// OAuthLoginInput はDiscordログインの入力を定義します
type OAuthLoginInput struct {
	Code      string
	UserAgent string
	IPAddress string
}

// OAuthLoginOutput はDiscordログインの出力を定義します
type OAuthLoginOutput struct {
	SessionID string
	ExpiresAt time.Time
	User      *entity.User
	IsNewUser bool
}

// OAuthLoginCommand はDiscordログインコマンドです
type OAuthLoginCommand struct {
	userRepo    repository.UserRepository
	profileRepo repository.UserProfileRepository
	oauthClient service.OAuthClient
	txManager   repository.TransactionManager
	sessionRepo repository.SessionRepository
}

// NewOAuthLoginCommand は新しいOAuthLoginCommandを作成します
func NewOAuthLoginCommand(
	userRepo repository.UserRepository,
	profileRepo repository.UserProfileRepository,
	oauthClient service.OAuthClient,
	txManager repository.TransactionManager,
	sessionRepo repository.SessionRepository,
) *OAuthLoginCommand {
	return &OAuthLoginCommand{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		oauthClient: oauthClient,
		txManager:   txManager,
		sessionRepo: sessionRepo,
	}
}

// Execute はDiscordログインを実行します
func (c *OAuthLoginCommand) Execute(ctx context.Context, input OAuthLoginInput) (*OAuthLoginOutput, error) {
	// 1. 認可コードをトークンに交換
	tokens, err := c.oauthClient.ExchangeCode(ctx, input.Code)
	if err != nil {
		return nil, apperror.NewValidationError("invalid authorization code", nil)
	}

	// 2. ユーザー情報の取得
	userInfo, err := c.oauthClient.GetUserInfo(ctx, tokens.AccessToken)
	if err != nil {
		return nil, apperror.NewInternalError(err)
	}

	// 3. トランザクション内でユーザー処理
	var user *entity.User
	var isNewUser bool

	err = c.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		existing, txErr := c.userRepo.FindByDiscordID(ctx, userInfo.ProviderUserID)
		if txErr == nil {
			// 既存ユーザーはDiscord側の表示情報を追従させる
			existing.UpdateIdentity(userInfo.Username, userInfo.AvatarURL)
			if txErr = c.userRepo.Update(ctx, existing); txErr != nil {
				return txErr
			}
			user = existing
			isNewUser = false
			return nil
		}
		if !database.IsNotFoundError(txErr) {
			return txErr
		}

		// 新規ユーザーとプロフィールを作成
		user = entity.NewUser(userInfo.ProviderUserID, userInfo.Username, userInfo.AvatarURL)
		if txErr = c.userRepo.Create(ctx, user); txErr != nil {
			return txErr
		}

		profile := entity.NewUserProfile(user.ID, userInfo.AvatarURL)
		if txErr = c.profileRepo.Upsert(ctx, profile); txErr != nil {
			return txErr
		}

		isNewUser = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 4. セッション作成
	session := entity.NewSession(uuid.New().String(), user.ID, input.UserAgent, input.IPAddress)
	if err := c.sessionRepo.Save(ctx, session); err != nil {
		return nil, apperror.NewInternalError(err)
	}

	return &OAuthLoginOutput{
		SessionID: session.ID,
		ExpiresAt: session.ExpiresAt,
		User:      user,
		IsNewUser: isNewUser,
	}, nil
}
