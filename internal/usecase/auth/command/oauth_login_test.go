package command_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/entity"
	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/service"
	"github.com/jvqze/fe2.jaylen.nyc/internal/infrastructure/database"
	"github.com/jvqze/fe2.jaylen.nyc/internal/usecase/auth/command"
	"github.com/jvqze/fe2.jaylen.nyc/pkg/apperror"
	"github.com/jvqze/fe2.jaylen.nyc/tests/testutil/mocks"
)

type oauthTestDeps struct {
	userRepo    *mocks.MockUserRepository
	profileRepo *mocks.MockUserProfileRepository
	oauthClient *mocks.MockOAuthClient
	txManager   *mocks.MockTransactionManager
	sessionRepo *mocks.MockSessionRepository
}

func newOAuthTestDeps(t *testing.T) *oauthTestDeps {
	return &oauthTestDeps{
		userRepo:    mocks.NewMockUserRepository(t),
		profileRepo: mocks.NewMockUserProfileRepository(t),
		oauthClient: mocks.NewMockOAuthClient(t),
		txManager:   mocks.NewMockTransactionManager(t),
		sessionRepo: mocks.NewMockSessionRepository(t),
	}
}

func (d *oauthTestDeps) newCommand() *command.OAuthLoginCommand {
	return command.NewOAuthLoginCommand(
		d.userRepo,
		d.profileRepo,
		d.oauthClient,
		d.txManager,
		d.sessionRepo,
	)
}

func newOAuthInput() command.OAuthLoginInput {
	return command.OAuthLoginInput{
		Code:      "valid-auth-code",
		UserAgent: "test-agent",
		IPAddress: "127.0.0.1",
	}
}

func newOAuthTokens() *service.OAuthTokens {
	return &service.OAuthTokens{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		ExpiresIn:    3600,
	}
}

func newOAuthUserInfo() *service.OAuthUserInfo {
	return &service.OAuthUserInfo{
		ProviderUserID: "123456789",
		Username:       "jaylen",
		AvatarURL:      "https://cdn.discordapp.com/avatars/123456789/abc.png",
	}
}

func TestOAuthLoginCommand_Execute_InvalidCode_ReturnsValidationError(t *testing.T) {
	ctx := context.Background()
	deps := newOAuthTestDeps(t)

	deps.oauthClient.On("ExchangeCode", ctx, "valid-auth-code").
		Return(nil, errors.New("invalid code"))

	cmd := deps.newCommand()
	output, err := cmd.Execute(ctx, newOAuthInput())

	require.Error(t, err)
	assert.Nil(t, output)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeValidationError, appErr.Code)
}

func TestOAuthLoginCommand_Execute_NewUser_CreatesUserAndProfile(t *testing.T) {
	ctx := context.Background()
	deps := newOAuthTestDeps(t)
	userInfo := newOAuthUserInfo()

	deps.oauthClient.On("ExchangeCode", ctx, "valid-auth-code").Return(newOAuthTokens(), nil)
	deps.oauthClient.On("GetUserInfo", ctx, "access-token").Return(userInfo, nil)

	deps.userRepo.On("FindByDiscordID", mock.Anything, "123456789").
		Return(nil, database.ErrNotFound)
	deps.userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.DiscordID == "123456789" && u.Username == "jaylen"
	})).Return(nil)
	deps.profileRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(p *entity.UserProfile) bool {
		return p.DiscordAvatar == userInfo.AvatarURL
	})).Return(nil)
	deps.sessionRepo.On("Save", ctx, mock.MatchedBy(func(s *entity.Session) bool {
		return s.UserAgent == "test-agent" && s.IPAddress == "127.0.0.1" && s.ID != ""
	})).Return(nil)

	cmd := deps.newCommand()
	output, err := cmd.Execute(ctx, newOAuthInput())

	require.NoError(t, err)
	assert.True(t, output.IsNewUser)
	assert.NotEmpty(t, output.SessionID)
	assert.Equal(t, "123456789", output.User.DiscordID)
}

func TestOAuthLoginCommand_Execute_ExistingUser_RefreshesIdentity(t *testing.T) {
	ctx := context.Background()
	deps := newOAuthTestDeps(t)
	existing := entity.NewUser("123456789", "old-name", "https://cdn.discordapp.com/avatars/123456789/old.png")

	deps.oauthClient.On("ExchangeCode", ctx, "valid-auth-code").Return(newOAuthTokens(), nil)
	deps.oauthClient.On("GetUserInfo", ctx, "access-token").Return(newOAuthUserInfo(), nil)

	deps.userRepo.On("FindByDiscordID", mock.Anything, "123456789").Return(existing, nil)
	deps.userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Username == "jaylen"
	})).Return(nil)
	deps.sessionRepo.On("Save", ctx, mock.Anything).Return(nil)

	cmd := deps.newCommand()
	output, err := cmd.Execute(ctx, newOAuthInput())

	require.NoError(t, err)
	assert.False(t, output.IsNewUser)
	assert.Equal(t, "jaylen", output.User.Username)
}
