package di

import (
	audiocmd "github.com/jvqze/fe2.jaylen.nyc/internal/usecase/audio/command"
	audioqry "github.com/jvqze/fe2.jaylen.nyc/internal/usecase/audio/query"
	authcmd "github.com/jvqze/fe2.jaylen.nyc/internal/usecase/auth/command"
	authqry "github.com/jvqze/fe2.jaylen.nyc/internal/usecase/auth/query"
	profilecmd "github.com/jvqze/fe2.jaylen.nyc/internal/usecase/profile/command"
	profileqry "github.com/jvqze/fe2.jaylen.nyc/internal/usecase/profile/query"
	uploadcmd "github.com/jvqze/fe2.jaylen.nyc/internal/usecase/upload/command"
)

// UseCases はアプリケーションの全ユースケースを保持します
type UseCases struct {
	// Auth
	OAuthLogin *authcmd.OAuthLoginCommand
	Logout     *authcmd.LogoutCommand
	GetMe      *authqry.GetMeQuery

	// Upload
	UploadChunk *uploadcmd.UploadChunkCommand

	// Audio
	UpdateAudioFile  *audiocmd.UpdateAudioFileCommand
	ListUserFiles    *audioqry.ListUserFilesQuery
	ListPublicAudios *audioqry.ListPublicAudiosQuery

	// Profile
	AwardBadge   *profilecmd.AwardBadgeCommand
	GetProfile   *profileqry.GetProfileQuery
	ListProfiles *profileqry.ListProfilesQuery
}

// NewUseCases はContainerから全てのユースケースを初期化します
func NewUseCases(c *Container) *UseCases {
	return &UseCases{
		OAuthLogin: authcmd.NewOAuthLoginCommand(
			c.UserRepo,
			c.UserProfileRepo,
			c.OAuthClient,
			c.TxManager,
			c.SessionRepo,
		),
		Logout: authcmd.NewLogoutCommand(c.SessionRepo),
		GetMe:  authqry.NewGetMeQuery(c.UserRepo),

		UploadChunk: uploadcmd.NewUploadChunkCommand(
			c.ChunkStore,
			c.Assembler,
			c.ObjectHost,
			c.UserRepo,
			c.UserProfileRepo,
			c.AudioFileRepo,
			c.TxManager,
		),

		UpdateAudioFile:  audiocmd.NewUpdateAudioFileCommand(c.AudioFileRepo),
		ListUserFiles:    audioqry.NewListUserFilesQuery(c.AudioFileRepo),
		ListPublicAudios: audioqry.NewListPublicAudiosQuery(c.AudioFileRepo, c.FeedCache),

		AwardBadge: profilecmd.NewAwardBadgeCommand(
			c.UserRepo,
			c.UserProfileRepo,
			c.config.Admin.DiscordUserID,
		),
		GetProfile: profileqry.NewGetProfileQuery(
			c.UserRepo,
			c.UserProfileRepo,
			c.AudioFileRepo,
		),
		ListProfiles: profileqry.NewListProfilesQuery(c.UserRepo, c.UserProfileRepo),
	}
}
