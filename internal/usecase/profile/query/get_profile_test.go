package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/entity"
	"github.com/jvqze/fe2.jaylen.nyc/internal/infrastructure/database"
	"github.com/jvqze/fe2.jaylen.nyc/pkg/apperror"
	"github.com/jvqze/fe2.jaylen.nyc/tests/testutil/mocks"
)

func TestGetProfileQuery_Execute(t *testing.T) {
	user := entity.NewUser("123456789", "jaylen", "https://cdn.discordapp.com/avatars/123456789/abc.png")
	profile := entity.NewUserProfile(user.ID, user.AvatarURL)
	profile.AwardBadge("early-supporter", "")
	uploads := []*entity.AudioFile{entity.NewAudioFile(user.ID, "https://cdn.jaylen.nyc/song.mp3")}

	t.Run("returns profile with public uploads", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository(t)
		profileRepo := mocks.NewMockUserProfileRepository(t)
		audioRepo := mocks.NewMockAudioFileRepository(t)

		userRepo.On("FindByDiscordID", mock.Anything, "123456789").Return(user, nil)
		profileRepo.On("FindByUserID", mock.Anything, user.ID).Return(profile, nil)
		audioRepo.On("ListPublicByOwner", mock.Anything, user.ID).Return(uploads, nil)

		q := NewGetProfileQuery(userRepo, profileRepo, audioRepo)
		output, err := q.Execute(context.Background(), "123456789")

		require.NoError(t, err)
		assert.Equal(t, user, output.User)
		assert.Equal(t, profile, output.Profile)
		assert.Len(t, output.Uploads, 1)
	})

	t.Run("synthesizes empty profile for login-only user", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository(t)
		profileRepo := mocks.NewMockUserProfileRepository(t)
		audioRepo := mocks.NewMockAudioFileRepository(t)

		userRepo.On("FindByDiscordID", mock.Anything, "123456789").Return(user, nil)
		profileRepo.On("FindByUserID", mock.Anything, user.ID).Return(nil, database.ErrNotFound)
		audioRepo.On("ListPublicByOwner", mock.Anything, user.ID).Return([]*entity.AudioFile{}, nil)

		q := NewGetProfileQuery(userRepo, profileRepo, audioRepo)
		output, err := q.Execute(context.Background(), "123456789")

		require.NoError(t, err)
		assert.Equal(t, user.ID, output.Profile.UserID)
		assert.Equal(t, user.AvatarURL, output.Profile.DiscordAvatar)
		assert.Empty(t, output.Profile.Badges)
	})

	t.Run("returns not found for unknown discord id", func(t *testing.T) {
		userRepo := mocks.NewMockUserRepository(t)
		profileRepo := mocks.NewMockUserProfileRepository(t)
		audioRepo := mocks.NewMockAudioFileRepository(t)

		userRepo.On("FindByDiscordID", mock.Anything, "000000000").Return(nil, database.ErrNotFound)

		q := NewGetProfileQuery(userRepo, profileRepo, audioRepo)
		_, err := q.Execute(context.Background(), "000000000")

		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeNotFound, appErr.Code)
	})
}
