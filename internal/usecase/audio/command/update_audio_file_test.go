package command_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/entity"
	"github.com/jvqze/fe2.jaylen.nyc/internal/infrastructure/database"
	"github.com/jvqze/fe2.jaylen.nyc/internal/usecase/audio/command"
	"github.com/jvqze/fe2.jaylen.nyc/pkg/apperror"
	"github.com/jvqze/fe2.jaylen.nyc/tests/testutil/mocks"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestUpdateAudioFileCommand_Execute_UpdatesTitleAndVisibility(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewMockAudioFileRepository(t)

	ownerID := uuid.New()
	file := entity.NewAudioFile(ownerID, "https://cdn.jaylen.nyc/song.mp3")

	repo.On("FindByID", ctx, file.ID).Return(file, nil)
	repo.On("Update", ctx, mock.MatchedBy(func(f *entity.AudioFile) bool {
		return f.Title != nil && *f.Title == "My Song" && f.Private
	})).Return(nil)

	cmd := command.NewUpdateAudioFileCommand(repo)
	updated, err := cmd.Execute(ctx, command.UpdateAudioFileInput{
		UserID:  ownerID,
		FileID:  file.ID,
		Title:   strPtr("My Song"),
		Private: boolPtr(true),
	})

	require.NoError(t, err)
	assert.Equal(t, "My Song", *updated.Title)
	assert.True(t, updated.Private)
}

func TestUpdateAudioFileCommand_Execute_NotOwner_ReturnsForbidden(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewMockAudioFileRepository(t)

	file := entity.NewAudioFile(uuid.New(), "https://cdn.jaylen.nyc/song.mp3")
	repo.On("FindByID", ctx, file.ID).Return(file, nil)

	cmd := command.NewUpdateAudioFileCommand(repo)
	_, err := cmd.Execute(ctx, command.UpdateAudioFileInput{
		UserID:  uuid.New(),
		FileID:  file.ID,
		Private: boolPtr(true),
	})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeForbidden, appErr.Code)
}

func TestUpdateAudioFileCommand_Execute_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewMockAudioFileRepository(t)

	fileID := uuid.New()
	repo.On("FindByID", ctx, fileID).Return(nil, database.ErrNotFound)

	cmd := command.NewUpdateAudioFileCommand(repo)
	_, err := cmd.Execute(ctx, command.UpdateAudioFileInput{
		UserID: uuid.New(),
		FileID: fileID,
	})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeNotFound, appErr.Code)
}
