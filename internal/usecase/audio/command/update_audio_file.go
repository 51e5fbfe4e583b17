package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/entity"
	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/repository"
	"github.com/jvqze/fe2.jaylen.nyc/internal/infrastructure/database"
	"github.com/jvqze/fe2.jaylen.nyc/pkg/apperror"
)

// UpdateAudioFileInput はアップロードレコード更新の入力を定義します
// nilのフィールドは変更しません
type UpdateAudioFileInput struct {
	UserID  uuid.UUID
	FileID  uuid.UUID
	Title   *string
	Private *bool
}

// UpdateAudioFileCommand はタイトル・公開設定の更新コマンドです
type UpdateAudioFileCommand struct {
	audioFileRepo repository.AudioFileRepository
}

// NewUpdateAudioFileCommand は新しいUpdateAudioFileCommandを作成します
func NewUpdateAudioFileCommand(audioFileRepo repository.AudioFileRepository) *UpdateAudioFileCommand {
	return &UpdateAudioFileCommand{
		audioFileRepo: audioFileRepo,
	}
}

// Execute はレコードを更新します。所有者のみが更新できます
func (c *UpdateAudioFileCommand) Execute(ctx context.Context, input UpdateAudioFileInput) (*entity.AudioFile, error) {
	file, err := c.audioFileRepo.FindByID(ctx, input.FileID)
	if err != nil {
		if database.IsNotFoundError(err) {
			return nil, apperror.NewNotFoundError("audio file")
		}
		return nil, apperror.NewInternalError(err)
	}

	if !file.IsOwnedBy(input.UserID) {
		return nil, apperror.NewForbiddenError("you do not own this file")
	}

	if input.Title != nil {
		file.SetTitle(*input.Title)
	}
	if input.Private != nil {
		file.SetPrivate(*input.Private)
	}

	if err := c.audioFileRepo.Update(ctx, file); err != nil {
		return nil, apperror.NewInternalError(err)
	}
	return file, nil
}
