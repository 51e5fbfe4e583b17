package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/entity"
	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/repository"
	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/service"
	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/valueobject"
	"github.com/jvqze/fe2.jaylen.nyc/internal/infrastructure/database"
	"github.com/jvqze/fe2.jaylen.nyc/pkg/apperror"
)

// UploadChunkInput はチャンクアップロードの入力を定義します
type UploadChunkInput struct {
	UserID      uuid.UUID
	FileName    string
	ChunkIndex  int
	TotalChunks int
	Chunk       io.Reader
}

// UploadChunkOutput はチャンクアップロードの出力を定義します
// 中間チャンクはCompleted=falseで受理のみを通知し、
// 最終チャンクでCompleted=trueと公開URLを返します
type UploadChunkOutput struct {
	Completed bool
	AudioLink string
	AudioFile *entity.AudioFile
}

// UploadChunkCommand はチャンク受信から公開までのパイプラインです
// 最終チャンクの到着が結合のトリガーとなります
type UploadChunkCommand struct {
	store         service.ChunkStore
	assembler     service.ChunkAssembler
	objectHost    service.ObjectHost
	userRepo      repository.UserRepository
	profileRepo   repository.UserProfileRepository
	audioFileRepo repository.AudioFileRepository
	txManager     repository.TransactionManager
}

// NewUploadChunkCommand は新しいUploadChunkCommandを作成します
func NewUploadChunkCommand(
	store service.ChunkStore,
	assembler service.ChunkAssembler,
	objectHost service.ObjectHost,
	userRepo repository.UserRepository,
	profileRepo repository.UserProfileRepository,
	audioFileRepo repository.AudioFileRepository,
	txManager repository.TransactionManager,
) *UploadChunkCommand {
	return &UploadChunkCommand{
		store:         store,
		assembler:     assembler,
		objectHost:    objectHost,
		userRepo:      userRepo,
		profileRepo:   profileRepo,
		audioFileRepo: audioFileRepo,
		txManager:     txManager,
	}
}

// Execute はチャンクを受理し、最終チャンクであれば結合と公開まで行います
func (c *UploadChunkCommand) Execute(ctx context.Context, input UploadChunkInput) (*UploadChunkOutput, error) {
	fileName, err := valueobject.NewFileName(input.FileName)
	if err != nil {
		return nil, c.mapChunkError(err)
	}
	upload, err := entity.NewChunkUpload(fileName, input.TotalChunks)
	if err != nil {
		return nil, c.mapChunkError(err)
	}
	if err := upload.ValidateIndex(input.ChunkIndex); err != nil {
		return nil, c.mapChunkError(err)
	}

	// 1. フラグメントをディスクへ書き込む
	if err := c.store.Put(input.FileName, input.ChunkIndex, input.TotalChunks, input.Chunk); err != nil {
		return nil, c.mapChunkError(err)
	}
	if err := upload.RecordFragment(input.ChunkIndex); err != nil {
		return nil, c.mapChunkError(err)
	}

	// 2. 中間チャンクは受理のみ
	if !upload.IsFinalIndex(input.ChunkIndex) {
		return &UploadChunkOutput{Completed: false}, nil
	}

	// 3. 最終チャンク: 結合の占有権を取得する
	if err := c.store.Claim(input.FileName); err != nil {
		if errors.Is(err, service.ErrAlreadyFinalizing) {
			return nil, apperror.NewConflictError("upload is already being finalized")
		}
		return nil, apperror.NewInternalError(err)
	}
	defer c.store.Release(input.FileName)

	if err := upload.BeginFinalize(); err != nil {
		return nil, apperror.NewInternalError(err)
	}
	// 結合以降のどこで失敗しても失敗状態で終端させる
	defer func() {
		if !upload.IsComplete() {
			upload.Fail()
		}
	}()

	// 4. フラグメントを結合する
	assembledPath, err := c.assembler.Assemble(input.FileName, input.TotalChunks)
	if err != nil {
		var missing *service.MissingFragmentError
		if errors.As(err, &missing) {
			// 欠番はクライアント側で回復できないサーバー状態なので、欠けたパスを明示する
			return nil, apperror.NewInternalErrorWithMessage(
				fmt.Sprintf("missing chunk file: %s (index %d)", missing.Path, missing.Index), err)
		}
		return nil, apperror.NewInternalError(err)
	}
	defer func() {
		c.assembler.RemoveAssembled(assembledPath)
		c.store.RemoveMeta(input.FileName)
	}()

	// 5. 結合済みファイルをリモートホストへ公開する
	assembled, err := os.Open(assembledPath)
	if err != nil {
		return nil, apperror.NewInternalError(fmt.Errorf("failed to open assembled file: %w", err))
	}
	result, uploadErr := c.objectHost.Upload(ctx, assembled, input.FileName)
	assembled.Close()
	if uploadErr != nil {
		return nil, uploadErr
	}

	// 6. メタデータを1トランザクションで保存する
	audioFile, err := c.persistUpload(ctx, input.UserID, result.DirectURL)
	if err != nil {
		// 公開は成功しているため、URLを失わないようログに残す
		slog.Error("failed to persist upload metadata",
			"file_name", input.FileName, "direct_url", result.DirectURL, "error", err)
		return nil, err
	}

	if err := upload.Complete(); err != nil {
		return nil, apperror.NewInternalError(err)
	}

	return &UploadChunkOutput{
		Completed: upload.IsComplete(),
		AudioLink: result.DirectURL,
		AudioFile: audioFile,
	}, nil
}

// persistUpload はプロフィールのupsertとアップロードレコードの挿入を
// 同一トランザクションで行います
func (c *UploadChunkCommand) persistUpload(ctx context.Context, userID uuid.UUID, directURL string) (*entity.AudioFile, error) {
	var audioFile *entity.AudioFile

	err := c.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		user, txErr := c.userRepo.FindByID(ctx, userID)
		if txErr != nil {
			if database.IsNotFoundError(txErr) {
				return apperror.NewNotFoundError("user")
			}
			return txErr
		}

		profile := entity.NewUserProfile(user.ID, user.AvatarURL)
		if txErr := c.profileRepo.Upsert(ctx, profile); txErr != nil {
			return txErr
		}

		audioFile = entity.NewAudioFile(user.ID, directURL)
		return c.audioFileRepo.Create(ctx, audioFile)
	})
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, apperror.NewInternalError(err)
	}
	return audioFile, nil
}

// mapChunkError はドメインの検証エラーをHTTP向けエラーへ変換します
func (c *UploadChunkCommand) mapChunkError(err error) error {
	switch {
	case errors.Is(err, valueobject.ErrEmptyFileName),
		errors.Is(err, valueobject.ErrInvalidFileName),
		errors.Is(err, valueobject.ErrFileNameTooLong):
		return apperror.NewValidationError("invalid file name", nil)
	case errors.Is(err, entity.ErrInvalidTotalChunks):
		return apperror.NewValidationError("totalChunks must be a positive integer", nil)
	case errors.Is(err, entity.ErrChunkIndexOutOfRange):
		return apperror.NewValidationError("chunk index is out of range", nil)
	case errors.Is(err, entity.ErrTotalChunksMismatch):
		return apperror.NewInvalidRequestError("totalChunks does not match the value declared by the first chunk")
	default:
		return apperror.NewInternalError(err)
	}
}
