package command_test

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/entity"
	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/service"
	"github.com/jvqze/fe2.jaylen.nyc/internal/infrastructure/chunkstore"
	"github.com/jvqze/fe2.jaylen.nyc/internal/usecase/upload/command"
	"github.com/jvqze/fe2.jaylen.nyc/pkg/apperror"
	"github.com/jvqze/fe2.jaylen.nyc/tests/testutil/mocks"
)

type uploadTestDeps struct {
	store         *chunkstore.Store
	assembler     *chunkstore.Assembler
	objectHost    *mocks.MockObjectHost
	userRepo      *mocks.MockUserRepository
	profileRepo   *mocks.MockUserProfileRepository
	audioFileRepo *mocks.MockAudioFileRepository
	txManager     *mocks.MockTransactionManager
}

func newUploadTestDeps(t *testing.T) *uploadTestDeps {
	store := chunkstore.NewStore(t.TempDir())
	require.NoError(t, store.EnsureReady())

	return &uploadTestDeps{
		store:         store,
		assembler:     chunkstore.NewAssembler(store.Dir(), store),
		objectHost:    mocks.NewMockObjectHost(t),
		userRepo:      mocks.NewMockUserRepository(t),
		profileRepo:   mocks.NewMockUserProfileRepository(t),
		audioFileRepo: mocks.NewMockAudioFileRepository(t),
		txManager:     mocks.NewMockTransactionManager(t),
	}
}

func (d *uploadTestDeps) newCommand() *command.UploadChunkCommand {
	return command.NewUploadChunkCommand(
		d.store,
		d.assembler,
		d.objectHost,
		d.userRepo,
		d.profileRepo,
		d.audioFileRepo,
		d.txManager,
	)
}

func newUploadInput(index int, payload string) command.UploadChunkInput {
	return command.UploadChunkInput{
		UserID:      testUserID,
		FileName:    "song.mp3",
		ChunkIndex:  index,
		TotalChunks: 3,
		Chunk:       strings.NewReader(payload),
	}
}

var testUserID = entity.NewUser("123456789", "jaylen", "").ID

func newTestUser() *entity.User {
	user := entity.NewUser("123456789", "jaylen", "https://cdn.discordapp.com/avatars/123456789/abc.png")
	user.ID = testUserID
	return user
}

func TestUploadChunkCommand_Execute_IntermediateChunk_AcceptsWithoutPublishing(t *testing.T) {
	ctx := context.Background()
	deps := newUploadTestDeps(t)

	cmd := deps.newCommand()
	output, err := cmd.Execute(ctx, newUploadInput(0, "AAA"))

	require.NoError(t, err)
	assert.False(t, output.Completed)
	assert.Empty(t, output.AudioLink)
	assert.True(t, deps.store.FragmentExists("song.mp3", 0))
}

func TestUploadChunkCommand_Execute_FinalChunk_AssemblesAndPublishes(t *testing.T) {
	ctx := context.Background()
	deps := newUploadTestDeps(t)
	user := newTestUser()

	var uploaded string
	deps.objectHost.On("Upload", ctx, mock.Anything, "song.mp3").
		Run(func(args mock.Arguments) {
			data, err := io.ReadAll(args.Get(1).(io.Reader))
			require.NoError(t, err)
			uploaded = string(data)
		}).
		Return(&service.UploadResult{DirectURL: "https://cdn.jaylen.nyc/song.mp3", Size: 9}, nil)

	deps.userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	deps.profileRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(p *entity.UserProfile) bool {
		return p.UserID == user.ID && p.DiscordAvatar == user.AvatarURL
	})).Return(nil)
	deps.audioFileRepo.On("Create", mock.Anything, mock.MatchedBy(func(f *entity.AudioFile) bool {
		return f.OwnerID == user.ID && f.AudioLink == "https://cdn.jaylen.nyc/song.mp3" && !f.Private
	})).Return(nil)

	cmd := deps.newCommand()

	out, err := cmd.Execute(ctx, newUploadInput(0, "AAA"))
	require.NoError(t, err)
	assert.False(t, out.Completed)

	out, err = cmd.Execute(ctx, newUploadInput(1, "BBB"))
	require.NoError(t, err)
	assert.False(t, out.Completed)

	out, err = cmd.Execute(ctx, newUploadInput(2, "CCC"))
	require.NoError(t, err)

	assert.True(t, out.Completed)
	assert.Equal(t, "https://cdn.jaylen.nyc/song.mp3", out.AudioLink)
	assert.Equal(t, "AAABBBCCC", uploaded)

	// 後始末: フラグメントと占有ロックは残らない
	assert.Zero(t, deps.store.CountFragments("song.mp3", 3))
	assert.NoError(t, deps.store.Claim("song.mp3"))
}

func TestUploadChunkCommand_Execute_MissingFragment_ReturnsInternalError(t *testing.T) {
	ctx := context.Background()
	deps := newUploadTestDeps(t)

	cmd := deps.newCommand()

	_, err := cmd.Execute(ctx, newUploadInput(0, "AAA"))
	require.NoError(t, err)

	// index 1を飛ばして最終チャンクを送る
	_, err = cmd.Execute(ctx, newUploadInput(2, "CCC"))
	require.Error(t, err)

	// 欠番はサーバー側の障害として扱い、欠けたフラグメントのパスを明示する
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeInternalError, appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPStatus)
	assert.Contains(t, appErr.Message, "missing chunk file:")
	assert.Contains(t, appErr.Message, ".part1")
}

func TestUploadChunkCommand_Execute_TotalChunksMismatch_ReturnsInvalidRequest(t *testing.T) {
	ctx := context.Background()
	deps := newUploadTestDeps(t)

	cmd := deps.newCommand()

	_, err := cmd.Execute(ctx, newUploadInput(0, "AAA"))
	require.NoError(t, err)

	input := newUploadInput(1, "BBB")
	input.TotalChunks = 5
	_, err = cmd.Execute(ctx, input)
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeInvalidRequest, appErr.Code)
}

func TestUploadChunkCommand_Execute_ValidationErrors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		input command.UploadChunkInput
	}{
		{
			name: "パス区切りを含むファイル名",
			input: command.UploadChunkInput{
				UserID:      testUserID,
				FileName:    "../../etc/passwd",
				ChunkIndex:  0,
				TotalChunks: 1,
				Chunk:       strings.NewReader("x"),
			},
		},
		{
			name: "totalChunksが0",
			input: command.UploadChunkInput{
				UserID:      testUserID,
				FileName:    "song.mp3",
				ChunkIndex:  0,
				TotalChunks: 0,
				Chunk:       strings.NewReader("x"),
			},
		},
		{
			name: "indexが範囲外",
			input: command.UploadChunkInput{
				UserID:      testUserID,
				FileName:    "song.mp3",
				ChunkIndex:  3,
				TotalChunks: 3,
				Chunk:       strings.NewReader("x"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := newUploadTestDeps(t)
			cmd := deps.newCommand()

			_, err := cmd.Execute(ctx, tt.input)
			require.Error(t, err)

			var appErr *apperror.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperror.CodeValidationError, appErr.Code)
		})
	}
}

func TestUploadChunkCommand_Execute_ConcurrentFinalize_ReturnsConflict(t *testing.T) {
	ctx := context.Background()
	deps := newUploadTestDeps(t)

	cmd := deps.newCommand()

	input := command.UploadChunkInput{
		UserID:      testUserID,
		FileName:    "song.mp3",
		ChunkIndex:  0,
		TotalChunks: 1,
		Chunk:       strings.NewReader("AAA"),
	}

	// 別のリクエストが既に占有している状態を作る
	require.NoError(t, deps.store.Claim("song.mp3"))

	_, err := cmd.Execute(ctx, input)
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeConflict, appErr.Code)
}

func TestUploadChunkCommand_Execute_PublishFails_SurfacesUpstreamError(t *testing.T) {
	ctx := context.Background()
	deps := newUploadTestDeps(t)

	deps.objectHost.On("Upload", ctx, mock.Anything, "song.mp3").
		Return(nil, apperror.NewUpstreamError("File type not allowed", nil))

	cmd := deps.newCommand()

	input := command.UploadChunkInput{
		UserID:      testUserID,
		FileName:    "song.mp3",
		ChunkIndex:  0,
		TotalChunks: 1,
		Chunk:       strings.NewReader("AAA"),
	}

	_, err := cmd.Execute(ctx, input)
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeUpstreamError, appErr.Code)
	assert.Equal(t, "File type not allowed", appErr.Message)

	// 失敗しても占有ロックは解放され、再試行できる
	assert.NoError(t, deps.store.Claim("song.mp3"))
}
