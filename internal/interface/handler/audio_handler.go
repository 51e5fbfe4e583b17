package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/jvqze/fe2.jaylen.nyc/internal/interface/dto/request"
	"github.com/jvqze/fe2.jaylen.nyc/internal/interface/dto/response"
	"github.com/jvqze/fe2.jaylen.nyc/internal/interface/middleware"
	"github.com/jvqze/fe2.jaylen.nyc/internal/interface/presenter"
	audiocmd "github.com/jvqze/fe2.jaylen.nyc/internal/usecase/audio/command"
	audioqry "github.com/jvqze/fe2.jaylen.nyc/internal/usecase/audio/query"
	"github.com/jvqze/fe2.jaylen.nyc/pkg/apperror"
)

// AudioHandler はアップロードレコード関連のHTTPハンドラーです
type AudioHandler struct {
	updateAudioFileCommand *audiocmd.UpdateAudioFileCommand
	listUserFilesQuery     *audioqry.ListUserFilesQuery
	listPublicAudiosQuery  *audioqry.ListPublicAudiosQuery
}

// NewAudioHandler は新しいAudioHandlerを作成します
func NewAudioHandler(
	updateAudioFileCommand *audiocmd.UpdateAudioFileCommand,
	listUserFilesQuery *audioqry.ListUserFilesQuery,
	listPublicAudiosQuery *audioqry.ListPublicAudiosQuery,
) *AudioHandler {
	return &AudioHandler{
		updateAudioFileCommand: updateAudioFileCommand,
		listUserFilesQuery:     listUserFilesQuery,
		listPublicAudiosQuery:  listPublicAudiosQuery,
	}
}

// ListMyFiles はログインユーザー自身のアップロード一覧を取得します
// 非公開のレコードも含まれます
// GET /api/v1/files
func (h *AudioHandler) ListMyFiles(c echo.Context) error {
	userID, err := middleware.GetUserUUID(c)
	if err != nil {
		return apperror.NewUnauthorizedError("authentication required")
	}

	files, err := h.listUserFilesQuery.Execute(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return presenter.OK(c, response.ToAudioFileListResponse(files))
}

// UpdateFile はアップロードのタイトルと公開範囲を更新します
// PATCH /api/v1/files/:id
func (h *AudioHandler) UpdateFile(c echo.Context) error {
	userID, err := middleware.GetUserUUID(c)
	if err != nil {
		return apperror.NewUnauthorizedError("authentication required")
	}

	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperror.NewValidationError("invalid file id", nil)
	}

	var req request.UpdateAudioFileRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewValidationError("invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	file, err := h.updateAudioFileCommand.Execute(c.Request().Context(), audiocmd.UpdateAudioFileInput{
		UserID:  userID,
		FileID:  fileID,
		Title:   req.Title,
		Private: req.Private,
	})
	if err != nil {
		return err
	}

	return presenter.OK(c, response.ToAudioFileResponse(file))
}

// ListPublicAudios は全ユーザー横断の公開フィードを取得します
// GET /api/v1/audios
func (h *AudioHandler) ListPublicAudios(c echo.Context) error {
	audios, err := h.listPublicAudiosQuery.Execute(c.Request().Context())
	if err != nil {
		return err
	}

	return presenter.OK(c, response.ToAudioFileListResponse(audios))
}
