package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/jvqze/fe2.jaylen.nyc/internal/interface/dto/request"
	"github.com/jvqze/fe2.jaylen.nyc/internal/interface/dto/response"
	"github.com/jvqze/fe2.jaylen.nyc/internal/interface/middleware"
	"github.com/jvqze/fe2.jaylen.nyc/internal/interface/presenter"
	uploadcmd "github.com/jvqze/fe2.jaylen.nyc/internal/usecase/upload/command"
	"github.com/jvqze/fe2.jaylen.nyc/pkg/apperror"
)

// UploadHandler はチャンクアップロードのHTTPハンドラーです
type UploadHandler struct {
	uploadChunkCommand *uploadcmd.UploadChunkCommand
}

// NewUploadHandler は新しいUploadHandlerを作成します
func NewUploadHandler(uploadChunkCommand *uploadcmd.UploadChunkCommand) *UploadHandler {
	return &UploadHandler{uploadChunkCommand: uploadChunkCommand}
}

// UploadChunk はチャンク1件を受け取ります
// 最終チャンクの場合は結合と公開まで同期的に行います
// POST /api/v1/files/upload/chunk
func (h *UploadHandler) UploadChunk(c echo.Context) error {
	userID, err := middleware.GetUserUUID(c)
	if err != nil {
		return apperror.NewUnauthorizedError("authentication required")
	}

	var req request.UploadChunkRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewValidationError("invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	fileHeader, err := c.FormFile("chunk")
	if err != nil {
		return apperror.NewValidationError("chunk part is required", nil)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return apperror.NewInternalError(err)
	}
	defer src.Close()

	output, err := h.uploadChunkCommand.Execute(c.Request().Context(), uploadcmd.UploadChunkInput{
		UserID:      userID,
		FileName:    req.FileName,
		ChunkIndex:  req.ChunkIndex,
		TotalChunks: req.TotalChunks,
		Chunk:       src,
	})
	if err != nil {
		return err
	}

	resp := response.UploadChunkResponse{Completed: output.Completed}
	if output.Completed {
		resp.FileID = output.AudioFile.ID.String()
		resp.AudioLink = output.AudioLink
		return presenter.OKWithMessage(c, resp, "File uploaded successfully")
	}
	return presenter.OK(c, resp)
}
