package response

import (
	"time"

	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/entity"
)

// AudioFileResponse はアップロードレコードのレスポンスです
type AudioFileResponse struct {
	ID        string    `json:"id"`
	AudioLink string    `json:"audioLink"`
	Title     *string   `json:"title"`
	Private   bool      `json:"private"`
	CreatedAt time.Time `json:"createdAt"`
}

// UploadChunkResponse はチャンクアップロードのレスポンスです
// 最終チャンク以外ではCompletedがfalseになります
type UploadChunkResponse struct {
	Completed bool   `json:"completed"`
	FileID    string `json:"fileId,omitempty"`
	AudioLink string `json:"audioLink,omitempty"`
}

// ToAudioFileResponse はエンティティからレスポンスに変換します
func ToAudioFileResponse(file *entity.AudioFile) AudioFileResponse {
	return AudioFileResponse{
		ID:        file.ID.String(),
		AudioLink: file.AudioLink,
		Title:     file.Title,
		Private:   file.Private,
		CreatedAt: file.CreatedAt,
	}
}

// ToAudioFileListResponse はエンティティリストからレスポンスリストに変換します
func ToAudioFileListResponse(files []*entity.AudioFile) []AudioFileResponse {
	responses := make([]AudioFileResponse, len(files))
	for i, f := range files {
		responses[i] = ToAudioFileResponse(f)
	}
	return responses
}
