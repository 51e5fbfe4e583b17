package request

// UpdateAudioFileRequest はアップロードメタデータ更新リクエストです
// nilのフィールドは変更されません
type UpdateAudioFileRequest struct {
	Title   *string `json:"title" validate:"omitempty,max=255"`
	Private *bool   `json:"private"`
}
