package request

// UploadChunkRequest はチャンクアップロードリクエストです
// 本体のチャンクデータはmultipartの"chunk"パートで送られます
type UploadChunkRequest struct {
	FileName    string `form:"fileName" validate:"required,filename"`
	ChunkIndex  int    `form:"chunkIndex" validate:"gte=0"`
	TotalChunks int    `form:"totalChunks" validate:"required,gte=1"`
}
