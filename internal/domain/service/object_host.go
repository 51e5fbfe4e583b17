package service

import (
	"context"
	"io"
)

// UploadResult はリモートオブジェクトホストが返す公開結果を表します
type UploadResult struct {
	DirectURL   string // 安定した直リンクURL
	DeletionURL string // ホストが返す場合のみ
	Size        int64
}

// ObjectHost はリモートオブジェクトホストへの公開を定義します
// 1回の呼び出しにつき外部への送信はちょうど1回で、内部リトライは行いません
// 再送の判断は呼び出し元に委ねます
type ObjectHost interface {
	Upload(ctx context.Context, r io.Reader, name string) (*UploadResult, error)
}
