package entity

import (
	"errors"
	"time"

	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/valueobject"
)

// チャンクアップロードステータス
type ChunkUploadStatus string

const (
	ChunkUploadStatusAwaiting   ChunkUploadStatus = "awaiting"
	ChunkUploadStatusFinalizing ChunkUploadStatus = "finalizing"
	ChunkUploadStatusComplete   ChunkUploadStatus = "complete"
	ChunkUploadStatusFailed     ChunkUploadStatus = "failed"
)

// チャンクアップロード関連エラー
var (
	ErrInvalidTotalChunks     = errors.New("total chunks must be positive")
	ErrChunkIndexOutOfRange   = errors.New("chunk index out of range")
	ErrTotalChunksMismatch    = errors.New("total chunks does not match previously declared value")
	ErrChunkUploadNotAwaiting = errors.New("chunk upload is not accepting fragments")
	ErrChunkUploadFinalized   = errors.New("chunk upload already finalized")
)

// ChunkUpload は1つの論理アップロード（uploadName単位）の状態レコードです
// 永続化はされず、ディスク上のフラグメントの有無から都度再構築されます
// 状態遷移: awaiting -> finalizing -> complete / failed
type ChunkUpload struct {
	Name        valueobject.FileName
	TotalChunks int
	Received    int // ディスク上で観測されたフラグメント数
	Status      ChunkUploadStatus
	UpdatedAt   time.Time
}

// NewChunkUpload は新しいチャンクアップロード状態を作成します
func NewChunkUpload(name valueobject.FileName, totalChunks int) (*ChunkUpload, error) {
	if totalChunks <= 0 {
		return nil, ErrInvalidTotalChunks
	}
	return &ChunkUpload{
		Name:        name,
		TotalChunks: totalChunks,
		Received:    0,
		Status:      ChunkUploadStatusAwaiting,
		UpdatedAt:   time.Now(),
	}, nil
}

// ValidateIndex はフラグメントインデックスの範囲を検証します
func (cu *ChunkUpload) ValidateIndex(index int) error {
	if index < 0 || index >= cu.TotalChunks {
		return ErrChunkIndexOutOfRange
	}
	return nil
}

// RecordFragment はフラグメントの受領を記録します
func (cu *ChunkUpload) RecordFragment(index int) error {
	if cu.Status != ChunkUploadStatusAwaiting {
		return ErrChunkUploadNotAwaiting
	}
	if err := cu.ValidateIndex(index); err != nil {
		return err
	}
	cu.Received++
	cu.UpdatedAt = time.Now()
	return nil
}

// IsFinalIndex は最終フラグメントのインデックスかどうかを判定します
// 受領済み数ではなく宣言インデックスで判定します（呼び出し側の送信順を信頼）
func (cu *ChunkUpload) IsFinalIndex(index int) bool {
	return index == cu.TotalChunks-1
}

// BeginFinalize は結合フェーズへ遷移します
func (cu *ChunkUpload) BeginFinalize() error {
	if cu.Status == ChunkUploadStatusComplete || cu.Status == ChunkUploadStatusFailed {
		return ErrChunkUploadFinalized
	}
	if cu.Status != ChunkUploadStatusAwaiting {
		return ErrChunkUploadNotAwaiting
	}
	cu.Status = ChunkUploadStatusFinalizing
	cu.UpdatedAt = time.Now()
	return nil
}

// Complete はアップロードを完了状態にします（終端）
func (cu *ChunkUpload) Complete() error {
	if cu.Status != ChunkUploadStatusFinalizing {
		return ErrChunkUploadNotAwaiting
	}
	cu.Status = ChunkUploadStatusComplete
	cu.UpdatedAt = time.Now()
	return nil
}

// Fail はアップロードを失敗状態にします（終端）
// 書きかけのフラグメントの掃除はバックグラウンドスイープに委ねます
func (cu *ChunkUpload) Fail() {
	cu.Status = ChunkUploadStatusFailed
	cu.UpdatedAt = time.Now()
}

// IsComplete は完了済みかどうかを判定します
func (cu *ChunkUpload) IsComplete() bool {
	return cu.Status == ChunkUploadStatusComplete
}
