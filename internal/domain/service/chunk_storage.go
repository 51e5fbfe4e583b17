package service

import (
	"errors"
	"fmt"
	"io"
	"time"
)

// チャンク保存領域関連エラー
var (
	ErrFragmentMissing   = errors.New("fragment missing")
	ErrAlreadyFinalizing = errors.New("upload is already being finalized")
)

// MissingFragmentError は結合時に検出したフラグメント欠落を表します
// 欠落したindexとパスを保持し、そのまま呼び出し元に報告されます
type MissingFragmentError struct {
	Index int
	Path  string
}

func (e *MissingFragmentError) Error() string {
	return fmt.Sprintf("missing chunk file: %s (index %d)", e.Path, e.Index)
}

func (e *MissingFragmentError) Unwrap() error {
	return ErrFragmentMissing
}

// ChunkStore はフラグメントの一時保存領域を定義します
// キーは (uploadName, index) で、同一キーへの再投入は上書きになります
type ChunkStore interface {
	// EnsureReady は一時ディレクトリを冪等に作成します
	// 並行呼び出しに対して安全で、既存ディレクトリはエラーになりません
	EnsureReady() error
	// Put はフラグメントを書き込みます。初回書き込み時にtotalを記録し、
	// 以後のフラグメントが異なるtotalを宣言した場合は失敗します
	Put(name string, index, total int, r io.Reader) error
	// Open はフラグメントを読み取り用に開きます。欠落はErrFragmentMissingです
	Open(name string, index int) (io.ReadCloser, error)
	// Delete はフラグメントを削除します。失敗はログに残すだけの
	// ベストエフォートとし、エラーは返しません
	Delete(name string, index int)
	// Claim は結合開始前のアトミックな占有を取得します
	// 既に占有されている場合はErrAlreadyFinalizingを返します
	Claim(name string) error
	// Release はClaimで取得した占有を解放します
	Release(name string)
	// RemoveMeta は記録済みのtotalを破棄します（結合完了後の後始末用）
	RemoveMeta(name string)
	// SweepStale は指定時刻より古い残存エントリを削除し、件数を返します
	SweepStale(olderThan time.Time) (int, error)
}

// ChunkAssembler はフラグメント列を1つのファイルへ結合します
type ChunkAssembler interface {
	// Assemble はindex 0..total-1を昇順で結合し、結合済みファイルの
	// パスを返します。欠落があれば該当indexとパスを含むエラーで中断します
	Assemble(name string, total int) (string, error)
	// RemoveAssembled は結合済みファイルを削除します（ベストエフォート）
	RemoveAssembled(path string)
}
