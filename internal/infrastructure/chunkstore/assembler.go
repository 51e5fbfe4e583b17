package chunkstore

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/service"
)

// Assembler はフラグメント列を1つのファイルへ結合します
// index順に1フラグメントずつストリームするため、メモリ使用量は
// ファイル全体ではなく1フラグメント分に抑えられます
type Assembler struct {
	dir   string
	store service.ChunkStore
}

// NewAssembler は新しいAssemblerを作成します
func NewAssembler(dir string, store service.ChunkStore) *Assembler {
	return &Assembler{dir: dir, store: store}
}

// Assemble はindex 0..total-1を昇順で結合済みファイルへ書き出します
// 欠落フラグメントを検出した場合は書きかけの結合ファイルを破棄して
// 中断します。成功時は各フラグメントを削除し、フラッシュ・クローズ
// 済みのファイルパスを返します
func (a *Assembler) Assemble(name string, total int) (string, error) {
	finalPath := filepath.Join(a.dir, name)

	out, err := os.Create(finalPath)
	if err != nil {
		return "", fmt.Errorf("failed to create assembled file %s: %w", finalPath, err)
	}

	for i := 0; i < total; i++ {
		rc, err := a.store.Open(name, i)
		if err != nil {
			out.Close()
			os.Remove(finalPath)
			return "", err
		}

		if _, err := io.Copy(out, rc); err != nil {
			rc.Close()
			out.Close()
			os.Remove(finalPath)
			return "", fmt.Errorf("failed to append fragment %d of %s: %w", i, name, err)
		}
		rc.Close()

		// 取り込み済みフラグメントはその場で削除する
		a.store.Delete(name, i)
	}

	// 公開前に必ず書き切ってから閉じる。読みと書きを重ねない
	if err := out.Sync(); err != nil {
		out.Close()
		return "", fmt.Errorf("failed to flush assembled file %s: %w", finalPath, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("failed to close assembled file %s: %w", finalPath, err)
	}

	return finalPath, nil
}

// RemoveAssembled は結合済みファイルを削除します（ベストエフォート）
func (a *Assembler) RemoveAssembled(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to delete assembled file", "path", path, "error", err)
	}
}

// インターフェースの実装を保証
var _ service.ChunkAssembler = (*Assembler)(nil)
