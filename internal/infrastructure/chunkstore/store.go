package chunkstore

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/entity"
	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/service"
	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/valueobject"
)

// ディスク上のレイアウト:
//
//	{dir}/{name}.part{index}  フラグメント
//	{dir}/{name}.meta         宣言されたtotalChunks（最初の書き込みで確定）
//	{dir}/{name}.assembling   結合の占有ロック（O_EXCLで作成）
//	{dir}/{name}              結合済みファイル（公開まで一時的に存在）
const (
	partSuffixFormat = "%s.part%d"
	metaSuffix       = ".meta"
	lockSuffix       = ".assembling"
)

// Store はフラグメントのディスク保存領域です
// ディレクトリは起動時に一度作成され、プロセス終了まで破棄されません
type Store struct {
	dir string
}

// NewStore は新しいStoreを作成します
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir は一時ディレクトリのパスを返します
func (s *Store) Dir() string {
	return s.dir
}

// EnsureReady は一時ディレクトリを冪等に作成します
func (s *Store) EnsureReady() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create chunks directory: %w", err)
	}
	return nil
}

// Put はフラグメントを (name, index) のパスへ書き込みます
// 同一キーへの再投入は上書きです。totalの一貫性もここで検証します
func (s *Store) Put(name string, index, total int, r io.Reader) error {
	if _, err := valueobject.NewFileName(name); err != nil {
		return err
	}
	if total <= 0 {
		return entity.ErrInvalidTotalChunks
	}
	if index < 0 || index >= total {
		return entity.ErrChunkIndexOutOfRange
	}

	if err := s.checkOrWriteMeta(name, total); err != nil {
		return err
	}

	path := s.fragmentPath(name, index)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create fragment %s: %w", path, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("failed to write fragment %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close fragment %s: %w", path, err)
	}
	return nil
}

// Open はフラグメントを読み取り用に開きます
// 欠落はindexとパスを含むMissingFragmentErrorになります
func (s *Store) Open(name string, index int) (io.ReadCloser, error) {
	path := s.fragmentPath(name, index)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &service.MissingFragmentError{Index: index, Path: path}
		}
		return nil, fmt.Errorf("failed to open fragment %s: %w", path, err)
	}
	return f, nil
}

// Delete はフラグメントを削除します（ベストエフォート）
func (s *Store) Delete(name string, index int) {
	path := s.fragmentPath(name, index)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to delete fragment", "path", path, "error", err)
	}
}

// Claim は結合開始前の占有ロックを取得します
// O_EXCLによりアトミックで、二重結合・二重公開を防ぎます
func (s *Store) Claim(name string) error {
	path := s.lockPath(name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return service.ErrAlreadyFinalizing
		}
		return fmt.Errorf("failed to claim upload %s: %w", name, err)
	}
	return f.Close()
}

// Release は占有ロックを解放します
func (s *Store) Release(name string) {
	path := s.lockPath(name)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to release upload claim", "path", path, "error", err)
	}
}

// RemoveMeta はマニフェストを削除します（結合完了後の後始末用）
func (s *Store) RemoveMeta(name string) {
	path := s.metaPath(name)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to delete upload manifest", "path", path, "error", err)
	}
}

// SweepStale はolderThanより古い残存エントリを削除します
// 放棄されたシーケンスのフラグメント・マニフェスト・ロック・結合済み
// ファイルが対象です。進行中のアップロードは更新時刻が新しいため残ります
func (s *Store) SweepStale(olderThan time.Time) (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read chunks directory: %w", err)
	}

	removed := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if !info.ModTime().Before(olderThan) {
			continue
		}
		path := filepath.Join(s.dir, e.Name())
		if err := os.Remove(path); err != nil {
			slog.Warn("failed to sweep stale entry", "path", path, "error", err)
			continue
		}
		removed++
	}
	return removed, nil
}

// checkOrWriteMeta はtotalChunksのマニフェストを初回書き込みで確定し、
// 以後の宣言値が一致することを検証します
func (s *Store) checkOrWriteMeta(name string, total int) error {
	path := s.metaPath(name)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err == nil {
		_, werr := f.WriteString(strconv.Itoa(total))
		cerr := f.Close()
		if werr != nil {
			return fmt.Errorf("failed to write manifest %s: %w", path, werr)
		}
		return cerr
	}
	if !os.IsExist(err) {
		return fmt.Errorf("failed to create manifest %s: %w", path, err)
	}

	// 既にマニフェストがある場合は宣言値の一致を検証する
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	declared, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return fmt.Errorf("corrupt manifest %s: %w", path, err)
	}
	if declared != total {
		return entity.ErrTotalChunksMismatch
	}
	return nil
}

func (s *Store) fragmentPath(name string, index int) string {
	return filepath.Join(s.dir, fmt.Sprintf(partSuffixFormat, name, index))
}

func (s *Store) metaPath(name string) string {
	return filepath.Join(s.dir, name+metaSuffix)
}

func (s *Store) lockPath(name string) string {
	return filepath.Join(s.dir, name+lockSuffix)
}

// FragmentExists はフラグメントの有無を返します（状態復元用）
func (s *Store) FragmentExists(name string, index int) bool {
	_, err := os.Stat(s.fragmentPath(name, index))
	return err == nil
}

// CountFragments はディスク上で観測できるフラグメント数を返します
func (s *Store) CountFragments(name string, total int) int {
	count := 0
	for i := 0; i < total; i++ {
		if s.FragmentExists(name, i) {
			count++
		}
	}
	return count
}

// インターフェースの実装を保証
var _ service.ChunkStore = (*Store)(nil)
