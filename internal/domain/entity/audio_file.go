package entity

import (
	"time"

	"github.com/google/uuid"
)

// AudioFile は公開済みアップロード1件の永続レコードです
// 公開が成功したアップロードにつき、ちょうど1件だけ作成されます
// このサブシステムから削除されることはありません
type AudioFile struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	AudioLink string  // オブジェクトホストが返した公開URL
	Title     *string // 任意（アップロード直後はnil）
	Private   bool
	CreatedAt time.Time
}

// NewAudioFile は新しいアップロードレコードを作成します
func NewAudioFile(ownerID uuid.UUID, audioLink string) *AudioFile {
	return &AudioFile{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		AudioLink: audioLink,
		Title:     nil,
		Private:   false,
		CreatedAt: time.Now(),
	}
}

// ReconstructAudioFile はDBからアップロードレコードを復元します
func ReconstructAudioFile(
	id uuid.UUID,
	ownerID uuid.UUID,
	audioLink string,
	title *string,
	private bool,
	createdAt time.Time,
) *AudioFile {
	return &AudioFile{
		ID:        id,
		OwnerID:   ownerID,
		AudioLink: audioLink,
		Title:     title,
		Private:   private,
		CreatedAt: createdAt,
	}
}

// SetTitle はタイトルを設定します
func (a *AudioFile) SetTitle(title string) {
	if title == "" {
		a.Title = nil
		return
	}
	a.Title = &title
}

// SetPrivate は公開範囲を設定します
func (a *AudioFile) SetPrivate(private bool) {
	a.Private = private
}

// IsOwnedBy は指定ユーザーが所有者かどうかを判定します
func (a *AudioFile) IsOwnedBy(userID uuid.UUID) bool {
	return a.OwnerID == userID
}
