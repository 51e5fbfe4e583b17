package entity

import (
	"time"

	"github.com/google/uuid"
)

// User はDiscord OAuthでログインしたユーザーエンティティを定義します
// 初回ログイン時に作成され、以後のログインでプロフィール情報が更新されます
type User struct {
	ID        uuid.UUID
	DiscordID string // Discord上のユーザーID（snowflake、一意）
	Username  string
	AvatarURL string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser は新しいユーザーを作成します
func NewUser(discordID, username, avatarURL string) *User {
	now := time.Now()
	return &User{
		ID:        uuid.New(),
		DiscordID: discordID,
		Username:  username,
		AvatarURL: avatarURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ReconstructUser はDBからユーザーを復元します
func ReconstructUser(
	id uuid.UUID,
	discordID string,
	username string,
	avatarURL string,
	createdAt time.Time,
	updatedAt time.Time,
) *User {
	return &User{
		ID:        id,
		DiscordID: discordID,
		Username:  username,
		AvatarURL: avatarURL,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// UpdateIdentity はログイン時にDiscordから取得した最新情報を反映します
func (u *User) UpdateIdentity(username, avatarURL string) {
	u.Username = username
	u.AvatarURL = avatarURL
	u.UpdatedAt = time.Now()
}
