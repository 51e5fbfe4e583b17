package entity

import (
	"time"

	"github.com/google/uuid"
)

// Badge はプロフィールに付与される称号です
type Badge struct {
	Name      string    `json:"name"`
	Icon      string    `json:"icon,omitempty"`
	AwardedAt time.Time `json:"awarded_at"`
}

// UserProfile は公開プロフィールエンティティを定義します
// ユーザーと1:1で、初回ログインまたは初回アップロード時にupsertされます
type UserProfile struct {
	UserID        uuid.UUID
	DiscordAvatar string
	Badges        []Badge
	CreatedAt     time.Time
}

// NewUserProfile は新しいプロフィールを作成します
func NewUserProfile(userID uuid.UUID, discordAvatar string) *UserProfile {
	return &UserProfile{
		UserID:        userID,
		DiscordAvatar: discordAvatar,
		Badges:        []Badge{},
		CreatedAt:     time.Now(),
	}
}

// ReconstructUserProfile はDBからプロフィールを復元します
func ReconstructUserProfile(
	userID uuid.UUID,
	discordAvatar string,
	badges []Badge,
	createdAt time.Time,
) *UserProfile {
	if badges == nil {
		badges = []Badge{}
	}
	return &UserProfile{
		UserID:        userID,
		DiscordAvatar: discordAvatar,
		Badges:        badges,
		CreatedAt:     createdAt,
	}
}

// AwardBadge はバッジを付与します
func (p *UserProfile) AwardBadge(name, icon string) {
	p.Badges = append(p.Badges, Badge{
		Name:      name,
		Icon:      icon,
		AwardedAt: time.Now(),
	})
}

// HasBadge は指定名のバッジを持っているかを判定します
func (p *UserProfile) HasBadge(name string) bool {
	for _, b := range p.Badges {
		if b.Name == name {
			return true
		}
	}
	return false
}
