package entity

import (
	"time"

	"github.com/google/uuid"
)

// SessionTTL はセッションのデフォルト有効期限
const SessionTTL = 7 * 24 * time.Hour

// Session はセッションエンティティを定義します
type Session struct {
	ID         string
	UserID     uuid.UUID
	UserAgent  string
	IPAddress  string
	ExpiresAt  time.Time
	CreatedAt  time.Time
	LastUsedAt time.Time
}

// NewSession は新しいセッションを作成します
func NewSession(id string, userID uuid.UUID, userAgent, ipAddress string) *Session {
	now := time.Now()
	return &Session{
		ID:         id,
		UserID:     userID,
		UserAgent:  userAgent,
		IPAddress:  ipAddress,
		ExpiresAt:  now.Add(SessionTTL),
		CreatedAt:  now,
		LastUsedAt: now,
	}
}

// IsExpired はセッションが期限切れかを判定します
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Refresh はセッションの有効期限を延長します（スライディングウィンドウ）
func (s *Session) Refresh() {
	s.LastUsedAt = time.Now()
	s.ExpiresAt = time.Now().Add(SessionTTL)
}
