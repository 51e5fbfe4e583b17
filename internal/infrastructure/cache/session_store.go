package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/entity"
	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/repository"
)

// ErrSessionNotFound はセッションが見つからないエラーを表します
var ErrSessionNotFound = errors.New("session not found")

// sessionData はRedisに保存するセッションデータを表します（内部用）
type sessionData struct {
	ID         string    `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	UserAgent  string    `json:"user_agent"`
	IPAddress  string    `json:"ip_address"`
	ExpiresAt  time.Time `json:"expires_at"`
	CreatedAt  time.Time `json:"created_at"`
	LastUsedAt time.Time `json:"last_used_at"`
}

// toSessionData はentity.SessionからsessionDataに変換します
func toSessionData(s *entity.Session) *sessionData {
	return &sessionData{
		ID:         s.ID,
		UserID:     s.UserID,
		UserAgent:  s.UserAgent,
		IPAddress:  s.IPAddress,
		ExpiresAt:  s.ExpiresAt,
		CreatedAt:  s.CreatedAt,
		LastUsedAt: s.LastUsedAt,
	}
}

// toEntity はsessionDataからentity.Sessionに変換します
func (d *sessionData) toEntity() *entity.Session {
	return &entity.Session{
		ID:         d.ID,
		UserID:     d.UserID,
		UserAgent:  d.UserAgent,
		IPAddress:  d.IPAddress,
		ExpiresAt:  d.ExpiresAt,
		CreatedAt:  d.CreatedAt,
		LastUsedAt: d.LastUsedAt,
	}
}

// SessionStore はセッションの永続化を提供します
// TTLはセッションの有効期限に連動し、期限切れはRedis側で消えます
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore は新しいSessionStoreを作成します
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client: client,
		ttl:    ttl,
	}
}

// Save はセッションを保存します
func (s *SessionStore) Save(ctx context.Context, session *entity.Session) error {
	data, err := json.Marshal(toSessionData(session))
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	key := SessionKey(session.ID)
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		ttl = s.ttl
	}

	// セッション本体とユーザー別一覧をまとめて更新
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, key, data, ttl)

	userSessionsKey := UserSessionsKey(session.UserID)
	pipe.SAdd(ctx, userSessionsKey, session.ID)
	pipe.Expire(ctx, userSessionsKey, s.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// FindByID はセッションIDでセッションを取得します
func (s *SessionStore) FindByID(ctx context.Context, sessionID string) (*entity.Session, error) {
	key := SessionKey(sessionID)

	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var sd sessionData
	if err := json.Unmarshal(data, &sd); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return sd.toEntity(), nil
}

// Delete はセッションを削除します
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	session, err := s.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil // すでに削除済み
		}
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, SessionKey(sessionID))
	pipe.SRem(ctx, UserSessionsKey(session.UserID), sessionID)

	_, err = pipe.Exec(ctx)
	return err
}

// インターフェースの実装を保証
var _ repository.SessionRepository = (*SessionStore)(nil)
