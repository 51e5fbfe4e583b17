package middleware

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/repository"
	"github.com/jvqze/fe2.jaylen.nyc/pkg/apperror"
	"github.com/jvqze/fe2.jaylen.nyc/pkg/logger"
)

// SessionCookieName はセッションIDを保持するCookie名です
const SessionCookieName = "session_id"

// SessionAuthMiddleware はセッションベース認証ミドルウェアを提供します
type SessionAuthMiddleware struct {
	sessionRepo repository.SessionRepository
	userRepo    repository.UserRepository
}

// NewSessionAuthMiddleware は新しいSessionAuthMiddlewareを作成します
func NewSessionAuthMiddleware(
	sessionRepo repository.SessionRepository,
	userRepo repository.UserRepository,
) *SessionAuthMiddleware {
	return &SessionAuthMiddleware{
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
	}
}

// Authenticate は認証ミドルウェアを返します
func (m *SessionAuthMiddleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// 1. CookieからセッションIDを取得
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil {
				return apperror.NewUnauthorizedError("session not found")
			}

			// 2. Redisからセッションを取得
			session, err := m.sessionRepo.FindByID(c.Request().Context(), cookie.Value)
			if err != nil {
				return apperror.NewUnauthorizedError("invalid session")
			}

			// 3. セッションの有効期限をチェック
			if session.IsExpired() {
				_ = m.sessionRepo.Delete(c.Request().Context(), session.ID)
				return apperror.NewUnauthorizedError("session expired")
			}

			// 4. ユーザーの存在をチェック
			user, err := m.userRepo.FindByID(c.Request().Context(), session.UserID)
			if err != nil {
				return apperror.NewUnauthorizedError("user not found")
			}

			// 5. セッションをリフレッシュ（スライディングウィンドウ）
			session.Refresh()
			if err := m.sessionRepo.Save(c.Request().Context(), session); err != nil {
				slog.Warn("failed to refresh session", "session_id", session.ID, "error", err)
			}

			// 6. コンテキストにユーザー情報を設定
			c.Set(ContextKeyUserID, user.ID.String())
			c.Set(ContextKeySessionID, session.ID)
			c.Set(ContextKeyUser, user)

			// ログ用にリクエストコンテキストへも引き継ぐ
			ctx := logger.ContextWithUserID(c.Request().Context(), user.ID.String())
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
