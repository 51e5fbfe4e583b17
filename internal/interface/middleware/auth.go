package middleware

import (
	"errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/entity"
)

// ErrNoAuthenticatedUser はコンテキストに認証済みユーザーが存在しないことを示します
var ErrNoAuthenticatedUser = errors.New("no authenticated user in context")

const (
	ContextKeyUserID    = "user_id"
	ContextKeySessionID = "session_id"
	ContextKeyUser      = "user"
)

// GetUserID はコンテキストからユーザーIDを取得します
func GetUserID(c echo.Context) string {
	if id, ok := c.Get(ContextKeyUserID).(string); ok {
		return id
	}
	return ""
}

// GetUserUUID はコンテキストからユーザーIDをUUIDとして取得します
// 未認証の場合はErrNoAuthenticatedUserを返します
func GetUserUUID(c echo.Context) (uuid.UUID, error) {
	userID := GetUserID(c)
	if userID == "" {
		return uuid.Nil, ErrNoAuthenticatedUser
	}
	return uuid.Parse(userID)
}

// GetSessionID はコンテキストからセッションIDを取得します
func GetSessionID(c echo.Context) string {
	if id, ok := c.Get(ContextKeySessionID).(string); ok {
		return id
	}
	return ""
}

// GetUser はコンテキストからユーザーを取得します
func GetUser(c echo.Context) *entity.User {
	if user, ok := c.Get(ContextKeyUser).(*entity.User); ok {
		return user
	}
	return nil
}
