package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jvqze/fe2.jaylen.nyc/internal/interface/middleware"
)

func newContextHelperTest() echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec)
}

func TestGetUserUUID(t *testing.T) {
	t.Run("認証済みコンテキストからUUIDを取得できる", func(t *testing.T) {
		c := newContextHelperTest()
		want := uuid.New()
		c.Set(middleware.ContextKeyUserID, want.String())

		got, err := middleware.GetUserUUID(c)

		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("未認証コンテキストではエラーを返す", func(t *testing.T) {
		c := newContextHelperTest()

		got, err := middleware.GetUserUUID(c)

		require.Error(t, err)
		assert.ErrorIs(t, err, middleware.ErrNoAuthenticatedUser)
		assert.Equal(t, uuid.Nil, got)
	})

	t.Run("不正なUUID文字列ではエラーを返す", func(t *testing.T) {
		c := newContextHelperTest()
		c.Set(middleware.ContextKeyUserID, "not-a-uuid")

		_, err := middleware.GetUserUUID(c)

		require.Error(t, err)
	})
}
