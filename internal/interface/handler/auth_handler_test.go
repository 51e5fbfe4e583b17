package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jvqze/fe2.jaylen.nyc/pkg/apperror"
	"github.com/jvqze/fe2.jaylen.nyc/pkg/jwt"
)

type stubAuthorizeURLBuilder struct{}

func (stubAuthorizeURLBuilder) AuthorizeURL(state string) string {
	return "https://discord.com/oauth2/authorize?state=" + state
}

func newTestAuthHandler(t *testing.T) *AuthHandler {
	t.Helper()
	stateTokens := jwt.NewStateTokenService(jwt.Config{
		SecretKey: "test-state-secret",
		Issuer:    "fe2-api",
		Expiry:    time.Minute,
	})
	return NewAuthHandler(nil, nil, nil, stubAuthorizeURLBuilder{}, stateTokens, "https://fe2.jaylen.nyc", false)
}

func newLoginContext(target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login(t *testing.T) {
	h := newTestAuthHandler(t)

	t.Run("redirect未指定なら認可URLを返す", func(t *testing.T) {
		c, rec := newLoginContext("/api/v1/auth/discord/login")

		require.NoError(t, h.Login(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		var body struct {
			Data struct {
				AuthURL string `json:"authUrl"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Contains(t, body.Data.AuthURL, "https://discord.com/oauth2/authorize?state=")
	})

	t.Run("同一オリジンのredirectは受理する", func(t *testing.T) {
		c, rec := newLoginContext("/api/v1/auth/discord/login?redirect=https%3A%2F%2Ffe2.jaylen.nyc%2Fprofile")

		require.NoError(t, h.Login(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("別オリジンのredirectは拒否する", func(t *testing.T) {
		c, _ := newLoginContext("/api/v1/auth/discord/login?redirect=https%3A%2F%2Fevil.example%2Fphish")

		err := h.Login(c)

		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeInvalidRequest, appErr.Code)
	})
}

func TestAuthHandler_IsAllowedRedirect(t *testing.T) {
	h := newTestAuthHandler(t)

	tests := []struct {
		name     string
		redirect string
		want     bool
	}{
		{"空文字はアプリURLへのフォールバック", "", true},
		{"同一オリジンの絶対URL", "https://fe2.jaylen.nyc/audios", true},
		{"アプリ内の相対パス", "/profiles/123", true},
		{"別オリジン", "https://evil.example/phish", false},
		{"別スキーム", "http://fe2.jaylen.nyc/audios", false},
		{"スキーム相対URL", "//evil.example/phish", false},
		{"バックスラッシュによるオリジン偽装", `/\evil.example`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, h.isAllowedRedirect(tt.redirect))
		})
	}
}
