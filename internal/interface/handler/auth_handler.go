package handler

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jvqze/fe2.jaylen.nyc/internal/interface/dto/response"
	"github.com/jvqze/fe2.jaylen.nyc/internal/interface/middleware"
	"github.com/jvqze/fe2.jaylen.nyc/internal/interface/presenter"
	authcmd "github.com/jvqze/fe2.jaylen.nyc/internal/usecase/auth/command"
	authqry "github.com/jvqze/fe2.jaylen.nyc/internal/usecase/auth/query"
	"github.com/jvqze/fe2.jaylen.nyc/pkg/apperror"
	"github.com/jvqze/fe2.jaylen.nyc/pkg/jwt"
)

// AuthHandler はDiscord OAuth認証関連のHTTPハンドラーです
type AuthHandler struct {
	oauthLoginCommand *authcmd.OAuthLoginCommand
	logoutCommand     *authcmd.LogoutCommand
	getMeQuery        *authqry.GetMeQuery
	oauthClient       authorizeURLBuilder
	stateTokens       *jwt.StateTokenService
	appURL            string
	secureCookies     bool
}

// authorizeURLBuilder は認可URLの組み立てだけを要求します
type authorizeURLBuilder interface {
	AuthorizeURL(state string) string
}

// NewAuthHandler は新しいAuthHandlerを作成します
func NewAuthHandler(
	oauthLoginCommand *authcmd.OAuthLoginCommand,
	logoutCommand *authcmd.LogoutCommand,
	getMeQuery *authqry.GetMeQuery,
	oauthClient authorizeURLBuilder,
	stateTokens *jwt.StateTokenService,
	appURL string,
	secureCookies bool,
) *AuthHandler {
	return &AuthHandler{
		oauthLoginCommand: oauthLoginCommand,
		logoutCommand:     logoutCommand,
		getMeQuery:        getMeQuery,
		oauthClient:       oauthClient,
		stateTokens:       stateTokens,
		appURL:            appURL,
		secureCookies:     secureCookies,
	}
}

// Login はDiscord認可画面のURLを返します
// GET /api/v1/auth/discord/login
func (h *AuthHandler) Login(c echo.Context) error {
	redirectURI := c.QueryParam("redirect")
	if !h.isAllowedRedirect(redirectURI) {
		return apperror.NewInvalidRequestError("redirect must stay on the application origin")
	}

	state, err := h.stateTokens.Generate(redirectURI)
	if err != nil {
		return apperror.NewInternalError(err)
	}

	return presenter.OK(c, response.AuthURLResponse{
		AuthURL: h.oauthClient.AuthorizeURL(state),
	})
}

// Callback はDiscordからの認可コールバックを処理します
// GET /api/v1/auth/discord/callback
func (h *AuthHandler) Callback(c echo.Context) error {
	code := c.QueryParam("code")
	if code == "" {
		return apperror.NewValidationError("code is required", nil)
	}

	claims, err := h.stateTokens.Verify(c.QueryParam("state"))
	if err != nil {
		return apperror.NewUnauthorizedError("invalid or expired state")
	}

	output, err := h.oauthLoginCommand.Execute(c.Request().Context(), authcmd.OAuthLoginInput{
		Code:      code,
		UserAgent: c.Request().UserAgent(),
		IPAddress: c.RealIP(),
	})
	if err != nil {
		return err
	}

	h.setSessionCookie(c, output.SessionID, output.ExpiresAt)

	// 発行時にも検証済みだが、リダイレクト直前にもオリジンを確認する
	redirect := h.appURL
	if claims.RedirectURI != "" && h.isAllowedRedirect(claims.RedirectURI) {
		redirect = claims.RedirectURI
	}
	return c.Redirect(http.StatusTemporaryRedirect, redirect)
}

// isAllowedRedirect はリダイレクト先がアプリと同一オリジンかどうかを判定します
// 空文字はアプリURLへのフォールバックとして許可します
func (h *AuthHandler) isAllowedRedirect(raw string) bool {
	if raw == "" {
		return true
	}
	target, err := url.Parse(raw)
	if err != nil {
		return false
	}
	// 相対パスはアプリ内の遷移として許可する
	// スキーム相対URLや、ブラウザがスラッシュ扱いするバックスラッシュは不可
	if target.Scheme == "" && target.Host == "" {
		return strings.HasPrefix(target.Path, "/") && !strings.Contains(raw, "\\")
	}
	app, err := url.Parse(h.appURL)
	if err != nil {
		return false
	}
	return target.Scheme == app.Scheme && target.Host == app.Host
}

// Logout はログアウトを処理します
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c echo.Context) error {
	if sessionID := middleware.GetSessionID(c); sessionID != "" {
		// セッション削除の失敗はCookie無効化で十分なので握りつぶす
		_ = h.logoutCommand.Execute(c.Request().Context(), sessionID)
	}

	h.clearSessionCookie(c)

	return presenter.OKWithMessage(c, nil, "logged out successfully")
}

// Me は現在のユーザー情報を取得します
// GET /api/v1/me
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := middleware.GetUserUUID(c)
	if err != nil {
		return apperror.NewUnauthorizedError("authentication required")
	}

	user, err := h.getMeQuery.Execute(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return presenter.OK(c, response.ToUserResponse(user))
}

func (h *AuthHandler) setSessionCookie(c echo.Context, sessionID string, expiresAt time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
