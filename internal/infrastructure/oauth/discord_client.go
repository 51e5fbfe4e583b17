package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/service"
)

const (
	discordAuthorizeURL = "https://discord.com/api/oauth2/authorize"
	discordTokenURL     = "https://discord.com/api/oauth2/token"
	discordUserURL      = "https://discord.com/api/users/@me"
	discordCDNBaseURL   = "https://cdn.discordapp.com"
)

// DiscordClient はDiscord OAuth 2.0クライアントの実装です
type DiscordClient struct {
	clientID     string
	clientSecret string
	redirectURL  string
	httpClient   *http.Client
}

// NewDiscordClient は新しいDiscordClientを作成します
func NewDiscordClient(clientID, clientSecret, redirectURL string) *DiscordClient {
	return &DiscordClient{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURL:  redirectURL,
		httpClient:   &http.Client{},
	}
}

// discordTokenResponse はDiscordのトークンレスポンスを表します
type discordTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type"`
	Scope        string `json:"scope"`
}

// discordUserResponse はDiscordのユーザー情報レスポンスを表します
type discordUserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// AuthorizeURL は認可画面のURLを組み立てます
func (c *DiscordClient) AuthorizeURL(state string) string {
	params := url.Values{}
	params.Set("client_id", c.clientID)
	params.Set("redirect_uri", c.redirectURL)
	params.Set("response_type", "code")
	params.Set("scope", "identify")
	params.Set("state", state)
	return discordAuthorizeURL + "?" + params.Encode()
}

// ExchangeCode は認可コードをトークンに交換します
func (c *DiscordClient) ExchangeCode(ctx context.Context, code string) (*service.OAuthTokens, error) {
	data := url.Values{}
	data.Set("code", code)
	data.Set("client_id", c.clientID)
	data.Set("client_secret", c.clientSecret)
	data.Set("redirect_uri", c.redirectURL)
	data.Set("grant_type", "authorization_code")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, discordTokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("discord token exchange failed: status=%d, body=%s", resp.StatusCode, string(body))
	}

	var tokenResp discordTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}

	return &service.OAuthTokens{
		AccessToken:  tokenResp.AccessToken,
		RefreshToken: tokenResp.RefreshToken,
		ExpiresIn:    tokenResp.ExpiresIn,
	}, nil
}

// GetUserInfo はアクセストークンを使用してユーザー情報を取得します
func (c *DiscordClient) GetUserInfo(ctx context.Context, accessToken string) (*service.OAuthUserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, discordUserURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("discord user info failed: status=%d, body=%s", resp.StatusCode, string(body))
	}

	var userResp discordUserResponse
	if err := json.NewDecoder(resp.Body).Decode(&userResp); err != nil {
		return nil, fmt.Errorf("failed to decode user info response: %w", err)
	}

	return &service.OAuthUserInfo{
		ProviderUserID: userResp.ID,
		Username:       userResp.Username,
		AvatarURL:      avatarURL(userResp.ID, userResp.Avatar),
	}, nil
}

// avatarURL はDiscord CDNのアバターURLを導出します
// アバター未設定のユーザーは空文字を返します
func avatarURL(userID, avatarHash string) string {
	if avatarHash == "" {
		return ""
	}
	return fmt.Sprintf("%s/avatars/%s/%s.png", discordCDNBaseURL, userID, avatarHash)
}

// インターフェースの実装を保証
var _ service.OAuthClient = (*DiscordClient)(nil)
