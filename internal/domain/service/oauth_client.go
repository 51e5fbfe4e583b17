package service

import (
	"context"
)

// OAuthTokens はOAuthプロバイダーから取得したトークンを表します
type OAuthTokens struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int // seconds
}

// OAuthUserInfo はOAuthプロバイダーから取得したユーザー情報を表します
type OAuthUserInfo struct {
	ProviderUserID string
	Username       string
	AvatarURL      string
}

// OAuthClient はOAuthプロバイダーとのやり取りを定義します
type OAuthClient interface {
	// AuthorizeURL は認可画面のURLを組み立てます
	AuthorizeURL(state string) string
	// ExchangeCode は認可コードをトークンに交換します
	ExchangeCode(ctx context.Context, code string) (*OAuthTokens, error)
	// GetUserInfo はアクセストークンでユーザー情報を取得します
	GetUserInfo(ctx context.Context, accessToken string) (*OAuthUserInfo, error)
}
