package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// OAuthコールバックのCSRF対策に使う署名付きstateトークン。
// サーバー側に状態を持たず、署名と有効期限だけで検証します。

var (
	ErrInvalidStateToken = errors.New("invalid state token")
	ErrStateTokenExpired = errors.New("state token expired")
)

// Config はstateトークンサービスの設定を定義します
type Config struct {
	SecretKey string
	Issuer    string
	Expiry    time.Duration
}

// StateClaims はstateトークンのクレームを定義します
type StateClaims struct {
	Nonce       string `json:"nonce"`
	RedirectURI string `json:"redirect_uri,omitempty"`
	jwt.RegisteredClaims
}

// StateTokenService はOAuth stateトークンの発行と検証を提供します
type StateTokenService struct {
	config Config
}

// NewStateTokenService は新しいStateTokenServiceを作成します
func NewStateTokenService(config Config) *StateTokenService {
	if config.Expiry <= 0 {
		config.Expiry = 10 * time.Minute
	}
	if config.Issuer == "" {
		config.Issuer = "fe2-api"
	}
	return &StateTokenService{config: config}
}

// Generate は新しいstateトークンを発行します
func (s *StateTokenService) Generate(redirectURI string) (string, error) {
	now := time.Now()
	claims := StateClaims{
		Nonce:       uuid.NewString(),
		RedirectURI: redirectURI,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.Expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign state token: %w", err)
	}
	return signed, nil
}

// Verify はstateトークンを検証し、クレームを返します
func (s *StateTokenService) Verify(tokenString string) (*StateClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &StateClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.config.SecretKey), nil
	}, jwt.WithIssuer(s.config.Issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrStateTokenExpired
		}
		return nil, ErrInvalidStateToken
	}

	claims, ok := token.Claims.(*StateClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidStateToken
	}
	return claims, nil
}
