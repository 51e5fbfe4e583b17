package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateTokenService_GenerateAndVerify(t *testing.T) {
	svc := NewStateTokenService(Config{
		SecretKey: "test-secret",
		Expiry:    time.Minute,
	})

	token, err := svc.Generate("/studio/audio")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.NotEmpty(t, claims.Nonce)
	assert.Equal(t, "/studio/audio", claims.RedirectURI)
}

func TestStateTokenService_Verify_Expired(t *testing.T) {
	svc := NewStateTokenService(Config{
		SecretKey: "test-secret",
		Expiry:    -time.Minute,
	})

	// Expiryが負でもコンストラクタがデフォルトに戻すため、直接設定する
	svc.config.Expiry = -time.Minute

	token, err := svc.Generate("")
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrStateTokenExpired)
}

func TestStateTokenService_Verify_WrongSecret(t *testing.T) {
	issuer := NewStateTokenService(Config{SecretKey: "secret-a", Expiry: time.Minute})
	verifier := NewStateTokenService(Config{SecretKey: "secret-b", Expiry: time.Minute})

	token, err := issuer.Generate("")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidStateToken)
}

func TestStateTokenService_Verify_Garbage(t *testing.T) {
	svc := NewStateTokenService(Config{SecretKey: "test-secret"})

	_, err := svc.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidStateToken)
}
