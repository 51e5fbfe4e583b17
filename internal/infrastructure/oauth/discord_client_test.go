package oauth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiscordClient_AuthorizeURL(t *testing.T) {
	client := NewDiscordClient("client-id", "client-secret", "https://app.example.com/auth/callback/discord")

	got := client.AuthorizeURL("state-token")

	assert.Contains(t, got, discordAuthorizeURL+"?")
	assert.Contains(t, got, "client_id=client-id")
	assert.Contains(t, got, "response_type=code")
	assert.Contains(t, got, "scope=identify")
	assert.Contains(t, got, "state=state-token")
	assert.NotContains(t, got, "client-secret")
}

func TestAvatarURL(t *testing.T) {
	assert.Equal(t,
		"https://cdn.discordapp.com/avatars/123456789/abcdef.png",
		avatarURL("123456789", "abcdef"),
	)
	assert.Empty(t, avatarURL("123456789", ""))
}
