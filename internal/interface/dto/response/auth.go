package response

import (
	"time"

	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/entity"
)

// AuthURLResponse はDiscord認可URLのレスポンスです
type AuthURLResponse struct {
	AuthURL string `json:"authUrl"`
}

// UserResponse はログインユーザーのレスポンスです
type UserResponse struct {
	ID        string    `json:"id"`
	DiscordID string    `json:"discordId"`
	Username  string    `json:"username"`
	AvatarURL string    `json:"avatarUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToUserResponse はエンティティからレスポンスに変換します
func ToUserResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		DiscordID: user.DiscordID,
		Username:  user.Username,
		AvatarURL: user.AvatarURL,
		CreatedAt: user.CreatedAt,
	}
}
