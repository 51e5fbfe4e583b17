package response

import (
	"time"

	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/entity"
	profileqry "github.com/jvqze/fe2.jaylen.nyc/internal/usecase/profile/query"
)

// BadgeResponse はプロフィールバッジのレスポンスです
type BadgeResponse struct {
	Name      string    `json:"name"`
	Icon      string    `json:"icon,omitempty"`
	AwardedAt time.Time `json:"awardedAt"`
}

// ProfileResponse は公開プロフィールのレスポンスです
type ProfileResponse struct {
	DiscordID     string              `json:"discordId"`
	Username      string              `json:"username"`
	DiscordAvatar string              `json:"discordAvatar"`
	Badges        []BadgeResponse     `json:"badges"`
	CreatedAt     time.Time           `json:"createdAt"`
	Uploads       []AudioFileResponse `json:"uploads"`
}

// ProfileSummaryResponse はプロフィール一覧の1エントリのレスポンスです
type ProfileSummaryResponse struct {
	DiscordID     string          `json:"discordId"`
	Username      string          `json:"username"`
	DiscordAvatar string          `json:"discordAvatar"`
	Badges        []BadgeResponse `json:"badges"`
}

// ToBadgeListResponse はバッジリストからレスポンスリストに変換します
func ToBadgeListResponse(badges []entity.Badge) []BadgeResponse {
	return toBadgeResponses(badges)
}

func toBadgeResponses(badges []entity.Badge) []BadgeResponse {
	responses := make([]BadgeResponse, len(badges))
	for i, b := range badges {
		responses[i] = BadgeResponse{
			Name:      b.Name,
			Icon:      b.Icon,
			AwardedAt: b.AwardedAt,
		}
	}
	return responses
}

// ToProfileResponse はUseCaseの出力からレスポンスに変換します
func ToProfileResponse(output *profileqry.GetProfileOutput) ProfileResponse {
	return ProfileResponse{
		DiscordID:     output.User.DiscordID,
		Username:      output.User.Username,
		DiscordAvatar: output.Profile.DiscordAvatar,
		Badges:        toBadgeResponses(output.Profile.Badges),
		CreatedAt:     output.Profile.CreatedAt,
		Uploads:       ToAudioFileListResponse(output.Uploads),
	}
}

// ToProfileListResponse はUseCaseの出力からレスポンスリストに変換します
func ToProfileListResponse(summaries []profileqry.ProfileSummary) []ProfileSummaryResponse {
	responses := make([]ProfileSummaryResponse, len(summaries))
	for i, s := range summaries {
		responses[i] = ProfileSummaryResponse{
			DiscordID:     s.User.DiscordID,
			Username:      s.User.Username,
			DiscordAvatar: s.Profile.DiscordAvatar,
			Badges:        toBadgeResponses(s.Profile.Badges),
		}
	}
	return responses
}
