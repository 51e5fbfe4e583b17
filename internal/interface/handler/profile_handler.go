package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/jvqze/fe2.jaylen.nyc/internal/interface/dto/request"
	"github.com/jvqze/fe2.jaylen.nyc/internal/interface/dto/response"
	"github.com/jvqze/fe2.jaylen.nyc/internal/interface/middleware"
	"github.com/jvqze/fe2.jaylen.nyc/internal/interface/presenter"
	profilecmd "github.com/jvqze/fe2.jaylen.nyc/internal/usecase/profile/command"
	profileqry "github.com/jvqze/fe2.jaylen.nyc/internal/usecase/profile/query"
	"github.com/jvqze/fe2.jaylen.nyc/pkg/apperror"
)

// ProfileHandler は公開プロフィール関連のHTTPハンドラーです
type ProfileHandler struct {
	awardBadgeCommand *profilecmd.AwardBadgeCommand
	getProfileQuery   *profileqry.GetProfileQuery
	listProfilesQuery *profileqry.ListProfilesQuery
}

// NewProfileHandler は新しいProfileHandlerを作成します
func NewProfileHandler(
	awardBadgeCommand *profilecmd.AwardBadgeCommand,
	getProfileQuery *profileqry.GetProfileQuery,
	listProfilesQuery *profileqry.ListProfilesQuery,
) *ProfileHandler {
	return &ProfileHandler{
		awardBadgeCommand: awardBadgeCommand,
		getProfileQuery:   getProfileQuery,
		listProfilesQuery: listProfilesQuery,
	}
}

// ListProfiles は全プロフィールの一覧を取得します
// GET /api/v1/profiles
func (h *ProfileHandler) ListProfiles(c echo.Context) error {
	summaries, err := h.listProfilesQuery.Execute(c.Request().Context())
	if err != nil {
		return err
	}

	return presenter.OK(c, response.ToProfileListResponse(summaries))
}

// GetProfile はDiscordユーザーIDで公開プロフィールを取得します
// GET /api/v1/profiles/:discordId
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	discordID := c.Param("discordId")
	if discordID == "" {
		return apperror.NewValidationError("discord id is required", nil)
	}

	output, err := h.getProfileQuery.Execute(c.Request().Context(), discordID)
	if err != nil {
		return err
	}

	return presenter.OK(c, response.ToProfileResponse(output))
}

// AwardBadge は対象プロフィールにバッジを付与します（管理者のみ）
// POST /api/v1/profiles/:discordId/badges
func (h *ProfileHandler) AwardBadge(c echo.Context) error {
	actor := middleware.GetUser(c)
	if actor == nil {
		return apperror.NewUnauthorizedError("authentication required")
	}

	var req request.AwardBadgeRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewValidationError("invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	profile, err := h.awardBadgeCommand.Execute(c.Request().Context(), profilecmd.AwardBadgeInput{
		ActorDiscordID:  actor.DiscordID,
		TargetDiscordID: c.Param("discordId"),
		BadgeName:       req.Name,
		BadgeIcon:       req.Icon,
	})
	if err != nil {
		return err
	}

	return presenter.OK(c, response.ToBadgeListResponse(profile.Badges))
}
