package command

import (
	"context"

	"github.com/jvqze/fe2.jaylen.nyc/internal/domain/repository"
)

// LogoutCommand はログアウトコマンドです
type LogoutCommand struct {
	sessionRepo repository.SessionRepository
}

// NewLogoutCommand は新しいLogoutCommandを作成します
func NewLogoutCommand(sessionRepo repository.SessionRepository) *LogoutCommand {
	return &LogoutCommand{
		sessionRepo: sessionRepo,
	}
}

// Execute はログアウトを実行します
func (c *LogoutCommand) Execute(ctx context.Context, sessionID string) error {
	return c.sessionRepo.Delete(ctx, sessionID)
}
