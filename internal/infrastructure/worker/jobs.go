package worker

import (
	"context"
	"log/slog"
	"time"
)

// ChunkSweepJobConfig はチャンク掃除ジョブの設定です
type ChunkSweepJobConfig struct {
	// StaleAfter はエントリを放棄と見なすまでの経過時間です
	StaleAfter time.Duration
	// Interval は掃除の実行間隔です
	Interval time.Duration
}

// NewChunkSweepJob は放棄されたチャンクの掃除ジョブを作成します
// sweepFn はolderThanより古い一時エントリを削除し、削除数を返します
func NewChunkSweepJob(sweepFn func(olderThan time.Time) (int, error), cfg ChunkSweepJobConfig) Job {
	if cfg.StaleAfter <= 0 {
		cfg.StaleAfter = 24 * time.Hour
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 1 * time.Hour
	}

	return Job{
		Name:     "chunk_sweep",
		Interval: cfg.Interval,
		Fn: func(ctx context.Context) error {
			count, err := sweepFn(time.Now().Add(-cfg.StaleAfter))
			if err != nil {
				return err
			}
			if count > 0 {
				slog.Info("chunk sweep completed", "removed", count)
			}
			return nil
		},
	}
}

// NewHealthCheckJob はヘルスチェックジョブを作成します（データベース接続確認など）
func NewHealthCheckJob(checkFn func(ctx context.Context) error) Job {
	return Job{
		Name:     "health_check",
		Interval: 5 * time.Minute,
		Fn: func(ctx context.Context) error {
			if err := checkFn(ctx); err != nil {
				slog.Warn("health check failed", "error", err)
				return err
			}
			return nil
		},
	}
}
