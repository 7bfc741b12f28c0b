package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

// EffectPruner removes saga effect markers older than the retention window.
type EffectPruner interface {
	Cleanup(ctx context.Context, olderThan time.Duration) error
}

// EffectCleanupJob prunes applied-effect markers for sales old enough that
// a retry can no longer arrive.
type EffectCleanupJob struct {
	Store  EffectPruner
	Logger *slog.Logger
}

// NewEffectCleanupJob initialises the cleanup handler.
func NewEffectCleanupJob(store EffectPruner, logger *slog.Logger) *EffectCleanupJob {
	return &EffectCleanupJob{Store: store, Logger: logger}
}

// Handle executes the marker cleanup.
func (j *EffectCleanupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Store == nil {
		return errors.New("effect cleanup: handler not configured")
	}
	var payload EffectCleanupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.RetentionDays <= 0 {
		payload.RetentionDays = 90
	}

	logger := j.logger().With(slog.Int("retention_days", payload.RetentionDays))
	retention := time.Duration(payload.RetentionDays) * 24 * time.Hour
	if err := j.Store.Cleanup(ctx, retention); err != nil {
		logger.Error("cleanup failed", slog.Any("error", err))
		return err
	}
	logger.Info("completed effect cleanup")
	return nil
}

func (j *EffectCleanupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskEffectCleanup))
	}
	return slog.Default().With(slog.String("job", TaskEffectCleanup))
}
