package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/rosetrack/rosetrack/internal/analytics"
)

// RepurchaseSource lists the clients due for a recontact.
type RepurchaseSource interface {
	GetRepurchaseList(ctx context.Context) ([]analytics.RepurchaseEntry, error)
}

// RepurchaseScanJob walks the sale history and logs a reminder for every
// client whose last purchase is older than the repurchase window.
type RepurchaseScanJob struct {
	Source RepurchaseSource
	Logger *slog.Logger
	clock  func() time.Time
}

// NewRepurchaseScanJob initialises the scan handler.
func NewRepurchaseScanJob(source RepurchaseSource, logger *slog.Logger) *RepurchaseScanJob {
	return &RepurchaseScanJob{
		Source: source,
		Logger: logger,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle executes the repurchase scan.
func (j *RepurchaseScanJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Source == nil {
		return errors.New("repurchase scan: handler not configured")
	}
	var payload RepurchaseScanPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.WindowDays <= 0 {
		payload.WindowDays = analytics.DefaultRepurchaseWindowDays
	}

	start := j.now()
	logger := j.logger().With(slog.Int("window_days", payload.WindowDays))
	logger.Info("starting repurchase scan")

	entries, err := j.Source.GetRepurchaseList(ctx)
	if err != nil {
		logger.Error("scan failed", slog.Any("error", err))
		return err
	}

	for _, e := range entries {
		logger.Info("client due for recontact",
			slog.String("client", e.Sale.ClientName),
			slog.String("product", e.Sale.ProductName),
			slog.Int("days_since", e.DaysSince),
			slog.Time("last_purchase", e.Sale.Date),
		)
	}

	logger.Info("completed repurchase scan",
		slog.Int("candidates", len(entries)),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

func (j *RepurchaseScanJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskRepurchaseScan))
	}
	return slog.Default().With(slog.String("job", TaskRepurchaseScan))
}

func (j *RepurchaseScanJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}
