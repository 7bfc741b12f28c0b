package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/rosetrack/rosetrack/internal/analytics"
	"github.com/rosetrack/rosetrack/internal/app"
	"github.com/rosetrack/rosetrack/internal/platform/db"
	"github.com/rosetrack/rosetrack/internal/sales"
	"github.com/rosetrack/rosetrack/internal/shared"
	"github.com/rosetrack/rosetrack/jobs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}

	salesRepo := sales.NewRepository(pool)
	analyticsCache := analytics.NewCache(redisClient, cfg.CacheTTL)
	analyticsService := analytics.NewService(salesRepo, analyticsCache, cfg.RepurchaseWindowDays)
	effectStore := shared.NewEffectStore(pool)

	scanJob := jobs.NewRepurchaseScanJob(analyticsService, logger)
	cleanupJob := jobs.NewEffectCleanupJob(effectStore, logger)

	scanTask, err := jobs.NewRepurchaseScanTask(cfg.RepurchaseWindowDays)
	if err != nil {
		logger.Error("build repurchase scan task", slog.Any("error", err))
		os.Exit(1)
	}
	cleanupTask, err := jobs.NewEffectCleanupTask(90)
	if err != nil {
		logger.Error("build effect cleanup task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskRepurchaseScan, Handler: scanJob.Handle},
			{Type: jobs.TaskEffectCleanup, Handler: cleanupJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "0 8 * * *", Task: scanTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
			{Spec: "30 2 * * 0", Task: cleanupTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
