package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/rosetrack/rosetrack/internal/analytics"
	analytichttp "github.com/rosetrack/rosetrack/internal/analytics/http"
	"github.com/rosetrack/rosetrack/internal/app"
	"github.com/rosetrack/rosetrack/internal/inventory"
	"github.com/rosetrack/rosetrack/internal/leads"
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
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	effectStore := shared.NewEffectStore(pool)
	analyticsCache := analytics.NewCache(redisClient, cfg.CacheTTL)

	inventoryRepo := inventory.NewRepository(pool)
	inventoryService := inventory.NewService(inventoryRepo, inventory.ServiceConfig{
		LowStockThreshold: cfg.LowStockThreshold,
	})
	inventoryHandler := inventory.NewHandler(logger, inventoryService)

	leadRepo := leads.NewRepository(pool)
	leadService := leads.NewService(leadRepo)
	leadHandler := leads.NewHandler(logger, leadService)

	policies := sales.DefaultChannelPolicies()
	if len(cfg.CommissionChannels) > 0 || len(cfg.AdCostChannels) > 0 {
		policies = sales.ChannelPoliciesFromOverrides(cfg.CommissionChannels, cfg.AdCostChannels)
	}

	salesRepo := sales.NewRepository(pool)
	salesService := sales.NewService(salesRepo, inventoryService, leadService, effectStore, analyticsCache, policies)
	salesHandler := sales.NewHandler(logger, salesService)

	analyticsService := analytics.NewService(salesRepo, analyticsCache, cfg.RepurchaseWindowDays)
	analyticsHandler := analytichttp.NewHandler(logger, analyticsService)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobsHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		SalesHandler:     salesHandler,
		LeadsHandler:     leadHandler,
		InventoryHandler: inventoryHandler,
		AnalyticsHandler: analyticsHandler,
		JobsHandler:      jobsHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
