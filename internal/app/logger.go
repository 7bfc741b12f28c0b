package app

import (
	"log/slog"
	"os"
)

// NewLogger builds the process-wide structured logger. Production emits
// JSON; everything else gets a human-readable text handler.
func NewLogger(cfg *Config) *slog.Logger {
	level := slog.LevelInfo
	if !cfg.IsProduction() {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.LogFormat == "json" || cfg.IsProduction() {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler).With("app", "rosetrack", "env", cfg.AppEnv)
	slog.SetDefault(logger)
	return logger
}
