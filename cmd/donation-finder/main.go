package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/rs/xid"

	"donation_finder/pkg/contextx"
	"donation_finder/pkg/logx"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	level := slog.LevelInfo
	if os.Getenv("DEBUG") != "" {
		level = slog.LevelDebug
	}

	log := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
	}))
	slog.SetDefault(log)

	runID := contextx.RunID(xid.New().String())
	log = log.With(logx.Stringer(logx.FieldRunID, runID))

	ctx = contextx.WithLogger(ctx, log)
	ctx = contextx.WithRunID(ctx, runID)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Error("command failed", logx.Error(err))
		os.Exit(1)
	}
}
