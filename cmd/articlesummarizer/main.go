package main

import (
	"context"
	"os"

	"ArticleSummarizer/internal/app"
	"ArticleSummarizer/internal/config"
	"ArticleSummarizer/internal/logging"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level, os.Stderr)

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("application setup failed", "error", err)
		os.Exit(1)
	}
	defer func() { _ = application.Close() }()

	if err := application.Run(ctx, os.Stdin, os.Stdout); err != nil {
		logger.Error("application stopped", "error", err)
		_ = application.Close()
		os.Exit(1)
	}
}
