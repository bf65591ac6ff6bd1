package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/smartcampus/assistant-cli/internal/buildinfo"
	"github.com/smartcampus/assistant-cli/internal/client/cli"
	"github.com/smartcampus/assistant-cli/internal/client/config"
	"github.com/smartcampus/assistant-cli/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	// A missing .env file is fine; the environment stays as-is.
	_ = godotenv.Load()

	cfg := config.LoadConfig()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
