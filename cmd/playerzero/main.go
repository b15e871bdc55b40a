// Команда playerzero запускает основной HTTP-сервис.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Unlucky13unny/playerzero/internal/app/playerzero"
	"github.com/Unlucky13unny/playerzero/internal/config"
	"github.com/Unlucky13unny/playerzero/internal/lib/sl"
)

func main() {
	cfg := config.MustLoad()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	logger.Info("starting playerzero", slog.String("env", cfg.Env))
	logger.Debug("debug messages are enabled")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := playerzero.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to init application", sl.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error("application stopped with error", sl.Err(err))
		os.Exit(1)
	}
}
