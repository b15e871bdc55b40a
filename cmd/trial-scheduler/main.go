// Команда trial-scheduler публикует напоминания об истечении пробного периода.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Unlucky13unny/playerzero/internal/app/trialscheduler"
	"github.com/Unlucky13unny/playerzero/internal/config"
	"github.com/Unlucky13unny/playerzero/internal/lib/sl"
)

func main() {
	cfg := config.MustLoad()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	logger.Info("starting trial scheduler", slog.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := trialscheduler.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to init scheduler", sl.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error("scheduler stopped with error", sl.Err(err))
		os.Exit(1)
	}
}
