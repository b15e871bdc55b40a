// Package playerzero собирает основное HTTP-приложение: хранилище,
// кэш, сервисы и маршруты, и управляет его жизненным циклом.
package playerzero

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/Unlucky13unny/playerzero/internal/access"
	"github.com/Unlucky13unny/playerzero/internal/cache"
	"github.com/Unlucky13unny/playerzero/internal/config"
	"github.com/Unlucky13unny/playerzero/internal/lib/jwt"
	"github.com/Unlucky13unny/playerzero/internal/migrations"
	"github.com/Unlucky13unny/playerzero/internal/paymentprovider"
	authservice "github.com/Unlucky13unny/playerzero/internal/services/auth"
	entitlementservice "github.com/Unlucky13unny/playerzero/internal/services/entitlement"
	freemodeservice "github.com/Unlucky13unny/playerzero/internal/services/freemode"
	leaderboardservice "github.com/Unlucky13unny/playerzero/internal/services/leaderboard"
	moderationservice "github.com/Unlucky13unny/playerzero/internal/services/moderation"
	paymentservice "github.com/Unlucky13unny/playerzero/internal/services/payment"
	profileservice "github.com/Unlucky13unny/playerzero/internal/services/profile"
	progressservice "github.com/Unlucky13unny/playerzero/internal/services/progress"
	snapshotservice "github.com/Unlucky13unny/playerzero/internal/services/snapshot"
	"github.com/Unlucky13unny/playerzero/internal/stats"
	"github.com/Unlucky13unny/playerzero/internal/storage/repository"
)

type App struct {
	server   *http.Server
	logger   *slog.Logger
	db       *repository.Storage
	freeMode *freemodeservice.Service
}

func waitForDB(db *repository.Storage) error {
	for range 10 {
		if err := repository.CheckDatabaseReady(db); err == nil {
			return nil
		}
		time.Sleep(3 * time.Second)
	}
	return fmt.Errorf("database not ready after retries")
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}
	if err = waitForDB(db); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	resolver := access.NewResolver(cfg.TrialLength)
	engine := stats.NewEngine(cfg.BufferWindow)
	providerClient := paymentprovider.NewClient(cfg.ProviderSecretKey, cfg.WebhookSecret)

	authService := authservice.New(db, jwtMaker)
	freeModeService := freemodeservice.New(db, logger, cfg.FreeModeRefreshRate)
	entitlementService := entitlementservice.New(db, freeModeService, resolver, logger)
	profileService := profileservice.New(db, cacheRedis, logger)
	snapshotService := snapshotservice.New(db, cacheRedis, logger,
		cfg.DailyUploadLimit, cfg.RetainedScreenshots)
	progressService := progressservice.New(db, engine, logger)
	leaderboardService := leaderboardservice.New(db, freeModeService, resolver, engine, cacheRedis, logger)
	paymentService := paymentservice.New(db, providerClient, paymentservice.Config{
		PriceID:    cfg.PriceID,
		SuccessURL: cfg.SuccessURL,
		CancelURL:  cfg.CancelURL,
	}, logger)
	moderationService := moderationservice.New(db, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, &Services{
		Auth:        authService,
		FreeMode:    freeModeService,
		Entitlement: entitlementService,
		Profile:     profileService,
		Snapshot:    snapshotService,
		Progress:    progressService,
		Leaderboard: leaderboardService,
		Payment:     paymentService,
		Moderation:  moderationService,
	}, cfg.FrontendOrigin)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:   srv,
		logger:   logger,
		db:       db,
		freeMode: freeModeService,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	go a.freeMode.Run(ctx)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.db.DB.Close(); closeErr != nil {
			a.logger.Error("failed to close database", slog.Any("err", closeErr))
		}
		return err
	}
}
