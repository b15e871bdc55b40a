// Package playerzero предоставляет маршруты для основного приложения.
package playerzero

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	"github.com/Unlucky13unny/playerzero/internal/http/handlers/auth/login"
	"github.com/Unlucky13unny/playerzero/internal/http/handlers/auth/register"
	billingcheckout "github.com/Unlucky13unny/playerzero/internal/http/handlers/billing/checkout"
	billingwebhook "github.com/Unlucky13unny/playerzero/internal/http/handlers/billing/webhook"
	"github.com/Unlucky13unny/playerzero/internal/http/handlers/entitlements/resolve"
	freemodeget "github.com/Unlucky13unny/playerzero/internal/http/handlers/freemode/get"
	freemodeset "github.com/Unlucky13unny/playerzero/internal/http/handlers/freemode/set"
	"github.com/Unlucky13unny/playerzero/internal/http/handlers/health"
	leaderboardlist "github.com/Unlucky13unny/playerzero/internal/http/handlers/leaderboard/list"
	moderationqueue "github.com/Unlucky13unny/playerzero/internal/http/handlers/moderation/queue"
	moderationreview "github.com/Unlucky13unny/playerzero/internal/http/handlers/moderation/review"
	profileget "github.com/Unlucky13unny/playerzero/internal/http/handlers/profile/get"
	profileupdate "github.com/Unlucky13unny/playerzero/internal/http/handlers/profile/update"
	snapshotcreate "github.com/Unlucky13unny/playerzero/internal/http/handlers/snapshot/create"
	snapshotlist "github.com/Unlucky13unny/playerzero/internal/http/handlers/snapshot/list"
	snapshotremove "github.com/Unlucky13unny/playerzero/internal/http/handlers/snapshot/remove"
	statsdelta "github.com/Unlucky13unny/playerzero/internal/http/handlers/stats/delta"
	"github.com/Unlucky13unny/playerzero/internal/http/middlewarectx"
	authservice "github.com/Unlucky13unny/playerzero/internal/services/auth"
	entitlementservice "github.com/Unlucky13unny/playerzero/internal/services/entitlement"
	freemodeservice "github.com/Unlucky13unny/playerzero/internal/services/freemode"
	leaderboardservice "github.com/Unlucky13unny/playerzero/internal/services/leaderboard"
	moderationservice "github.com/Unlucky13unny/playerzero/internal/services/moderation"
	paymentservice "github.com/Unlucky13unny/playerzero/internal/services/payment"
	profileservice "github.com/Unlucky13unny/playerzero/internal/services/profile"
	progressservice "github.com/Unlucky13unny/playerzero/internal/services/progress"
	snapshotservice "github.com/Unlucky13unny/playerzero/internal/services/snapshot"
)

// Services объединяет сервисы приложения для регистрации маршрутов.
type Services struct {
	Auth        *authservice.Service
	FreeMode    *freemodeservice.Service
	Entitlement *entitlementservice.Service
	Profile     *profileservice.Service
	Snapshot    *snapshotservice.Service
	Progress    *progressservice.Service
	Leaderboard *leaderboardservice.Service
	Payment     *paymentservice.Service
	Moderation  *moderationservice.Service
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, s *Services, frontendOrigin string) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{frontendOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler)

	limiter := rate.NewLimiter(10, 30)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, s.Auth).ServeHTTP)
		r.Post("/auth/login", login.New(logger, s.Auth).ServeHTTP)
		r.Get("/health", health.New(logger).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(s.Auth, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger, limiter))
			r.Get("/entitlements", resolve.New(logger, s.Entitlement).ServeHTTP)
			r.Put("/profiles", profileupdate.New(logger, s.Profile).ServeHTTP)
			r.Get("/profiles/{username}", profileget.New(logger, s.Profile, s.Entitlement).ServeHTTP)
			r.Post("/snapshots", snapshotcreate.New(logger, s.Snapshot).ServeHTTP)
			r.Get("/snapshots", snapshotlist.New(logger, s.Snapshot).ServeHTTP)
			r.Delete("/snapshots/{id}", snapshotremove.New(logger, s.Snapshot).ServeHTTP)
			r.Post("/stats/{username}/delta", statsdelta.New(logger, s.Progress).ServeHTTP)
			r.Get("/leaderboard", leaderboardlist.New(logger, s.Leaderboard, s.Entitlement).ServeHTTP)
			r.Post("/billing/checkout", billingcheckout.New(logger, s.Payment).ServeHTTP)

			// Административная группа
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.AdminOnlyMiddleware(logger))
				r.Get("/admin/free-mode", freemodeget.New(logger, s.FreeMode).ServeHTTP)
				r.Put("/admin/free-mode", freemodeset.New(logger, s.FreeMode).ServeHTTP)
				r.Get("/admin/moderation", moderationqueue.New(logger, s.Moderation).ServeHTTP)
				r.Post("/admin/moderation/{id}", moderationreview.New(logger, s.Moderation).ServeHTTP)
			})
		})

		// Webhook endpoint (без аутентификации)
		r.Post("/billing/webhook", billingwebhook.New(logger, s.Payment).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
