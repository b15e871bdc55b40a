// Package list реализует HTTP-обработчик таблицы лидеров.
//
// Handler читает период и метрику из query-параметров, проверяет право
// зрителя видеть таблицу и возвращает отранжированные строки.
package list

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/Unlucky13unny/playerzero/internal/http/middlewarectx"
	"github.com/Unlucky13unny/playerzero/internal/http/response"
	"github.com/Unlucky13unny/playerzero/internal/lib/sl"
	"github.com/Unlucky13unny/playerzero/internal/models"
	"github.com/Unlucky13unny/playerzero/internal/services/leaderboard"
	"github.com/Unlucky13unny/playerzero/internal/stats"
)

// Service описывает интерфейс построения таблицы лидеров.
type Service interface {
	Build(ctx context.Context, period stats.PeriodKind, metric string, now time.Time) ([]models.LeaderboardEntry, error)
}

// Entitlements вычисляет решение о доступе зрителя.
type Entitlements interface {
	ResolveForUsername(ctx context.Context, username string, now time.Time) (*models.AccessDecision, error)
}

type Handler struct {
	log          *slog.Logger
	service      Service
	entitlements Entitlements
}

func New(log *slog.Logger, service Service, entitlements Entitlements) *Handler {
	return &Handler{
		log:          log,
		service:      service,
		entitlements: entitlements,
	}
}

// ServeHTTP godoc
// @Summary Получить таблицу лидеров
// @Description Возвращает таблицу лидеров за период по выбранной метрике. Доступно только зрителям с правом просмотра.
// @Tags Leaderboard
// @Produce  json
// @Param period query string false "Период: week, month или all" default(week)
// @Param metric query string false "Метрика: xp, catches, distance или stops" default(xp)
// @Success 200 {object} map[string]any "Строки таблицы"
// @Failure 400 {object} response.ErrorResponse "Неизвестный период или метрика"
// @Failure 403 {object} response.ErrorResponse "Нет права просмотра таблицы"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /leaderboard [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.leaderboard.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	now := time.Now().UTC()

	username, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || username == "" {
		log.Error("username not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	decision, err := h.entitlements.ResolveForUsername(r.Context(), username, now)
	if err != nil {
		log.Error("failed to resolve access", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}
	if !decision.CanViewLeaderboard {
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error("leaderboard access requires an active trial or subscription"))
		return
	}

	period := stats.PeriodKind(r.URL.Query().Get("period"))
	if period == "" {
		period = stats.PeriodWeek
	}
	metric := r.URL.Query().Get("metric")
	if metric == "" {
		metric = leaderboard.MetricXP
	}

	entries, err := h.service.Build(r.Context(), period, metric, now)
	if err != nil {
		if errors.Is(err, leaderboard.ErrUnknownMetric) {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("unknown leaderboard metric"))
			return
		}
		log.Error("failed to build leaderboard", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build leaderboard"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"entries": entries,
		"count":   len(entries),
	}))
}
