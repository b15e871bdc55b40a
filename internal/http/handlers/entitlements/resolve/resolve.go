// Package resolve реализует HTTP-обработчик получения решения о доступе
// текущего пользователя: набор прав и отсчёт до конца пробного периода.
package resolve

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
	"github.com/Unlucky13unny/playerzero/internal/storage/repository"
)

// Service описывает интерфейс бизнес-логики вычисления доступа.
type Service interface {
	ResolveForUsername(ctx context.Context, username string, now time.Time) (*models.AccessDecision, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить решение о доступе
// @Description Возвращает набор прав текущего пользователя и отсчёт до конца пробного периода.
// @Tags Entitlements
// @Produce  json
// @Success 200 {object} models.AccessDecision "Решение о доступе"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /entitlements [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.entitlements.resolve"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || username == "" {
		log.Error("username not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	decision, err := h.service.ResolveForUsername(r.Context(), username, time.Now().UTC())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("account not found"))
			return
		}
		log.Error("failed to resolve access", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	render.JSON(w, r, response.OKWithData(decision))
}
