// Package list реализует HTTP-обработчик чтения истории снапшотов
// текущего пользователя.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/Unlucky13unny/playerzero/internal/http/middlewarectx"
	"github.com/Unlucky13unny/playerzero/internal/http/response"
	"github.com/Unlucky13unny/playerzero/internal/lib/sl"
	"github.com/Unlucky13unny/playerzero/internal/models"
)

// Service описывает интерфейс бизнес-логики чтения истории.
type Service interface {
	List(ctx context.Context, userUID string) ([]models.StatSnapshot, error)
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
// @Summary Получить историю снапшотов
// @Description Возвращает снапшоты текущего пользователя в хронологическом порядке, кроме отклонённых модерацией.
// @Tags Snapshots
// @Produce  json
// @Success 200 {object} map[string]any "История снапшотов"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /snapshots [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.snapshot.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	snapshots, err := h.service.List(r.Context(), userUID)
	if err != nil {
		log.Error("failed to list snapshots", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list snapshots"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"snapshots": snapshots,
		"count":     len(snapshots),
	}))
}
