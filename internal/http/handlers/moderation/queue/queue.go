// Package queue реализует HTTP-обработчик очереди модерации скриншотов.
package queue

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/Unlucky13unny/playerzero/internal/http/response"
	"github.com/Unlucky13unny/playerzero/internal/lib/sl"
	"github.com/Unlucky13unny/playerzero/internal/models"
)

// Service описывает интерфейс чтения очереди модерации.
type Service interface {
	Queue(ctx context.Context, limit int) ([]models.StatSnapshot, error)
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
// @Summary Получить очередь модерации
// @Description Возвращает снапшоты, ожидающие проверки скриншота. Только для администраторов.
// @Tags Moderation
// @Produce  json
// @Param limit query int false "Максимум записей" default(50)
// @Success 200 {object} map[string]any "Очередь модерации"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/moderation [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.moderation.queue"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	snapshots, err := h.service.Queue(r.Context(), limit)
	if err != nil {
		log.Error("failed to list moderation queue", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list moderation queue"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"snapshots": snapshots,
		"count":     len(snapshots),
	}))
}
