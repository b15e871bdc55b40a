// Package remove реализует HTTP-обработчик удаления снапшота
// текущего пользователя по идентификатору.
package remove

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/Unlucky13unny/playerzero/internal/http/middlewarectx"
	"github.com/Unlucky13unny/playerzero/internal/http/response"
	"github.com/Unlucky13unny/playerzero/internal/lib/sl"
)

// Service описывает интерфейс бизнес-логики удаления снапшота.
type Service interface {
	Remove(ctx context.Context, id int, userUID string) (int, error)
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
// @Summary Удалить снапшот
// @Description Удаляет снапшот текущего пользователя по ID.
// @Tags Snapshots
// @Produce  json
// @Param id path int true "ID снапшота"
// @Success 200 {object} map[string]any "Количество удалённых записей"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Снапшот не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /snapshots/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.snapshot.remove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid snapshot id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid snapshot id"))
		return
	}

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	removed, err := h.service.Remove(r.Context(), id, userUID)
	if err != nil {
		log.Error("failed to remove snapshot", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not remove snapshot"))
		return
	}
	if removed == 0 {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("snapshot not found"))
		return
	}

	log.Info("snapshot removed", slog.Int("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"removed": removed,
	}))
}
