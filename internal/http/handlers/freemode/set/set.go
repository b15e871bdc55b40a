// Package set реализует HTTP-обработчик переключения free mode
// администратором.
package set

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/Unlucky13unny/playerzero/internal/http/middlewarectx"
	"github.com/Unlucky13unny/playerzero/internal/http/response"
	"github.com/Unlucky13unny/playerzero/internal/lib/sl"
)

// Request — входные данные для переключения флага
type Request struct {
	Enabled bool `json:"enabled"`
}

// Service описывает интерфейс переключения флага free mode.
type Service interface {
	SetEnabled(ctx context.Context, enabled bool, updatedBy string) error
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
// @Summary Переключить free mode
// @Description Включает или выключает глобальный флаг free mode. Только для администраторов.
// @Tags FreeMode
// @Accept  json
// @Produce  json
// @Param request body Request true "Новое значение флага"
// @Success 200 {object} response.Response "Флаг обновлён"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/free-mode [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.freemode.set"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	username, _ := r.Context().Value(middlewarectx.User).(string)
	if err := h.service.SetEnabled(r.Context(), req.Enabled, username); err != nil {
		log.Error("failed to set free mode", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update free mode"))
		return
	}

	log.Info("free mode updated",
		slog.Bool("enabled", req.Enabled), slog.String("updated_by", username))
	render.JSON(w, r, response.OK())
}
