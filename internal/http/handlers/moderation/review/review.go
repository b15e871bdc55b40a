// Package review реализует HTTP-обработчик вердикта модерации скриншота.
package review

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/Unlucky13unny/playerzero/internal/http/response"
	"github.com/Unlucky13unny/playerzero/internal/lib/sl"
	"github.com/Unlucky13unny/playerzero/internal/services/moderation"
)

// Request — входные данные вердикта модерации
type Request struct {
	Verdict string `json:"verdict" validate:"required,oneof=approved rejected"`
	Reason  string `json:"reason"`
}

// Service описывает интерфейс бизнес-логики модерации.
type Service interface {
	Review(ctx context.Context, id int, verdict, reason string) (int, error)
}

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Применить вердикт модерации
// @Description Одобряет или отклоняет скриншот снапшота. Только для администраторов.
// @Tags Moderation
// @Accept  json
// @Produce  json
// @Param id path int true "ID снапшота"
// @Param request body Request true "Вердикт и причина отклонения"
// @Success 200 {object} response.Response "Вердикт применён"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ID"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 404 {object} response.ErrorResponse "Снапшот не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/moderation/{id} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.moderation.review"
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

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	updated, err := h.service.Review(r.Context(), id, req.Verdict, req.Reason)
	if err != nil {
		if errors.Is(err, moderation.ErrUnknownVerdict) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("verdict must be approved or rejected"))
			return
		}
		log.Error("failed to review snapshot", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not review snapshot"))
		return
	}
	if updated == 0 {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("snapshot not found"))
		return
	}

	log.Info("snapshot reviewed", slog.Int("id", id), slog.String("verdict", req.Verdict))
	render.JSON(w, r, response.OK())
}
