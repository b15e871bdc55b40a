// Package delta реализует HTTP-обработчик вычисления прогресса тренера
// за период.
//
// Handler принимает JSON-запрос с видом периода и для явного диапазона —
// границами дат, и возвращает дельты счётчиков и средние темпы.
// Недостаток данных в явном диапазоне даёт HTTP 422.
package delta

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/Unlucky13unny/playerzero/internal/http/response"
	"github.com/Unlucky13unny/playerzero/internal/lib/sl"
	"github.com/Unlucky13unny/playerzero/internal/models"
	"github.com/Unlucky13unny/playerzero/internal/stats"
	"github.com/Unlucky13unny/playerzero/internal/storage/repository"
)

// Service описывает интерфейс бизнес-логики вычисления прогресса.
type Service interface {
	Compute(ctx context.Context, username string, req models.DummyDeltaRequest, now time.Time) (*models.StatDelta, error)
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
// @Summary Вычислить прогресс за период
// @Description Возвращает дельты счётчиков и средние темпы тренера за явный диапазон, текущую неделю, месяц или всё время.
// @Tags Stats
// @Accept  json
// @Produce  json
// @Param username path string true "Username тренера"
// @Param request body models.DummyDeltaRequest true "Параметры периода"
// @Success 200 {object} models.StatDelta "Прогресс за период"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или даты"
// @Failure 404 {object} response.ErrorResponse "Аккаунт не найден"
// @Failure 422 {object} response.ErrorResponse "Недостаточно данных для диапазона"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /stats/{username}/delta [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.stats.delta"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username := chi.URLParam(r, "username")
	if username == "" {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("username is required"))
		return
	}

	var req models.DummyDeltaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	delta, err := h.service.Compute(r.Context(), username, req, time.Now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, stats.ErrInsufficientData):
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("not enough data for the requested range"))
		case errors.Is(err, repository.ErrNotFound):
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("account not found"))
		default:
			log.Error("failed to compute delta", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not compute progress"))
		}
		return
	}

	render.JSON(w, r, response.OKWithData(delta))
}
