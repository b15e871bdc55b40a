// Package create реализует HTTP-обработчик загрузки нового снапшота
// игровой статистики.
//
// Handler принимает JSON-запрос со счётчиками, валидирует их, извлекает UID
// пользователя из контекста и вызывает бизнес-логику создания снапшота.
// Превышение суточного лимита и убывание счётчиков дают HTTP 422.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/Unlucky13unny/playerzero/internal/http/middlewarectx"
	"github.com/Unlucky13unny/playerzero/internal/http/response"
	"github.com/Unlucky13unny/playerzero/internal/lib/sl"
	"github.com/Unlucky13unny/playerzero/internal/metrics"
	"github.com/Unlucky13unny/playerzero/internal/models"
	"github.com/Unlucky13unny/playerzero/internal/services/snapshot"
)

// Service описывает интерфейс бизнес-логики создания снапшота.
type Service interface {
	Create(ctx context.Context, userUID string, req models.DummySnapshot) (int, error)
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
// @Summary Загрузить снапшот статистики
// @Description Добавляет снапшот счётчиков текущего пользователя. Действует суточный лимит, счётчики не могут убывать.
// @Tags Snapshots
// @Accept  json
// @Produce  json
// @Param request body models.DummySnapshot true "Счётчики снапшота"
// @Success 200 {object} map[string]any "Снапшот создан"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации, лимит или убывание счётчиков"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /snapshots [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.snapshot.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummySnapshot
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
	log.Info("all fields are validated")

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	id, err := h.service.Create(r.Context(), userUID, req)
	if err != nil {
		switch {
		case errors.Is(err, snapshot.ErrUploadLimit):
			metrics.SnapshotUploads.WithLabelValues("limit").Inc()
			log.Error("daily upload limit reached", slog.String("user_uid", userUID))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("daily upload limit reached"))
		case errors.Is(err, snapshot.ErrNotMonotonic):
			metrics.SnapshotUploads.WithLabelValues("not_monotonic").Inc()
			log.Error("counters decreased", slog.String("user_uid", userUID))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("counters must not decrease between snapshots"))
		default:
			metrics.SnapshotUploads.WithLabelValues("error").Inc()
			log.Error("failed to create snapshot", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not create snapshot"))
		}
		return
	}

	metrics.SnapshotUploads.WithLabelValues("ok").Inc()
	log.Info("snapshot created", slog.Int("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"last_added_id": id,
	}))
}
