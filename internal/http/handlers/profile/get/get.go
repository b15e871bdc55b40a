// Package get реализует HTTP-обработчик чтения карточки тренера.
//
// Handler извлекает username владельца из URL, вычисляет решение о доступе
// владельца и возвращает карточку с отфильтрованными платными полями.
package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/Unlucky13unny/playerzero/internal/http/response"
	"github.com/Unlucky13unny/playerzero/internal/lib/sl"
	"github.com/Unlucky13unny/playerzero/internal/models"
	"github.com/Unlucky13unny/playerzero/internal/storage/repository"
)

// Service описывает интерфейс бизнес-логики чтения карточки.
type Service interface {
	Get(ctx context.Context, ownerUsername string, ownerDecision models.AccessDecision) (*models.Profile, error)
}

// Entitlements вычисляет решение о доступе владельца карточки.
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
// @Summary Получить карточку тренера
// @Description Возвращает карточку тренера по username. Код тренера и соцсети видны только при полном доступе владельца.
// @Tags Profiles
// @Produce  json
// @Param username path string true "Username владельца"
// @Success 200 {object} models.Profile "Карточка тренера"
// @Failure 404 {object} response.ErrorResponse "Аккаунт или карточка не найдены"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /profiles/{username} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.get"
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

	decision, err := h.entitlements.ResolveForUsername(r.Context(), username, time.Now().UTC())
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

	profile, err := h.service.Get(r.Context(), username, *decision)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("profile not found"))
			return
		}
		log.Error("failed to get profile", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	render.JSON(w, r, response.OKWithData(profile))
}
