// Package checkout реализует HTTP-обработчик создания платёжной сессии
// для перехода на оплату подписки.
package checkout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/Unlucky13unny/playerzero/internal/http/middlewarectx"
	"github.com/Unlucky13unny/playerzero/internal/http/response"
	"github.com/Unlucky13unny/playerzero/internal/lib/sl"
)

// Service описывает интерфейс бизнес-логики создания платёжной сессии.
type Service interface {
	CreateCheckout(ctx context.Context, userUID string) (string, error)
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
// @Summary Создать платёжную сессию
// @Description Создает сессию оплаты подписки и возвращает URL страницы провайдера.
// @Tags Billing
// @Produce  json
// @Success 200 {object} map[string]any "URL платёжной сессии"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера или провайдера"
// @Router /billing/checkout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.billing.checkout"
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

	url, err := h.service.CreateCheckout(r.Context(), userUID)
	if err != nil {
		log.Error("failed to create checkout session", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create checkout session"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"checkout_url": url,
	}))
}
