// Package webhook реализует HTTP-обработчик вебхука платёжного провайдера.
//
// Handler читает тело запроса целиком, передаёт его вместе с заголовком
// подписи в бизнес-логику и отвечает провайдеру кодом 200 при успехе.
package webhook

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/Unlucky13unny/playerzero/internal/http/response"
	"github.com/Unlucky13unny/playerzero/internal/lib/sl"
	"github.com/Unlucky13unny/playerzero/internal/paymentprovider"
)

// Service описывает интерфейс обработки события вебхука.
type Service interface {
	ProcessWebhookEvent(ctx context.Context, payload []byte, signature string) error
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
// @Summary Принять событие провайдера
// @Description Проверяет подпись вебхука и применяет событие к подписке аккаунта. Повторные доставки игнорируются.
// @Tags Billing
// @Accept  json
// @Produce  json
// @Success 200 {object} response.Response "Событие обработано"
// @Failure 400 {object} response.ErrorResponse "Нечитаемое тело запроса"
// @Failure 401 {object} response.ErrorResponse "Неверная подпись"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /billing/webhook [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.billing.webhook"
	log := h.log.With(slog.String("op", op))

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error("failed to read webhook body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("unreadable request body"))
		return
	}
	defer func() {
		_ = r.Body.Close()
	}()

	signature := r.Header.Get("Provider-Signature")
	if err := h.service.ProcessWebhookEvent(r.Context(), body, signature); err != nil {
		if errors.Is(err, paymentprovider.ErrBadSignature) {
			log.Error("invalid or missing webhook signature")
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("invalid webhook signature"))
			return
		}
		log.Error("failed to process webhook event", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not process event"))
		return
	}

	render.JSON(w, r, response.OK())
}
