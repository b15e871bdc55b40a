// Package get реализует HTTP-обработчик чтения состояния free mode.
package get

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/Unlucky13unny/playerzero/internal/http/response"
	"github.com/Unlucky13unny/playerzero/internal/models"
)

// Service описывает интерфейс чтения флага free mode.
type Service interface {
	Current() models.FreeModeFlag
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
// @Summary Получить состояние free mode
// @Description Возвращает текущее значение глобального флага free mode.
// @Tags FreeMode
// @Produce  json
// @Success 200 {object} models.FreeModeFlag "Состояние флага"
// @Router /admin/free-mode [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.OKWithData(h.service.Current()))
}
