// Package login реализует HTTP-обработчик начала OAuth-входа:
// редирект на страницу авторизации Яндекса.
package login

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
)

// Handler перенаправляет клиента на страницу авторизации провайдера.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики входа.
type Service interface {
	LoginURL() string
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Начать OAuth-вход
// @Description Перенаправляет на страницу авторизации Яндекса.
// @Tags Auth
// @Success 302
// @Router /auth/login [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	url := h.service.LoginURL()
	log.Info("redirecting to oauth provider")
	http.Redirect(w, r, url, http.StatusFound)
}
