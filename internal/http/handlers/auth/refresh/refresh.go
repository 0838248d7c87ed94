// Package refresh реализует HTTP-обработчик обновления access-токена
// по refresh-токену из cookie, без повторного прохождения OAuth.
package refresh

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/mashagrib/knowledge-base/internal/http/response"
	"github.com/mashagrib/knowledge-base/internal/lib/sl"
)

// Handler обновляет access-токен по действующему refresh-токену.
type Handler struct {
	log       *slog.Logger
	service   Service
	accessTTL time.Duration
}

// Service описывает интерфейс бизнес-логики обновления токена.
type Service interface {
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service, accessTTL time.Duration) *Handler {
	return &Handler{log: log, service: service, accessTTL: accessTTL}
}

// ServeHTTP godoc
// @Summary Обновить access-токен
// @Description Читает refresh-токен из cookie и выставляет новый access_token.
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]any "Токен обновлён"
// @Failure 401 {object} response.DetailResponse "Refresh-токен отсутствует или недействителен"
// @Router /auth/refresh [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.refresh"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	cookie, err := r.Cookie("refresh_token")
	if err != nil || cookie.Value == "" {
		log.Error("refresh token cookie is missing")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Detail("Invalid or expired refresh token"))
		return
	}

	access, err := h.service.Refresh(r.Context(), cookie.Value)
	if err != nil {
		log.Error("failed to refresh access token", sl.Err(err))
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Detail("Invalid or expired refresh token"))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    access,
		Path:     "/",
		MaxAge:   int(h.accessTTL.Seconds()),
		HttpOnly: true,
		Secure:   true,
	})

	log.Info("access token refreshed")
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "refreshed",
	}))
}
