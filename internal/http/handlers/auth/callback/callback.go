// Package callback реализует HTTP-обработчик возврата с OAuth-провайдера.
//
// Handler обменивает код авторизации на пару токенов через сервис,
// выставляет cookie access_token и refresh_token и перенаправляет
// на главную страницу фронтенда.
package callback

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/mashagrib/knowledge-base/internal/http/response"
	"github.com/mashagrib/knowledge-base/internal/lib/sl"
	"github.com/mashagrib/knowledge-base/internal/models"
	"github.com/mashagrib/knowledge-base/internal/yandex"
)

// Handler завершает OAuth-вход и выставляет cookie с токенами.
type Handler struct {
	log          *slog.Logger
	service      Service
	frontendHome string
	accessTTL    time.Duration
	refreshTTL   time.Duration
}

// Service описывает интерфейс бизнес-логики завершения входа.
type Service interface {
	Callback(ctx context.Context, code string) (*models.User, string, string, error)
}

// New создает новый Handler с переданными логгером, сервисом и настройками cookie.
func New(log *slog.Logger, service Service, frontendHome string, accessTTL, refreshTTL time.Duration) *Handler {
	return &Handler{
		log:          log,
		service:      service,
		frontendHome: frontendHome,
		accessTTL:    accessTTL,
		refreshTTL:   refreshTTL,
	}
}

// ServeHTTP godoc
// @Summary Завершить OAuth-вход
// @Description Обменивает код авторизации на пару токенов, выставляет cookie и перенаправляет на фронтенд.
// @Tags Auth
// @Param code query string true "Код авторизации от провайдера"
// @Success 302
// @Failure 400 {object} response.ErrorResponse "Отсутствует код авторизации"
// @Failure 502 {object} response.ErrorResponse "Ошибка OAuth-провайдера"
// @Router /auth/callback [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.callback"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	code := r.URL.Query().Get("code")
	if code == "" {
		log.Error("authorization code is missing")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("authorization code is missing"))
		return
	}

	user, access, refresh, err := h.service.Callback(r.Context(), code)
	if err != nil {
		if errors.Is(err, yandex.ErrExchangeFailed) || errors.Is(err, yandex.ErrProfileFetchFailed) {
			log.Error("oauth provider failure", sl.Err(err))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, response.Error("oauth provider error"))
			return
		}
		log.Error("failed to complete oauth login", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not complete login"))
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
	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    refresh,
		Path:     "/",
		MaxAge:   int(h.refreshTTL.Seconds()),
		HttpOnly: true,
		Secure:   true,
	})

	log.Info("oauth login completed", slog.String("user_uid", user.UID))
	http.Redirect(w, r, h.frontendHome, http.StatusFound)
}
