// Package update реализует HTTP-обработчики частичного обновления профиля:
// администратором по UID и пользователем собственного профиля.
package update

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"github.com/google/uuid"

	"github.com/mashagrib/knowledge-base/internal/http/middlewarectx"
	"github.com/mashagrib/knowledge-base/internal/http/response"
	"github.com/mashagrib/knowledge-base/internal/lib/sl"
	"github.com/mashagrib/knowledge-base/internal/models"
	"github.com/mashagrib/knowledge-base/internal/storage"
)

// Handler применяет частичное обновление учётной записи.
// Поле self переключает источник UID: path-параметр или контекст запроса.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
	self     bool
}

// Service описывает интерфейс бизнес-логики обновления учётной записи.
type Service interface {
	Update(ctx context.Context, userUID string, upd models.UserUpdate) (*models.User, error)
}

// New создает Handler обновления по UID из path-параметра (администратор).
func New(log *slog.Logger, service Service, validate *validator.Validate) *Handler {
	return &Handler{log: log, service: service, validate: validate}
}

// NewSelf создает Handler обновления собственного профиля: UID берется
// из контекста аутентифицированного запроса.
func NewSelf(log *slog.Logger, service Service, validate *validator.Validate) *Handler {
	return &Handler{log: log, service: service, validate: validate, self: true}
}

// ServeHTTP godoc
// @Summary Обновить учётную запись
// @Description Частично обновляет поля профиля. Пустые поля не затрагиваются.
// @Tags Users
// @Accept json
// @Produce json
// @Param uid path string false "UID пользователя (для администратора)"
// @Param request body models.UserUpdate true "Обновляемые поля"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Некорректный UID или тело запроса"
// @Failure 404 {object} response.ErrorResponse "Учётная запись не найдена"
// @Router /users/{uid} [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.update"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var userUID string
	if h.self {
		uid, ok := r.Context().Value(middlewarectx.UserUID).(string)
		if !ok || uid == "" {
			log.Error("user uid not found in context")
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Detail("Not authenticated"))
			return
		}
		userUID = uid
	} else {
		userUID = chi.URLParam(r, "uid")
		if _, err := uuid.Parse(userUID); err != nil {
			log.Error("invalid user uid", slog.String("uid", userUID))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid user uid"))
			return
		}
	}

	var req models.UserUpdate
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		var validateErrs validator.ValidationErrors
		if errors.As(err, &validateErrs) {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErrs))
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	user, err := h.service.Update(r.Context(), userUID, req)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Error("user not found", slog.String("user_uid", userUID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
			return
		}
		log.Error("failed to update user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update user"))
		return
	}

	log.Info("user updated", slog.String("user_uid", userUID))
	render.JSON(w, r, response.StatusOKWithData(user))
}
