// Package updateblocks реализует HTTP-обработчик полной замены блоков статьи.
package updateblocks

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/mashagrib/knowledge-base/internal/http/response"
	"github.com/mashagrib/knowledge-base/internal/lib/sl"
	"github.com/mashagrib/knowledge-base/internal/models"
	"github.com/mashagrib/knowledge-base/internal/storage"
)

// Handler заменяет все блоки статьи новым списком.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики замены блоков.
type Service interface {
	ReplaceBlocks(ctx context.Context, articleID int, req models.DummyBlocksUpdate) error
}

// New создает новый Handler с переданными логгером, сервисом и валидатором.
func New(log *slog.Logger, service Service, validate *validator.Validate) *Handler {
	return &Handler{log: log, service: service, validate: validate}
}

// ServeHTTP godoc
// @Summary Заменить блоки статьи
// @Description Удаляет старые блоки и сохраняет новый список целиком.
// @Tags Articles
// @Accept json
// @Produce json
// @Param id path int true "ID статьи"
// @Param request body models.DummyBlocksUpdate true "Новый список блоков"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Некорректный ID или тело запроса"
// @Failure 404 {object} response.ErrorResponse "Статья не найдена"
// @Router /articles/{id}/blocks [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.updateblocks"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		log.Error("invalid article id", slog.String("id", chi.URLParam(r, "id")))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid article id"))
		return
	}

	var req models.DummyBlocksUpdate
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

	if err := h.service.ReplaceBlocks(r.Context(), id, req); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Error("article not found", slog.Int("article_id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("article not found"))
			return
		}
		log.Error("failed to replace article blocks", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update blocks"))
		return
	}

	log.Info("article blocks replaced", slog.Int("article_id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "updated",
	}))
}
