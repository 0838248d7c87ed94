// Package updateblock реализует HTTP-обработчик обновления одного блока статьи.
package updateblock

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

// Handler обновляет отдельный блок по его идентификатору.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики обновления блока.
type Service interface {
	UpdateBlock(ctx context.Context, blockID int, req models.DummyBlock) (*models.ArticleBlock, error)
}

// New создает новый Handler с переданными логгером, сервисом и валидатором.
func New(log *slog.Logger, service Service, validate *validator.Validate) *Handler {
	return &Handler{log: log, service: service, validate: validate}
}

// ServeHTTP godoc
// @Summary Обновить блок статьи
// @Description Перезаписывает тип, содержимое и позицию одного блока.
// @Tags Articles
// @Accept json
// @Produce json
// @Param block_id path int true "ID блока"
// @Param request body models.DummyBlock true "Новое состояние блока"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Некорректный ID или тело запроса"
// @Failure 404 {object} response.ErrorResponse "Блок не найден"
// @Router /articles/blocks/{block_id} [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.updateblock"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	blockID, err := strconv.Atoi(chi.URLParam(r, "block_id"))
	if err != nil || blockID <= 0 {
		log.Error("invalid block id", slog.String("block_id", chi.URLParam(r, "block_id")))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid block id"))
		return
	}

	var req models.DummyBlock
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

	block, err := h.service.UpdateBlock(r.Context(), blockID, req)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Error("block not found", slog.Int("block_id", blockID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("block not found"))
			return
		}
		log.Error("failed to update block", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update block"))
		return
	}

	log.Info("article block updated", slog.Int("block_id", blockID))
	render.JSON(w, r, response.StatusOKWithData(block))
}
