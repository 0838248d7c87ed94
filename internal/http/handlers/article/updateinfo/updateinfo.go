// Package updateinfo реализует HTTP-обработчик обновления заголовка,
// описания и категории статьи без затрагивания блоков.
package updateinfo

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/mashagrib/knowledge-base/internal/http/response"
	"github.com/mashagrib/knowledge-base/internal/lib/sl"
	"github.com/mashagrib/knowledge-base/internal/models"
	"github.com/mashagrib/knowledge-base/internal/storage"
)

// Handler обновляет метаданные статьи.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики обновления метаданных.
type Service interface {
	UpdateInfo(ctx context.Context, id int, upd models.ArticleInfoUpdate) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Обновить метаданные статьи
// @Description Частично обновляет заголовок, описание и категорию.
// @Tags Articles
// @Accept json
// @Produce json
// @Param id path int true "ID статьи"
// @Param request body models.ArticleInfoUpdate true "Обновляемые поля"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Некорректный ID или тело запроса"
// @Failure 404 {object} response.ErrorResponse "Статья не найдена"
// @Router /articles/{id} [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.updateinfo"
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

	var req models.ArticleInfoUpdate
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.service.UpdateInfo(r.Context(), id, req); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Error("article not found", slog.Int("article_id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("article not found"))
			return
		}
		log.Error("failed to update article info", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update article"))
		return
	}

	log.Info("article info updated", slog.Int("article_id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "updated",
	}))
}
