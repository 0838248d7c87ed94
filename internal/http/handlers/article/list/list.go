// Package list реализует HTTP-обработчик списка статей категории
// в краткой форме, без блоков содержимого.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/mashagrib/knowledge-base/internal/http/response"
	"github.com/mashagrib/knowledge-base/internal/lib/sl"
	"github.com/mashagrib/knowledge-base/internal/models"
)

// defaultLimit применяется, когда клиент не задал размер страницы.
const defaultLimit = 100

// Handler возвращает статьи категории постранично.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка статей.
type Service interface {
	ListByCategory(ctx context.Context, category string, limit, offset int) ([]*models.ArticleShort, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Статьи категории
// @Description Возвращает краткие формы статей указанной категории.
// @Tags Articles
// @Produce json
// @Param category query string true "Категория"
// @Param limit query int false "Размер страницы (по умолчанию 100)"
// @Param offset query int false "Смещение"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Категория не указана"
// @Router /articles [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.article.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	q := r.URL.Query()
	category := q.Get("category")
	if category == "" {
		log.Error("category is missing")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("category is required"))
		return
	}

	limit := defaultLimit
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 {
		limit = v
	}
	offset := 0
	if v, err := strconv.Atoi(q.Get("offset")); err == nil && v > 0 {
		offset = v
	}

	articles, err := h.service.ListByCategory(r.Context(), category, limit, offset)
	if err != nil {
		log.Error("failed to list articles", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list articles"))
		return
	}

	log.Info("articles listed", slog.String("category", category), slog.Int("count", len(articles)))
	render.JSON(w, r, response.StatusOKWithData(articles))
}
