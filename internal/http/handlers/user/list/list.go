// Package list реализует HTTP-обработчик поиска и постраничного вывода
// учётных записей.
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

// Handler возвращает страницу учётных записей по фильтру.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики поиска учётных записей.
type Service interface {
	List(ctx context.Context, filter models.UserFilter) ([]*models.User, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список учётных записей
// @Description Возвращает сотрудников по фильтрам с пагинацией. Строковые фильтры ищут подстроку без учёта регистра.
// @Tags Users
// @Produce json
// @Param name query string false "Фильтр по имени"
// @Param surname query string false "Фильтр по фамилии"
// @Param patronymic query string false "Фильтр по отчеству"
// @Param email query string false "Фильтр по email"
// @Param phone query string false "Фильтр по телефону"
// @Param telegram_link query string false "Фильтр по ссылке Telegram"
// @Param post query string false "Фильтр по должности"
// @Param team query string false "Фильтр по команде"
// @Param role query string false "Точная роль"
// @Param status query string false "Точный статус"
// @Param limit query int false "Размер страницы (по умолчанию 100)"
// @Param offset query int false "Смещение"
// @Success 200 {object} response.Response
// @Router /users [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	q := r.URL.Query()
	filter := models.UserFilter{
		Name:         q.Get("name"),
		Surname:      q.Get("surname"),
		Patronymic:   q.Get("patronymic"),
		Email:        q.Get("email"),
		Phone:        q.Get("phone"),
		TelegramLink: q.Get("telegram_link"),
		Post:         q.Get("post"),
		Team:         q.Get("team"),
		Role:         q.Get("role"),
		Status:       q.Get("status"),
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		filter.Limit = v
	}
	if v, err := strconv.Atoi(q.Get("offset")); err == nil {
		filter.Offset = v
	}

	users, err := h.service.List(r.Context(), filter)
	if err != nil {
		log.Error("failed to list users", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list users"))
		return
	}

	log.Info("users listed", slog.Int("count", len(users)))
	render.JSON(w, r, response.StatusOKWithData(users))
}
