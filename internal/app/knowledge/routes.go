// Package knowledge предоставляет маршруты сервиса базы знаний.
package knowledge

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/mashagrib/knowledge-base/internal/config"
	"github.com/mashagrib/knowledge-base/internal/http/handlers/article/create"
	"github.com/mashagrib/knowledge-base/internal/http/handlers/article/list"
	"github.com/mashagrib/knowledge-base/internal/http/handlers/article/read"
	"github.com/mashagrib/knowledge-base/internal/http/handlers/article/remove"
	"github.com/mashagrib/knowledge-base/internal/http/handlers/article/updateblock"
	"github.com/mashagrib/knowledge-base/internal/http/handlers/article/updateblocks"
	"github.com/mashagrib/knowledge-base/internal/http/handlers/article/updateinfo"
	"github.com/mashagrib/knowledge-base/internal/http/middlewarectx"
	"github.com/mashagrib/knowledge-base/internal/models"
	knowledgeservice "github.com/mashagrib/knowledge-base/internal/services/knowledge"
)

// RegisterRoutes регистрирует все маршруты сервиса базы знаний.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config,
	knowledgeService *knowledgeservice.KnowledgeService, tokenParser middlewarectx.TokenParser) {
	validate := validator.New()

	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.CORSMiddleware(cfg.AllowedOrigin),
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(tokenParser, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/articles", list.New(logger, knowledgeService).ServeHTTP)
			r.Get("/articles/{id}", read.New(logger, knowledgeService).ServeHTTP)

			// Изменения только для администратора и редактора
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRoles(logger, models.RoleAdmin, models.RoleEditor))
				r.Post("/articles", create.New(logger, knowledgeService, validate).ServeHTTP)
				r.Patch("/articles/{id}", updateinfo.New(logger, knowledgeService).ServeHTTP)
				r.Put("/articles/{id}/blocks", updateblocks.New(logger, knowledgeService, validate).ServeHTTP)
				r.Patch("/articles/blocks/{block_id}", updateblock.New(logger, knowledgeService, validate).ServeHTTP)
				r.Delete("/articles/{id}", remove.New(logger, knowledgeService).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
