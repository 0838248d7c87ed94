// Package authorization предоставляет маршруты сервиса авторизации.
package authorization

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/mashagrib/knowledge-base/internal/config"
	"github.com/mashagrib/knowledge-base/internal/http/handlers/auth/callback"
	"github.com/mashagrib/knowledge-base/internal/http/handlers/auth/login"
	"github.com/mashagrib/knowledge-base/internal/http/handlers/auth/logout"
	"github.com/mashagrib/knowledge-base/internal/http/handlers/auth/refresh"
	"github.com/mashagrib/knowledge-base/internal/http/handlers/user/create"
	"github.com/mashagrib/knowledge-base/internal/http/handlers/user/list"
	"github.com/mashagrib/knowledge-base/internal/http/handlers/user/me"
	"github.com/mashagrib/knowledge-base/internal/http/handlers/user/read"
	"github.com/mashagrib/knowledge-base/internal/http/handlers/user/remove"
	"github.com/mashagrib/knowledge-base/internal/http/handlers/user/update"
	"github.com/mashagrib/knowledge-base/internal/http/middlewarectx"
	authservice "github.com/mashagrib/knowledge-base/internal/services/auth"
	userservice "github.com/mashagrib/knowledge-base/internal/services/user"
	"github.com/mashagrib/knowledge-base/internal/models"
)

// RegisterRoutes регистрирует все маршруты сервиса авторизации.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config,
	authService *authservice.AuthService, userService *userservice.UserService,
	tokenParser middlewarectx.TokenParser) {
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
		// Открытые конечные точки
		r.Get("/auth/login", login.New(logger, authService).ServeHTTP)
		r.Get("/auth/callback", callback.New(logger, authService, cfg.FrontendHomeURL,
			cfg.AccessTokenTTL, cfg.RefreshTokenTTL).ServeHTTP)
		r.Post("/auth/refresh", refresh.New(logger, authService, cfg.AccessTokenTTL).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(tokenParser, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Post("/auth/logout", logout.New(logger, authService).ServeHTTP)

			r.Get("/users/me", me.New(logger, userService).ServeHTTP)
			r.Patch("/users/me", update.NewSelf(logger, userService, validate).ServeHTTP)
			r.Get("/users", list.New(logger, userService).ServeHTTP)
			r.Get("/users/{uid}", read.New(logger, userService).ServeHTTP)

			// Управление учётными записями только для администратора
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRoles(logger, models.RoleAdmin))
				r.Post("/users", create.New(logger, userService, validate).ServeHTTP)
				r.Patch("/users/{uid}", update.New(logger, userService, validate).ServeHTTP)
				r.Delete("/users/{uid}", remove.New(logger, userService).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
