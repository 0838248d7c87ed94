// Package knowledge собирает сервис базы знаний: хранилище, миграции,
// кэш Redis и HTTP-сервер.
package knowledge

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/mashagrib/knowledge-base/internal/cache"
	"github.com/mashagrib/knowledge-base/internal/config"
	jwtlib "github.com/mashagrib/knowledge-base/internal/lib/jwt"
	"github.com/mashagrib/knowledge-base/internal/migrations"
	knowledgeservice "github.com/mashagrib/knowledge-base/internal/services/knowledge"
	"github.com/mashagrib/knowledge-base/internal/storage"
)

// App HTTP-сервер базы знаний со всеми зависимостями.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
	cache  *cache.Cache
}

// New создает приложение базы знаний: подключает хранилище, применяет
// миграции, подключает Redis и собирает маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwtlib.NewJWTMaker(cfg.JWTSecretKey, cfg.AccessTokenTTL)
	knowledgeService := knowledgeservice.New(db, cacheRedis, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, knowledgeService, jwtMaker)

	srv := &http.Server{
		Addr:         cfg.KnowledgeServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.KnowledgeServer.Timeout,
		WriteTimeout: cfg.KnowledgeServer.Timeout,
		IdleTimeout:  cfg.KnowledgeServer.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		_ = a.cache.Db.Close()
		return err
	}
}
