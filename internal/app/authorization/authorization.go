// Package authorization собирает сервис авторизации: хранилище, миграции,
// клиент Яндекс OAuth, брокер событий и HTTP-сервер.
package authorization

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/mashagrib/knowledge-base/internal/config"
	jwtlib "github.com/mashagrib/knowledge-base/internal/lib/jwt"
	"github.com/mashagrib/knowledge-base/internal/lib/rabbitmq"
	"github.com/mashagrib/knowledge-base/internal/migrations"
	authservice "github.com/mashagrib/knowledge-base/internal/services/auth"
	userservice "github.com/mashagrib/knowledge-base/internal/services/user"
	"github.com/mashagrib/knowledge-base/internal/storage"
	"github.com/mashagrib/knowledge-base/internal/yandex"
)

// App HTTP-сервер авторизации со всеми зависимостями.
type App struct {
	server     *http.Server
	logger     *slog.Logger
	db         *storage.Storage
	rabbitConn *amqp.Connection
}

// New создает приложение авторизации: подключает хранилище, применяет
// миграции, настраивает брокер (если задан) и собирает маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	var rabbitConn *amqp.Connection
	var notifier authservice.RegistrationNotifier
	if cfg.RabbitURL != "" {
		rabbitConn, err = rabbitmq.Connect(cfg.RabbitURL, 5, 2*time.Second)
		if err != nil {
			return nil, err
		}
		ch, err := rabbitmq.SetupChannel(rabbitConn, rabbitmq.GetRegistrationQueues())
		if err != nil {
			return nil, err
		}
		notifier = authservice.NewAmqpNotifier(ch)
	}

	jwtMaker := jwtlib.NewJWTMaker(cfg.JWTSecretKey, cfg.AccessTokenTTL)
	oauthClient := yandex.New(cfg.Yandex)

	authService := authservice.New(db, oauthClient, jwtMaker, notifier, cfg.RefreshTokenTTL, logger)
	userService := userservice.New(db, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, authService, userService, jwtMaker)

	srv := &http.Server{
		Addr:         cfg.AuthServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.AuthServer.Timeout,
		WriteTimeout: cfg.AuthServer.Timeout,
		IdleTimeout:  cfg.AuthServer.IdleTimeout,
	}

	return &App{
		server:     srv,
		logger:     logger,
		db:         db,
		rabbitConn: rabbitConn,
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
		if a.rabbitConn != nil {
			_ = a.rabbitConn.Close()
		}
		return err
	}
}
