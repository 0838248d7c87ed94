// Package middlewarectx содержит HTTP middleware обоих сервисов:
// проверку access-токена из cookie, CORS, проверку роли и ограничение
// частоты запросов.
//
// JWTMiddleware проверяет подпись и срок действия access-токена и в случае
// успеха добавляет в контекст uid пользователя и роль для обработчиков.
// В случае ошибки проверки возвращает HTTP 401 Unauthorized.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	jwtlib "github.com/mashagrib/knowledge-base/internal/lib/jwt"
	"github.com/mashagrib/knowledge-base/internal/http/response"
	"github.com/mashagrib/knowledge-base/internal/lib/sl"
)

// AccessTokenCookie имя cookie с access-токеном.
const AccessTokenCookie = "access_token"

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// UserUID — ключ для uid пользователя в контексте
	UserUID Key = "user_uid"
	// Role — ключ для роли пользователя в контексте
	Role Key = "role"
)

// TokenParser описывает интерфейс разбора access-токена.
type TokenParser interface {
	ParseToken(tokenStr string) (*jwtlib.CustomClaims, error)
}

// JWTMiddleware возвращает HTTP middleware, который проверяет access-токен
// из cookie. Проверка без состояния: сервер ничего не хранит о сессии,
// кроме самого токена и refresh-токена в хранилище.
//
// Если токен валиден, добавляет uid пользователя и роль в контекст запроса,
// иначе возвращает ошибку с HTTP статусом 401 Unauthorized.
func JWTMiddleware(parser TokenParser, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			cookie, err := r.Cookie(AccessTokenCookie)
			if err != nil || cookie.Value == "" {
				log.Error("missing access token cookie")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Detail("Not authenticated"))
				return
			}

			claims, err := parser.ParseToken(cookie.Value)
			if err != nil {
				log.Error("invalid or expired access token", sl.Err(err))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Detail("Invalid token"))
				return
			}

			ctx := context.WithValue(r.Context(), UserUID, claims.UserUID())
			ctx = context.WithValue(ctx, Role, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
