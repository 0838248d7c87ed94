package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/mashagrib/knowledge-base/internal/http/response"
)

// Allowed сообщает, входит ли роль в список допустимых.
// Пустой список означает, что достаточно любой аутентифицированной роли.
func Allowed(role string, allowedRoles []string) bool {
	if len(allowedRoles) == 0 {
		return true
	}
	for _, allowed := range allowedRoles {
		if role == allowed {
			return true
		}
	}
	return false
}

// RequireRoles возвращает middleware, пропускающий запрос только при роли
// из списка. Проверка идентичности остаётся за JWTMiddleware, здесь
// проверяется лишь право доступа.
func RequireRoles(log *slog.Logger, allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := r.Context().Value(Role).(string)
			if !ok || role == "" {
				log.Error("role missing in request context")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Detail("Not authenticated"))
				return
			}

			if !Allowed(role, allowedRoles) {
				log.Error("access denied", slog.String("role", role))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("insufficient permissions"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
