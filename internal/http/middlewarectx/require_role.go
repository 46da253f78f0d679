package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/bsanthoshbsr/elearning-platform/internal/http/response"
)

// RequireRole создает middleware, пропускающий запрос только при совпадении
// роли из токена с требуемой. Каждая защищённая операция объявляет ровно
// одну требуемую роль.
func RequireRole(requiredRole string, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := r.Context().Value(Role).(string)
			if !ok || role == "" {
				log.Error("role missing in request context")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error(response.KindUnauthorized, "unauthorized"))
				return
			}

			if role != requiredRole {
				log.Error("role mismatch",
					slog.String("required", requiredRole), slog.String("actual", role))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error(response.KindForbidden, "access denied for this role"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
