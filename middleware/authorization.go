// middleware/authorization.go
package middleware

import (
	"net/http"

	"mundosolar.mx/backend/utils"
)

// RequirePermission gates a handler on the central authorization policy.
// Role checks live in utils.Can, never inline in handlers.
func RequirePermission(resource, action string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role := GetRole(r)
		if role == "" {
			http.Error(w, "no autenticado", http.StatusUnauthorized)
			return
		}
		if !utils.Can(role, resource, action) {
			http.Error(w, "permiso denegado", http.StatusForbidden)
			return
		}
		next(w, r)
	}
}

// SecurityMiddleware sets baseline response headers.
func SecurityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}
