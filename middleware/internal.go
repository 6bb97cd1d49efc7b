// middleware/internal.go
package middleware

import (
	"crypto/subtle"
	"net/http"
	"os"
)

// InternalTokenMiddleware protects the cron endpoints with a shared
// secret instead of a user session. The token travels in the
// X-Internal-Token header and is compared in constant time.
func InternalTokenMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expected := os.Getenv("INTERNAL_API_TOKEN")
		if expected == "" {
			http.Error(w, "endpoint interno deshabilitado", http.StatusForbidden)
			return
		}
		got := r.Header.Get("X-Internal-Token")
		if subtle.ConstantTimeCompare([]byte(got), []byte(expected)) != 1 {
			http.Error(w, "token interno inválido", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
