package middleware

import (
	"net/http"

	"github.com/ferdiebergado/hireloop/internal/pkg/web"
)

// ContextGuard rejects requests whose context is already cancelled or expired.
func ContextGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.Context().Err(); err != nil {
			web.RespondRequestTimeout(w, err)
			return
		}

		next.ServeHTTP(w, r)
	})
}
