package middleware

import (
	"net/http"
	"slices"
	"strings"
)

const (
	HeaderAllowOrigin  = "Access-Control-Allow-Origin"
	HeaderAllowMethods = "Access-Control-Allow-Methods"
	HeaderAllowHeaders = "Access-Control-Allow-Headers"
	HeaderAllowCreds   = "Access-Control-Allow-Credentials"
	HeaderExposeHeader = "Access-Control-Expose-Headers"

	AllowedMethods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"
)

// CORS allows credentialed requests from the listed origins. A "*" entry allows any
// origin without credentials. Preflight requests are answered with 204.
func CORS(allowedOrigins []string, allowedHeaders []string) func(http.Handler) http.Handler {
	allowAny := slices.Contains(allowedOrigins, "*")
	headers := strings.Join(allowedHeaders, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			h := w.Header()
			h.Add("Vary", "Origin")

			switch {
			case origin != "" && slices.Contains(allowedOrigins, origin):
				h.Set(HeaderAllowOrigin, origin)
				h.Set(HeaderAllowCreds, "true")
			case allowAny:
				h.Set(HeaderAllowOrigin, "*")
			default:
				next.ServeHTTP(w, r)
				return
			}

			h.Set(HeaderAllowMethods, AllowedMethods)
			h.Set(HeaderAllowHeaders, headers)
			h.Set(HeaderExposeHeader, "Retry-After")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
