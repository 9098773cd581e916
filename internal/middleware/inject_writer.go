package middleware

import "net/http"

// InjectWriter wraps the response writer in a SafeResponseWriter. It must be the
// outermost middleware so LogRequest and Instrument can read the status.
func InjectWriter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := w.(*SafeResponseWriter); ok {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(NewSafeResponseWriter(r.Context(), w), r)
	})
}
