package middleware

import (
	"net/http"
	"time"
)

type RequestObserver interface {
	ObserveRequest(method string, status int, d time.Duration)
}

// Instrument reports the method, status and latency of every request to observer.
func Instrument(observer RequestObserver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			status, _ := statusOf(w)
			observer.ObserveRequest(r.Method, status, time.Since(start))
		})
	}
}
