package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ferdiebergado/hireloop/internal/middleware"
	"github.com/ferdiebergado/hireloop/internal/pkg/message"
)

func TestContextGuard(t *testing.T) {
	t.Parallel()

	expired := func() context.Context {
		ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
		t.Cleanup(cancel)
		return ctx
	}
	cancelled := func() context.Context {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		return ctx
	}

	tests := []struct {
		name       string
		ctx        func() context.Context
		wantCode   int
		wantCalled bool
	}{
		{"Live request", context.Background, http.StatusNoContent, true},
		{"Client went away", cancelled, http.StatusRequestTimeout, false},
		{"Deadline passed", expired, http.StatusRequestTimeout, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			called := false
			handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				called = true
				w.WriteHeader(http.StatusNoContent)
			})

			req := httptest.NewRequestWithContext(tc.ctx(), http.MethodGet, "/applications", http.NoBody)
			rec := httptest.NewRecorder()
			middleware.ContextGuard(handler).ServeHTTP(rec, req)

			if rec.Code != tc.wantCode {
				t.Errorf(message.FmtErrStatusCode, rec.Code, tc.wantCode)
			}
			if called != tc.wantCalled {
				t.Errorf("handler called = %t, want: %t", called, tc.wantCalled)
			}
		})
	}
}
