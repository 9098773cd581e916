package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ferdiebergado/hireloop/internal/config"
	"github.com/ferdiebergado/hireloop/internal/middleware"
	"github.com/ferdiebergado/hireloop/internal/pkg/security"
)

func TestCSRFGuard(t *testing.T) {
	t.Parallel()

	cfg := &config.CSRF{CookieName: "csrf_token", HeaderName: "X-CSRF-Token"}
	baked := &http.Cookie{Name: "csrf_token", Value: "tok:sig"}

	tests := []struct {
		name       string
		method     string
		cookie     string
		header     string
		checkErr   error
		code       int
		wantCookie bool
	}{
		{"GET without cookie sets one", http.MethodGet, "", "", nil, http.StatusOK, true},
		{"GET with cookie keeps it", http.MethodGet, "tok:sig", "", nil, http.StatusOK, false},
		{"POST with matching header", http.MethodPost, "tok:sig", "tok:sig", nil, http.StatusOK, false},
		{"POST without cookie", http.MethodPost, "", "tok:sig", nil, http.StatusForbidden, false},
		{"POST with mismatched header", http.MethodPost, "tok:sig", "other", nil, http.StatusForbidden, false},
		{"POST with forged signature", http.MethodPost, "tok:bad", "tok:bad", errors.New("mac mismatch"), http.StatusForbidden, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			baker := &security.StubBaker{
				BakeFunc: func() (*http.Cookie, error) { return baked, nil },
				CheckFunc: func(*http.Cookie) error {
					return tt.checkErr
				},
			}

			handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(tt.method, "/auth/refresh", http.NoBody)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: cfg.CookieName, Value: tt.cookie})
			}
			if tt.header != "" {
				req.Header.Set(cfg.HeaderName, tt.header)
			}
			rec := httptest.NewRecorder()

			middleware.CSRFGuard(cfg, baker)(handler).ServeHTTP(rec, req)

			if rec.Code != tt.code {
				t.Errorf("rec.Code = %d, want: %d", rec.Code, tt.code)
			}

			res := rec.Result()
			defer res.Body.Close()

			var gotCookie bool
			for _, c := range res.Cookies() {
				if c.Name == cfg.CookieName {
					gotCookie = true
				}
			}
			if gotCookie != tt.wantCookie {
				t.Errorf("csrf cookie set = %t, want: %t", gotCookie, tt.wantCookie)
			}
		})
	}
}
