package apikey_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ferdiebergado/hireloop/internal/apikey"
	"github.com/ferdiebergado/hireloop/internal/identity"
	"github.com/ferdiebergado/hireloop/internal/pkg/web"
)

const header = "X-API-Key"

func TestRequireAPIKey(t *testing.T) {
	t.Parallel()

	authn := &apikey.StubAuthenticator{
		AuthenticateFunc: func(_ context.Context, raw string) (*apikey.APIKey, error) {
			switch raw {
			case "good":
				return &apikey.APIKey{ID: "k1", TenantID: tenantID, Scopes: []string{apikey.ScopeJobsRead}}, nil
			case "revoked":
				return nil, apikey.ErrRevoked
			case "broken":
				return nil, errors.New("db down")
			default:
				return nil, apikey.ErrInvalidKey
			}
		},
	}

	allow := &apikey.StubLimiter{AllowFunc: func(string) (bool, time.Duration) { return true, 0 }}
	deny := &apikey.StubLimiter{AllowFunc: func(string) (bool, time.Duration) { return false, 1500 * time.Millisecond }}

	tests := []struct {
		name       string
		key        string
		scope      string
		limiter    apikey.RateLimiter
		code       int
		retryAfter string
	}{
		{"valid key with scope", "good", apikey.ScopeJobsRead, allow, http.StatusOK, ""},
		{"missing key", "", apikey.ScopeJobsRead, allow, http.StatusUnauthorized, ""},
		{"unknown key", "nope", apikey.ScopeJobsRead, allow, http.StatusUnauthorized, ""},
		{"revoked key", "revoked", apikey.ScopeJobsRead, allow, http.StatusUnauthorized, ""},
		{"missing scope", "good", apikey.ScopeJobsWrite, allow, http.StatusForbidden, ""},
		{"rate limited", "good", apikey.ScopeJobsRead, deny, http.StatusTooManyRequests, "2"},
		{"lookup failure", "broken", apikey.ScopeJobsRead, allow, http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got identity.Principal
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got, _ = identity.FromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs", http.NoBody)
			if tt.key != "" {
				req.Header.Set(header, tt.key)
			}
			rec := httptest.NewRecorder()

			apikey.RequireAPIKey(authn, tt.limiter, header, tt.scope)(handler).ServeHTTP(rec, req)

			if rec.Code != tt.code {
				t.Fatalf("rec.Code = %d, want: %d", rec.Code, tt.code)
			}

			if got := rec.Header().Get(web.HeaderRetryAfter); got != tt.retryAfter {
				t.Errorf("Retry-After = %q, want: %q", got, tt.retryAfter)
			}

			if tt.code == http.StatusOK && (got.TenantID != tenantID || got.Role != identity.RoleAPI) {
				t.Errorf("principal = %+v", got)
			}
		})
	}
}
