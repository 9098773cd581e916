package apikey

import (
	"context"
	"errors"
	"math"
	"net/http"
	"slices"
	"time"

	"github.com/ferdiebergado/hireloop/internal/identity"
	"github.com/ferdiebergado/hireloop/internal/pkg/message"
	"github.com/ferdiebergado/hireloop/internal/pkg/web"
)

var (
	ErrMissingKey   = errors.New("missing api key")
	ErrMissingScope = errors.New("api key lacks scope")
	ErrRateLimited  = errors.New("api key rate limited")
)

type Authenticator interface {
	Authenticate(ctx context.Context, raw string) (*APIKey, error)
}

type RateLimiter interface {
	Allow(key string) (bool, time.Duration)
}

// RequireAPIKey authenticates the key in header, checks that it grants scope and
// applies the key's rate limit. The principal of the key is stored in the context.
func RequireAPIKey(authn Authenticator, limiter RateLimiter, header, scope string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(header)
			if raw == "" {
				web.RespondUnauthorized(w, ErrMissingKey, message.InvalidAPIKey, nil)
				return
			}

			k, err := authn.Authenticate(r.Context(), raw)
			if err != nil {
				if errors.Is(err, ErrInvalidKey) || errors.Is(err, ErrRevoked) {
					web.RespondUnauthorized(w, err, message.InvalidAPIKey, nil)
					return
				}
				web.RespondInternalServerError(w, err)
				return
			}

			if scope != "" && !slices.Contains(k.Scopes, scope) {
				web.RespondForbidden(w, ErrMissingScope, message.Forbidden, nil)
				return
			}

			if ok, wait := limiter.Allow(k.ID); !ok {
				web.RespondTooManyRequests(w, ErrRateLimited, int(math.Ceil(wait.Seconds())))
				return
			}

			p := identity.Principal{
				TenantID: k.TenantID,
				Role:     identity.RoleAPI,
				Scopes:   k.Scopes,
			}
			next.ServeHTTP(w, r.WithContext(identity.ContextWith(r.Context(), p)))
		})
	}
}
