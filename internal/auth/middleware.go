package auth

import (
	"errors"
	"net/http"

	"github.com/ferdiebergado/hireloop/internal/identity"
	"github.com/ferdiebergado/hireloop/internal/pkg/message"
	"github.com/ferdiebergado/hireloop/internal/pkg/security"
	"github.com/ferdiebergado/hireloop/internal/pkg/web"
	"github.com/ferdiebergado/hireloop/internal/platform/jwt"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrForbiddenRole = errors.New("role not allowed")
)

// VerifyToken verifies the token in the url query string against audience
// and stores its principal in the request context.
func VerifyToken(signer jwt.Signer, audience string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.URL.Query().Get("token")
			if token == "" {
				web.RespondUnauthorized(w, ErrInvalidToken, message.InvalidUser, nil)
				return
			}

			claims, err := signer.Verify(token, audience)
			if err != nil {
				web.RespondUnauthorized(w, errors.Join(ErrInvalidToken, err), message.InvalidUser, nil)
				return
			}

			ctx := identity.ContextWith(r.Context(), principalOf(claims))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireToken authenticates the Bearer access token of the request.
func RequireToken(signer jwt.Signer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := security.ExtractBearerToken(r)
			if err != nil {
				web.RespondUnauthorized(w, err, message.InvalidUser, nil)
				return
			}

			claims, err := signer.Verify(token, jwt.AudienceAccess)
			if err != nil {
				web.RespondUnauthorized(w, errors.Join(ErrInvalidToken, err), message.InvalidUser, nil)
				return
			}

			ctx := identity.ContextWith(r.Context(), principalOf(claims))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole allows the request only when the authenticated principal has one of roles.
// It must run after RequireToken or apikey.RequireAPIKey.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, err := identity.FromContext(r.Context())
			if err != nil {
				web.RespondUnauthorized(w, err, message.InvalidUser, nil)
				return
			}

			if !p.HasRole(roles...) {
				web.RespondForbidden(w, ErrForbiddenRole, message.Forbidden, nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func principalOf(c *jwt.Claims) identity.Principal {
	return identity.Principal{
		UserID:   c.UserID,
		TenantID: c.TenantID,
		Role:     c.Role,
	}
}
