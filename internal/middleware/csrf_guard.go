package middleware

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/ferdiebergado/hireloop/internal/config"
	"github.com/ferdiebergado/hireloop/internal/pkg/message"
	"github.com/ferdiebergado/hireloop/internal/pkg/web"
)

var ErrCSRF = errors.New("csrf check failed")

// CSRFGuard implements the double-submit cookie check for cookie-authenticated endpoints.
// Safe methods receive a fresh CSRF cookie when none is present. Unsafe methods must send
// the cookie value back in the CSRF header, and the cookie signature must be valid.
func CSRFGuard(cfg *config.CSRF, baker web.Baker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cfg.CookieName)

			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				if err != nil || cookie.Value == "" {
					csrfCookie, bakeErr := baker.Bake()
					if bakeErr != nil {
						web.RespondInternalServerError(w, bakeErr)
						return
					}
					http.SetCookie(w, csrfCookie)
				}
				next.ServeHTTP(w, r)
				return
			}

			if err != nil || cookie.Value == "" {
				web.RespondForbidden(w, errors.Join(ErrCSRF, errors.New("cookie missing")), message.InvalidInput, nil)
				return
			}

			sent := r.Header.Get(cfg.HeaderName)
			if subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(sent)) == 0 {
				web.RespondForbidden(w, errors.Join(ErrCSRF, errors.New("header does not match cookie")), message.InvalidInput, nil)
				return
			}

			if err := baker.Check(cookie); err != nil {
				web.RespondForbidden(w, errors.Join(ErrCSRF, err), message.InvalidInput, nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
