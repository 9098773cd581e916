package security

import (
	"net/http"
	"time"
)

// NewSecureCookie returns an HttpOnly, Secure, SameSite=Strict cookie.
// A negative maxAge deletes the cookie.
func NewSecureCookie(name, val string, maxAge time.Duration) *http.Cookie {
	cookie := &http.Cookie{
		Name:     name,
		Value:    val,
		Path:     "/",
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}

	switch {
	case maxAge < 0:
		cookie.MaxAge = -1
	case maxAge > 0:
		cookie.MaxAge = int(maxAge.Seconds())
	}

	return cookie
}
