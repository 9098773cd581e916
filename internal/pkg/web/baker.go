package web

import "net/http"

// Baker issues signed cookies and checks the ones sent back, as used by the CSRF guard.
type Baker interface {
	Bake() (*http.Cookie, error)
	Check(*http.Cookie) error
}
