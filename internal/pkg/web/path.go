package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

var ErrInvalidID = errors.New("invalid id")

// PathID returns the named path value when it is a valid UUID.
// Handlers answer 404 for malformed ids, as no such resource can exist.
func PathID(r *http.Request, name string) (string, error) {
	raw := r.PathValue(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w %q: %w", ErrInvalidID, raw, err)
	}
	return id.String(), nil
}
