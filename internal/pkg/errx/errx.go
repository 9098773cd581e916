package errx

import (
	"context"
	"errors"
)

// IsContextError reports whether err was caused by a cancelled or expired context.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
