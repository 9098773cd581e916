package event_test

import (
	"testing"

	"github.com/ferdiebergado/hireloop/internal/event"
)

func TestValid(t *testing.T) {
	t.Parallel()

	for _, typ := range append(event.Types(), event.Wildcard) {
		if !event.Valid(typ) {
			t.Errorf("Valid(%q) = false, want: true", typ)
		}
	}

	for _, typ := range []string{"", "job", "application.*", "job.deleted"} {
		if event.Valid(typ) {
			t.Errorf("Valid(%q) = true, want: false", typ)
		}
	}
}
