package apikey

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

const (
	keyPrefix = "hl_"
	prefixLen = 12
)

var ErrMalformedKey = errors.New("malformed api key")

// newPrefix returns the public lookup part of a key.
func newPrefix() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return id[:prefixLen]
}

func formatKey(prefix, secret string) string {
	return keyPrefix + prefix + "_" + secret
}

// parseKey splits a plaintext key of the form hl_<prefix>_<secret>.
func parseKey(raw string) (prefix, secret string, err error) {
	rest, ok := strings.CutPrefix(raw, keyPrefix)
	if !ok {
		return "", "", ErrMalformedKey
	}

	prefix, secret, ok = strings.Cut(rest, "_")
	if !ok || len(prefix) != prefixLen || secret == "" {
		return "", "", ErrMalformedKey
	}

	return prefix, secret, nil
}
