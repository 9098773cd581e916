package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
)

// SHA256Hash returns the HMAC-SHA256 of plain keyed by key.
func SHA256Hash(plain, key string) []byte {
	h := hmac.New(sha256.New, []byte(key))
	h.Write([]byte(plain))
	return h.Sum(nil)
}

// ShortHasher hashes high-entropy secrets such as API keys, where a slow password hash is unnecessary.
type ShortHasher interface {
	Hash(plain string) string
	Verify(plain, hashed string) bool
}

type SHA256Hasher struct {
	securityKey string
}

var _ ShortHasher = (*SHA256Hasher)(nil)

func NewSHA256Hasher(key string) *SHA256Hasher {
	return &SHA256Hasher{
		securityKey: key,
	}
}

// Hash returns the hex-encoded HMAC of plain.
func (h *SHA256Hasher) Hash(plain string) string {
	return hex.EncodeToString(SHA256Hash(plain, h.securityKey))
}

// Verify compares in constant time.
func (h *SHA256Hasher) Verify(plain, hashed string) bool {
	want, err := hex.DecodeString(hashed)
	if err != nil {
		return false
	}
	return hmac.Equal(SHA256Hash(plain, h.securityKey), want)
}

func ExtractBearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", errors.New("missing Authorization header")
	}
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", errors.New("missing Bearer prefix")
	}
	return strings.TrimSpace(header[len(prefix):]), nil
}
