package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ferdiebergado/hireloop/internal/config"
	"github.com/ferdiebergado/hireloop/internal/pkg/web"
)

var ErrInvalidCSRFToken = errors.New("invalid csrf token")

var _ web.Baker = (*CSRFCookieBaker)(nil)

// CSRFCookieBaker issues double-submit CSRF cookies of the form token:signature.
type CSRFCookieBaker struct {
	name       string
	length     uint32
	expiration time.Duration
	pepper     string
}

func NewCSRFCookieBaker(cfg *config.CSRF, securityKey string) *CSRFCookieBaker {
	return &CSRFCookieBaker{
		name:       cfg.CookieName,
		length:     cfg.TokenLen,
		expiration: cfg.MaxAge.Duration,
		pepper:     securityKey,
	}
}

func (c *CSRFCookieBaker) sign(token string) string {
	h := hmac.New(sha256.New, []byte(c.pepper))
	h.Write([]byte(token))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}

func (c *CSRFCookieBaker) Bake() (*http.Cookie, error) {
	token, err := GenerateRandomBytesURLEncoded(c.length)
	if err != nil {
		return nil, err
	}

	csrfCookie := NewSecureCookie(c.name, token+":"+c.sign(token), c.expiration)
	// Readable by scripts so it can be echoed in the request header.
	csrfCookie.HttpOnly = false

	return csrfCookie, nil
}

// Check verifies the signature of the provided CSRF cookie.
func (c *CSRFCookieBaker) Check(csrfCookie *http.Cookie) error {
	token, sig, ok := strings.Cut(csrfCookie.Value, ":")
	if !ok || token == "" {
		return fmt.Errorf("split signed token: %w", ErrInvalidCSRFToken)
	}

	sigBytes, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil {
		return fmt.Errorf("base64 decode signature: %w", err)
	}

	expected, _ := base64.RawURLEncoding.DecodeString(c.sign(token))
	if !hmac.Equal(sigBytes, expected) {
		return fmt.Errorf("hmac compare: %w", ErrInvalidCSRFToken)
	}
	return nil
}
