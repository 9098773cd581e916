package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	HeaderTimestamp = "X-Hireloop-Timestamp"
	HeaderSignature = "X-Hireloop-Signature"
	HeaderEventID   = "X-Hireloop-Event-Id"
	HeaderEventType = "X-Hireloop-Event-Type"

	signaturePrefix = "sha256="
)

var (
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrStaleTimestamp   = errors.New("webhook timestamp outside tolerance")
)

// Sign returns the signature header value for body sent at ts.
// The MAC covers "<ts>.<body>".
func Sign(secret string, ts int64, body []byte) string {
	return signaturePrefix + hex.EncodeToString(mac(secret, ts, body))
}

// SignRequest sets the timestamp and signature headers of req.
func SignRequest(req *http.Request, secret string, body []byte, now time.Time) {
	ts := now.Unix()
	req.Header.Set(HeaderTimestamp, strconv.FormatInt(ts, 10))
	req.Header.Set(HeaderSignature, Sign(secret, ts, body))
}

// Verify checks a signature produced by Sign. The timestamp must be within
// tolerance of now in either direction.
func Verify(secret, tsHeader, sigHeader string, body []byte, now time.Time, tolerance time.Duration) error {
	ts, err := strconv.ParseInt(strings.TrimSpace(tsHeader), 10, 64)
	if err != nil {
		return ErrInvalidSignature
	}

	skew := now.Sub(time.Unix(ts, 0))
	if skew < 0 {
		skew = -skew
	}
	if skew > tolerance {
		return ErrStaleTimestamp
	}

	hexSig, ok := strings.CutPrefix(strings.TrimSpace(sigHeader), signaturePrefix)
	if !ok {
		return ErrInvalidSignature
	}

	got, err := hex.DecodeString(hexSig)
	if err != nil {
		return ErrInvalidSignature
	}

	if !hmac.Equal(got, mac(secret, ts, body)) {
		return ErrInvalidSignature
	}
	return nil
}

func mac(secret string, ts int64, body []byte) []byte {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(strconv.FormatInt(ts, 10)))
	h.Write([]byte("."))
	h.Write(body)
	return h.Sum(nil)
}
