package webhook_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/ferdiebergado/hireloop/internal/webhook"
)

func TestVerify(t *testing.T) {
	t.Parallel()

	const secret = "whsec_test"
	body := []byte(`{"event_id":"e1"}`)
	now := time.Unix(1_700_000_000, 0)
	ts := strconv.FormatInt(now.Unix(), 10)
	sig := webhook.Sign(secret, now.Unix(), body)

	tests := []struct {
		name    string
		ts, sig string
		body    []byte
		at      time.Time
		wantErr error
	}{
		{"valid", ts, sig, body, now, nil},
		{"within tolerance", ts, sig, body, now.Add(4 * time.Minute), nil},
		{"clock behind sender", ts, sig, body, now.Add(-4 * time.Minute), nil},
		{"expired", ts, sig, body, now.Add(6 * time.Minute), webhook.ErrStaleTimestamp},
		{"tampered body", ts, sig, []byte(`{"event_id":"e2"}`), now, webhook.ErrInvalidSignature},
		{"other secret", ts, webhook.Sign("whsec_other", now.Unix(), body), body, now, webhook.ErrInvalidSignature},
		{"missing prefix", ts, sig[len("sha256="):], body, now, webhook.ErrInvalidSignature},
		{"not hex", ts, "sha256=zz", body, now, webhook.ErrInvalidSignature},
		{"bad timestamp", "yesterday", sig, body, now, webhook.ErrInvalidSignature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := webhook.Verify(secret, tt.ts, tt.sig, tt.body, tt.at, 5*time.Minute)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Verify() = %v, want: %v", err, tt.wantErr)
			}
		})
	}
}

func TestSignRequest(t *testing.T) {
	t.Parallel()

	body := []byte(`{"id":"1"}`)
	now := time.Now()
	req := httptest.NewRequest(http.MethodPost, "/", http.NoBody)
	webhook.SignRequest(req, "s3cret", body, now)

	err := webhook.Verify("s3cret", req.Header.Get(webhook.HeaderTimestamp), req.Header.Get(webhook.HeaderSignature),
		body, now, time.Minute)
	if err != nil {
		t.Errorf("signed request does not verify: %v", err)
	}
}
