package webhook_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/ferdiebergado/hireloop/internal/config"
	timex "github.com/ferdiebergado/hireloop/internal/pkg/time"
	"github.com/ferdiebergado/hireloop/internal/webhook"
)

type outcomeCounter struct {
	mu       sync.Mutex
	outcomes map[string]int
}

func (c *outcomeCounter) ObserveDelivery(outcome string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.outcomes[outcome]++
}

func dispatcherCfg() *config.Webhook {
	return &config.Webhook{
		PollInterval: timex.Duration{Duration: time.Second},
		BatchSize:    10,
		Concurrency:  2,
		Timeout:      timex.Duration{Duration: 2 * time.Second},
		MaxAttempts:  3,
		BaseBackoff:  timex.Duration{Duration: time.Minute},
		MaxBackoff:   timex.Duration{Duration: time.Hour},
		Lease:        timex.Duration{Duration: 5 * time.Minute},
	}
}

func TestDispatcher_Tick(t *testing.T) {
	t.Parallel()

	const secret = "whsec_dispatch"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if err := webhook.Verify(secret, r.Header.Get(webhook.HeaderTimestamp), r.Header.Get(webhook.HeaderSignature),
			body, time.Now(), time.Minute); err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		switch r.URL.Path {
		case "/ok":
			w.WriteHeader(http.StatusNoContent)
		case "/gone":
			w.WriteHeader(http.StatusGone)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	t.Cleanup(srv.Close)

	claims := []webhook.Claim{
		{DeliveryID: "d-ok", EndpointID: "e-ok", EventID: "ev1", EventType: "job.published", Payload: []byte(`{}`), URL: srv.URL + "/ok", Secret: secret},
		{DeliveryID: "d-gone", EndpointID: "e-gone", EventID: "ev2", EventType: "job.published", Payload: []byte(`{}`), URL: srv.URL + "/gone", Secret: secret},
		{DeliveryID: "d-retry", EndpointID: "e-fail", EventID: "ev3", EventType: "job.published", Payload: []byte(`{}`), Attempts: 1, URL: srv.URL + "/fail", Secret: secret},
		{DeliveryID: "d-last", EndpointID: "e-fail", EventID: "ev4", EventType: "job.published", Payload: []byte(`{}`), Attempts: 2, URL: srv.URL + "/fail", Secret: secret},
		{DeliveryID: "d-unsigned", EndpointID: "e-ok", EventID: "ev5", EventType: "job.published", Payload: []byte(`{}`), URL: srv.URL + "/ok", Secret: "wrong"},
	}

	var (
		mu          sync.Mutex
		attempts    = make(map[string]webhook.AttemptParams)
		deactivated []string
	)
	repo := &webhook.StubRepo{
		ReclaimFunc: func(context.Context, time.Duration) (int64, error) {
			return 0, nil
		},
		ClaimFunc: func(_ context.Context, limit int) ([]webhook.Claim, error) {
			if limit != 10 {
				t.Errorf("limit = %d, want: 10", limit)
			}
			return claims, nil
		},
		RecordAttemptFunc: func(_ context.Context, params webhook.AttemptParams) error {
			mu.Lock()
			defer mu.Unlock()
			attempts[params.DeliveryID] = params
			return nil
		},
		DeactivateEndpointFunc: func(_ context.Context, id string) error {
			mu.Lock()
			defer mu.Unlock()
			deactivated = append(deactivated, id)
			return nil
		},
	}
	observer := &outcomeCounter{outcomes: make(map[string]int)}

	start := time.Now()
	n, err := webhook.NewDispatcher(repo, srv.Client(), dispatcherCfg(), observer).Tick(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if n != len(claims) {
		t.Errorf("Tick() = %d, want: %d", n, len(claims))
	}

	tests := []struct {
		id       string
		status   string
		attempts int
		code     int
	}{
		{"d-ok", webhook.StatusDelivered, 1, http.StatusNoContent},
		{"d-gone", webhook.StatusFailed, 1, http.StatusGone},
		{"d-retry", webhook.StatusPending, 2, http.StatusInternalServerError},
		{"d-last", webhook.StatusFailed, 3, http.StatusInternalServerError},
		{"d-unsigned", webhook.StatusPending, 1, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		got, ok := attempts[tt.id]
		if !ok {
			t.Errorf("%s: no attempt recorded", tt.id)
			continue
		}
		if got.Status != tt.status || got.Attempts != tt.attempts || got.StatusCode == nil || *got.StatusCode != tt.code {
			t.Errorf("%s: attempt = %+v (code %v), want status %s attempts %d code %d",
				tt.id, got, got.StatusCode, tt.status, tt.attempts, tt.code)
		}
	}

	// Second failure waits base * 2, plus at most 10% jitter.
	wait := attempts["d-retry"].NextAttemptAt.Sub(start)
	if wait < 2*time.Minute || wait > 2*time.Minute+12*time.Second+time.Second {
		t.Errorf("retry scheduled after %v, want between 2m and 2m12s", wait)
	}

	if len(deactivated) != 1 || deactivated[0] != "e-gone" {
		t.Errorf("deactivated = %v, want: [e-gone]", deactivated)
	}

	want := map[string]int{
		webhook.OutcomeDelivered: 1,
		webhook.OutcomeGone:      1,
		webhook.OutcomeRetry:     2,
		webhook.OutcomeFailed:    1,
	}
	for outcome, count := range want {
		if observer.outcomes[outcome] != count {
			t.Errorf("outcomes[%s] = %d, want: %d", outcome, observer.outcomes[outcome], count)
		}
	}
}

func TestDispatcher_TickUnreachable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	var got webhook.AttemptParams
	repo := &webhook.StubRepo{
		ReclaimFunc: func(context.Context, time.Duration) (int64, error) { return 1, nil },
		ClaimFunc: func(context.Context, int) ([]webhook.Claim, error) {
			return []webhook.Claim{{DeliveryID: "d1", URL: url, Payload: []byte(`{}`), Secret: "s"}}, nil
		},
		RecordAttemptFunc: func(_ context.Context, params webhook.AttemptParams) error {
			got = params
			return nil
		},
	}

	if _, err := webhook.NewDispatcher(repo, nil, dispatcherCfg(), nil).Tick(context.Background()); err != nil {
		t.Fatal(err)
	}

	if got.Status != webhook.StatusPending || got.StatusCode != nil || got.Error == nil || got.Attempts != 1 {
		t.Errorf("attempt = %+v, want pending with an error and no status code", got)
	}
}

func TestDispatcher_RunStops(t *testing.T) {
	t.Parallel()

	repo := &webhook.StubRepo{
		ReclaimFunc: func(context.Context, time.Duration) (int64, error) { return 0, nil },
		ClaimFunc:   func(context.Context, int) ([]webhook.Claim, error) { return nil, nil },
	}
	cfg := dispatcherCfg()
	cfg.PollInterval = timex.Duration{Duration: 10 * time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- webhook.NewDispatcher(repo, nil, cfg, nil).Run(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() = %v, want: nil", err)
		}
	case <-time.After(time.Second):
		t.Fatal("dispatcher did not stop")
	}
}

func TestBackoff(t *testing.T) {
	t.Parallel()

	base, maxWait := 30*time.Second, time.Hour
	tests := []struct {
		attempts int
		want     time.Duration
	}{
		{0, 30 * time.Second},
		{1, 30 * time.Second},
		{2, time.Minute},
		{3, 2 * time.Minute},
		{7, 32 * time.Minute},
		{8, time.Hour},
		{100, time.Hour},
	}

	for _, tt := range tests {
		if got := webhook.Backoff(tt.attempts, base, maxWait); got != tt.want {
			t.Errorf("Backoff(%d) = %v, want: %v", tt.attempts, got, tt.want)
		}
	}
}
