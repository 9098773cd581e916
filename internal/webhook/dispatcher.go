package webhook

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ferdiebergado/hireloop/internal/config"
	"github.com/ferdiebergado/hireloop/internal/pkg/errx"
)

const (
	userAgent      = "hireloop-webhooks/1.0"
	maxErrorLength = 500
	maxDrainBytes  = 64 << 10
)

type DeliveryStore interface {
	Claim(ctx context.Context, limit int) ([]Claim, error)
	Reclaim(ctx context.Context, lease time.Duration) (int64, error)
	RecordAttempt(ctx context.Context, params AttemptParams) error
	DeactivateEndpoint(ctx context.Context, endpointID string) error
}

type DeliveryObserver interface {
	ObserveDelivery(outcome string)
}

// Dispatcher sends pending deliveries to their endpoints and schedules retries.
type Dispatcher struct {
	store    DeliveryStore
	client   *http.Client
	cfg      *config.Webhook
	observer DeliveryObserver
	now      func() time.Time
}

func NewDispatcher(store DeliveryStore, client *http.Client, cfg *config.Webhook, observer DeliveryObserver) *Dispatcher {
	if client == nil {
		client = &http.Client{}
	}
	return &Dispatcher{
		store:    store,
		client:   client,
		cfg:      cfg,
		observer: observer,
		now:      time.Now,
	}
}

// Run polls for due deliveries until ctx is cancelled. Sends in progress when
// ctx is cancelled are allowed to finish.
func (d *Dispatcher) Run(ctx context.Context) error {
	slog.Info("Webhook dispatcher started", "poll_interval", d.cfg.PollInterval.Duration, "concurrency", d.cfg.Concurrency)

	ticker := time.NewTicker(d.cfg.PollInterval.Duration)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Webhook dispatcher stopped")
			return nil
		case <-ticker.C:
			if _, err := d.Tick(ctx); err != nil {
				if errx.IsContextError(err) {
					continue
				}
				slog.Error("webhook dispatch failed", "reason", err)
			}
		}
	}
}

// Tick reclaims expired leases, then claims one batch of due deliveries and
// sends them. It returns the number of deliveries attempted.
func (d *Dispatcher) Tick(ctx context.Context) (int, error) {
	n, err := d.store.Reclaim(ctx, d.cfg.Lease.Duration)
	if err != nil {
		return 0, fmt.Errorf("reclaim: %w", err)
	}
	if n > 0 {
		slog.Warn("reclaimed expired webhook deliveries", "count", n)
	}

	claims, err := d.store.Claim(ctx, d.cfg.BatchSize)
	if err != nil {
		return 0, fmt.Errorf("claim: %w", err)
	}

	// Leased rows are finished even when ctx is cancelled mid-batch.
	sendCtx := context.WithoutCancel(ctx)

	var g errgroup.Group
	g.SetLimit(d.cfg.Concurrency)
	for _, c := range claims {
		g.Go(func() error {
			d.deliver(sendCtx, c)
			return nil
		})
	}
	_ = g.Wait()

	return len(claims), nil
}

func (d *Dispatcher) deliver(ctx context.Context, c Claim) {
	code, sendErr := d.send(ctx, c)

	attempt := AttemptParams{
		DeliveryID:    c.DeliveryID,
		Attempts:      c.Attempts + 1,
		NextAttemptAt: d.now(),
	}
	if code != 0 {
		attempt.StatusCode = &code
	}

	var outcome string
	switch {
	case sendErr == nil && code >= 200 && code < 300:
		attempt.Status, outcome = StatusDelivered, OutcomeDelivered
	case code == http.StatusGone:
		attempt.Status, outcome = StatusFailed, OutcomeGone
		attempt.Error = errorText("endpoint is gone, deactivated")
		if err := d.store.DeactivateEndpoint(ctx, c.EndpointID); err != nil {
			slog.Error("failed to deactivate webhook endpoint", "endpoint_id", c.EndpointID, "reason", err)
		}
	default:
		if sendErr != nil {
			attempt.Error = errorText(sendErr.Error())
		} else {
			attempt.Error = errorText(fmt.Sprintf("endpoint responded with %d", code))
		}

		if attempt.Attempts >= d.cfg.MaxAttempts {
			attempt.Status, outcome = StatusFailed, OutcomeFailed
		} else {
			wait := withJitter(Backoff(attempt.Attempts, d.cfg.BaseBackoff.Duration, d.cfg.MaxBackoff.Duration))
			attempt.Status, outcome = StatusPending, OutcomeRetry
			attempt.NextAttemptAt = d.now().Add(wait)
		}
	}

	if err := d.store.RecordAttempt(ctx, attempt); err != nil {
		slog.Error("failed to record webhook attempt", "delivery_id", c.DeliveryID, "reason", err)
		return
	}

	slog.Debug("webhook attempted", "delivery_id", c.DeliveryID, "event_type", c.EventType,
		"status_code", code, "attempts", attempt.Attempts, "outcome", outcome)
	if d.observer != nil {
		d.observer.ObserveDelivery(outcome)
	}
}

// send posts the signed payload and returns the response status code, or 0
// when no response was received.
func (d *Dispatcher) send(ctx context.Context, c Claim) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, d.cfg.Timeout.Duration)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(c.Payload))
	if err != nil {
		return 0, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set(HeaderEventID, c.EventID)
	req.Header.Set(HeaderEventType, c.EventType)
	SignRequest(req, c.Secret, c.Payload, d.now())

	res, err := d.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()

	_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, maxDrainBytes))
	return res.StatusCode, nil
}

// Backoff returns base * 2^(attempts-1), capped at maxWait.
func Backoff(attempts int, base, maxWait time.Duration) time.Duration {
	shift := max(attempts-1, 0)
	if shift >= 62 || base > maxWait>>shift {
		return maxWait
	}
	return base << shift
}

// withJitter adds up to 10% to wait.
func withJitter(wait time.Duration) time.Duration {
	spread := int64(wait / 10)
	if spread <= 0 {
		return wait
	}
	return wait + time.Duration(rand.Int64N(spread+1))
}

func errorText(s string) *string {
	if r := []rune(s); len(r) > maxErrorLength {
		s = string(r[:maxErrorLength])
	}
	return &s
}
