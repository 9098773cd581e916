package webhook

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"time"

	"github.com/ferdiebergado/hireloop/internal/config"
	"github.com/ferdiebergado/hireloop/internal/event"
	"github.com/ferdiebergado/hireloop/internal/pkg/security"
)

const secretPrefix = "whsec_"

var (
	ErrInvalidURL    = errors.New("webhook url must be an absolute https url")
	ErrInvalidEvents = errors.New("webhook events must be known event types")
	ErrInvalidSource = errors.New("invalid webhook source name")
	ErrNotFailed     = errors.New("only failed deliveries can be redelivered")
	ErrInactive      = errors.New("webhook endpoint is inactive")
)

var sourceRe = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,49}$`)

type Repository interface {
	Enqueuer
	CreateEndpoint(ctx context.Context, params EndpointParams) (*Endpoint, error)
	FindEndpoint(ctx context.Context, tenantID, endpointID string) (*Endpoint, error)
	ListEndpoints(ctx context.Context, tenantID string) ([]Endpoint, error)
	DeleteEndpoint(ctx context.Context, tenantID, endpointID string) error
	DeactivateEndpoint(ctx context.Context, endpointID string) error
	Deliveries(ctx context.Context, endpointID string, limit int) ([]Delivery, error)
	FindDelivery(ctx context.Context, tenantID, deliveryID string) (*Delivery, error)
	Redeliver(ctx context.Context, deliveryID string) (*Delivery, error)
	Claim(ctx context.Context, limit int) ([]Claim, error)
	Reclaim(ctx context.Context, lease time.Duration) (int64, error)
	RecordAttempt(ctx context.Context, params AttemptParams) error
	UpsertSource(ctx context.Context, tenantID, source, secret string) error
	FindSource(ctx context.Context, tenantSlug, source string) (tenantID, secret string, err error)
	RecordInbound(ctx context.Context, tenantID, source, externalID string, payload []byte) (bool, error)
}

// Service manages the endpoints and inbound sources of a tenant.
type Service struct {
	repo Repository
	cfg  *config.Webhook
}

var _ WebhookService = (*Service)(nil)

func NewService(repo Repository, cfg *config.Webhook) *Service {
	return &Service{repo: repo, cfg: cfg}
}

// CreateEndpoint registers an endpoint. The returned endpoint carries the
// signing secret, which is not shown again.
func (s *Service) CreateEndpoint(ctx context.Context, tenantID, rawURL string, events []string) (*Endpoint, error) {
	if err := s.checkURL(rawURL); err != nil {
		return nil, err
	}

	events = slices.Compact(slices.Sorted(slices.Values(events)))
	if len(events) == 0 {
		return nil, ErrInvalidEvents
	}
	for _, e := range events {
		if !event.Valid(e) {
			return nil, fmt.Errorf("%q: %w", e, ErrInvalidEvents)
		}
	}

	secret, err := s.newSecret()
	if err != nil {
		return nil, err
	}

	e, err := s.repo.CreateEndpoint(ctx, EndpointParams{
		TenantID: tenantID,
		URL:      rawURL,
		Secret:   secret,
		Events:   events,
	})
	if err != nil {
		return nil, fmt.Errorf("webhook service: %w", err)
	}
	return e, nil
}

func (s *Service) checkURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ErrInvalidURL
	}

	switch u.Scheme {
	case "https":
		return nil
	case "http":
		if s.cfg.AllowInsecure {
			return nil
		}
	}
	return ErrInvalidURL
}

func (s *Service) newSecret() (string, error) {
	secret, err := security.GenerateRandomHex(s.cfg.SecretLength)
	if err != nil {
		return "", fmt.Errorf("generate webhook secret: %w", err)
	}
	return secretPrefix + secret, nil
}

func (s *Service) ListEndpoints(ctx context.Context, tenantID string) ([]Endpoint, error) {
	endpoints, err := s.repo.ListEndpoints(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("webhook service: %w", err)
	}
	return endpoints, nil
}

func (s *Service) DeleteEndpoint(ctx context.Context, tenantID, endpointID string) error {
	if err := s.repo.DeleteEndpoint(ctx, tenantID, endpointID); err != nil {
		return fmt.Errorf("webhook service: %w", err)
	}
	return nil
}

func (s *Service) Deliveries(ctx context.Context, tenantID, endpointID string, limit int) ([]Delivery, error) {
	if _, err := s.repo.FindEndpoint(ctx, tenantID, endpointID); err != nil {
		return nil, fmt.Errorf("webhook service: %w", err)
	}

	deliveries, err := s.repo.Deliveries(ctx, endpointID, limit)
	if err != nil {
		return nil, fmt.Errorf("webhook service: %w", err)
	}
	return deliveries, nil
}

func (s *Service) Redeliver(ctx context.Context, tenantID, deliveryID string) (*Delivery, error) {
	d, err := s.repo.FindDelivery(ctx, tenantID, deliveryID)
	if err != nil {
		return nil, fmt.Errorf("webhook service: %w", err)
	}
	if d.Status != StatusFailed {
		return nil, fmt.Errorf("delivery is %s: %w", d.Status, ErrNotFailed)
	}

	e, err := s.repo.FindEndpoint(ctx, tenantID, d.EndpointID)
	if err != nil {
		return nil, fmt.Errorf("webhook service: %w", err)
	}
	if !e.Active {
		return nil, ErrInactive
	}

	d, err = s.repo.Redeliver(ctx, deliveryID)
	if err != nil {
		if errors.Is(err, ErrDeliveryNotFound) {
			return nil, fmt.Errorf("delivery changed concurrently: %w", ErrNotFailed)
		}
		return nil, fmt.Errorf("webhook service: %w", err)
	}
	return d, nil
}

// RotateSource creates the inbound source or replaces its secret, and returns
// the new secret.
func (s *Service) RotateSource(ctx context.Context, tenantID, source string) (string, error) {
	if !sourceRe.MatchString(source) {
		return "", ErrInvalidSource
	}

	secret, err := s.newSecret()
	if err != nil {
		return "", err
	}

	if err := s.repo.UpsertSource(ctx, tenantID, source, secret); err != nil {
		return "", fmt.Errorf("webhook service: %w", err)
	}
	return secret, nil
}
