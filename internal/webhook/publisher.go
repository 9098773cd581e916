package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ferdiebergado/hireloop/internal/event"
)

type Enqueuer interface {
	Enqueue(ctx context.Context, tenantID, eventType, eventID string, payload []byte) (int64, error)
}

// Publisher turns domain events into pending deliveries. It writes through the
// transaction in ctx, so deliveries only exist when the caller commits.
type Publisher struct {
	queue Enqueuer
	now   func() time.Time
}

var _ event.Publisher = (*Publisher)(nil)

func NewPublisher(queue Enqueuer) *Publisher {
	return &Publisher{queue: queue, now: time.Now}
}

func (p *Publisher) Publish(ctx context.Context, tenantID, eventType string, data any) error {
	env := &Envelope{
		ID:        uuid.NewString(),
		Type:      eventType,
		TenantID:  tenantID,
		CreatedAt: p.now().UTC(),
		Data:      data,
	}

	payload, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", eventType, err)
	}

	n, err := p.queue.Enqueue(ctx, tenantID, eventType, env.ID, payload)
	if err != nil {
		return fmt.Errorf("publish %s: %w", eventType, err)
	}

	slog.Debug("event published", "event_id", env.ID, "type", eventType, "deliveries", n)
	return nil
}
