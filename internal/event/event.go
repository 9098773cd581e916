// Package event names the domain events that are published to outbound webhooks.
package event

import (
	"context"
	"errors"
	"slices"
)

const (
	ApplicationCreated      = "application.created"
	ApplicationStageChanged = "application.stage_changed"
	ApplicationHired        = "application.hired"
	MessageCreated          = "message.created"
	AssessmentCompleted     = "assessment.completed"
	JobPublished            = "job.published"
	JobClosed               = "job.closed"
	CandidateCreated        = "candidate.created"

	// Wildcard subscribes an endpoint to every event type.
	Wildcard = "*"
)

var types = []string{
	ApplicationCreated,
	ApplicationStageChanged,
	ApplicationHired,
	MessageCreated,
	AssessmentCompleted,
	JobPublished,
	JobClosed,
	CandidateCreated,
}

// Types returns the publishable event types.
func Types() []string {
	return slices.Clone(types)
}

// Valid reports whether t can be subscribed to.
func Valid(t string) bool {
	return t == Wildcard || slices.Contains(types, t)
}

// Publisher records an event for delivery. Implementations join the transaction
// carried by ctx, so an event is only delivered if the change that caused it commits.
type Publisher interface {
	Publish(ctx context.Context, tenantID, eventType string, data any) error
}

type StubPublisher struct {
	PublishFunc func(ctx context.Context, tenantID, eventType string, data any) error
}

var _ Publisher = (*StubPublisher)(nil)

func (s *StubPublisher) Publish(ctx context.Context, tenantID, eventType string, data any) error {
	if s.PublishFunc == nil {
		return errors.New("Publish not implemented by stub")
	}
	return s.PublishFunc(ctx, tenantID, eventType, data)
}
