package webhook

import (
	"encoding/json"
	"time"
)

const (
	StatusPending   = "pending"
	StatusInFlight  = "in_flight"
	StatusDelivered = "delivered"
	StatusFailed    = "failed"
)

// Outcomes reported to the delivery observer.
const (
	OutcomeDelivered = "delivered"
	OutcomeRetry     = "retry"
	OutcomeFailed    = "failed"
	OutcomeGone      = "gone"
)

type Endpoint struct {
	ID        string
	TenantID  string
	URL       string
	Secret    string
	Events    []string
	Active    bool
	CreatedAt time.Time
}

type Delivery struct {
	ID             string
	EndpointID     string
	EventID        string
	EventType      string
	Payload        json.RawMessage
	Status         string
	Attempts       int
	NextAttemptAt  time.Time
	LastError      *string
	LastStatusCode *int
	DeliveredAt    *time.Time
	CreatedAt      time.Time
}

// Claim is a delivery leased by the dispatcher together with where to send it.
type Claim struct {
	DeliveryID string
	EndpointID string
	EventID    string
	EventType  string
	Payload    []byte
	Attempts   int
	URL        string
	Secret     string
}

// Envelope is the body of every outbound webhook request.
type Envelope struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	TenantID  string    `json:"tenant_id"`
	CreatedAt time.Time `json:"created_at"`
	Data      any       `json:"data"`
}
