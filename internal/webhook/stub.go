package webhook

import (
	"context"
	"errors"
	"time"

	"github.com/ferdiebergado/hireloop/internal/application"
	"github.com/ferdiebergado/hireloop/internal/candidate"
	"github.com/ferdiebergado/hireloop/internal/identity"
)

type StubRepo struct {
	EnqueueFunc            func(ctx context.Context, tenantID, eventType, eventID string, payload []byte) (int64, error)
	CreateEndpointFunc     func(ctx context.Context, params EndpointParams) (*Endpoint, error)
	FindEndpointFunc       func(ctx context.Context, tenantID, endpointID string) (*Endpoint, error)
	ListEndpointsFunc      func(ctx context.Context, tenantID string) ([]Endpoint, error)
	DeleteEndpointFunc     func(ctx context.Context, tenantID, endpointID string) error
	DeactivateEndpointFunc func(ctx context.Context, endpointID string) error
	DeliveriesFunc         func(ctx context.Context, endpointID string, limit int) ([]Delivery, error)
	FindDeliveryFunc       func(ctx context.Context, tenantID, deliveryID string) (*Delivery, error)
	RedeliverFunc          func(ctx context.Context, deliveryID string) (*Delivery, error)
	ClaimFunc              func(ctx context.Context, limit int) ([]Claim, error)
	ReclaimFunc            func(ctx context.Context, lease time.Duration) (int64, error)
	RecordAttemptFunc      func(ctx context.Context, params AttemptParams) error
	UpsertSourceFunc       func(ctx context.Context, tenantID, source, secret string) error
	FindSourceFunc         func(ctx context.Context, tenantSlug, source string) (tenantID, secret string, err error)
	RecordInboundFunc      func(ctx context.Context, tenantID, source, externalID string, payload []byte) (bool, error)
}

var _ Repository = (*StubRepo)(nil)

func (r *StubRepo) Enqueue(ctx context.Context, tenantID, eventType, eventID string, payload []byte) (int64, error) {
	if r.EnqueueFunc == nil {
		return 0, errors.New("Enqueue not implemented by stub")
	}
	return r.EnqueueFunc(ctx, tenantID, eventType, eventID, payload)
}

func (r *StubRepo) CreateEndpoint(ctx context.Context, params EndpointParams) (*Endpoint, error) {
	if r.CreateEndpointFunc == nil {
		return nil, errors.New("CreateEndpoint not implemented by stub")
	}
	return r.CreateEndpointFunc(ctx, params)
}

func (r *StubRepo) FindEndpoint(ctx context.Context, tenantID, endpointID string) (*Endpoint, error) {
	if r.FindEndpointFunc == nil {
		return nil, errors.New("FindEndpoint not implemented by stub")
	}
	return r.FindEndpointFunc(ctx, tenantID, endpointID)
}

func (r *StubRepo) ListEndpoints(ctx context.Context, tenantID string) ([]Endpoint, error) {
	if r.ListEndpointsFunc == nil {
		return nil, errors.New("ListEndpoints not implemented by stub")
	}
	return r.ListEndpointsFunc(ctx, tenantID)
}

func (r *StubRepo) DeleteEndpoint(ctx context.Context, tenantID, endpointID string) error {
	if r.DeleteEndpointFunc == nil {
		return errors.New("DeleteEndpoint not implemented by stub")
	}
	return r.DeleteEndpointFunc(ctx, tenantID, endpointID)
}

func (r *StubRepo) DeactivateEndpoint(ctx context.Context, endpointID string) error {
	if r.DeactivateEndpointFunc == nil {
		return errors.New("DeactivateEndpoint not implemented by stub")
	}
	return r.DeactivateEndpointFunc(ctx, endpointID)
}

func (r *StubRepo) Deliveries(ctx context.Context, endpointID string, limit int) ([]Delivery, error) {
	if r.DeliveriesFunc == nil {
		return nil, errors.New("Deliveries not implemented by stub")
	}
	return r.DeliveriesFunc(ctx, endpointID, limit)
}

func (r *StubRepo) FindDelivery(ctx context.Context, tenantID, deliveryID string) (*Delivery, error) {
	if r.FindDeliveryFunc == nil {
		return nil, errors.New("FindDelivery not implemented by stub")
	}
	return r.FindDeliveryFunc(ctx, tenantID, deliveryID)
}

func (r *StubRepo) Redeliver(ctx context.Context, deliveryID string) (*Delivery, error) {
	if r.RedeliverFunc == nil {
		return nil, errors.New("Redeliver not implemented by stub")
	}
	return r.RedeliverFunc(ctx, deliveryID)
}

func (r *StubRepo) Claim(ctx context.Context, limit int) ([]Claim, error) {
	if r.ClaimFunc == nil {
		return nil, errors.New("Claim not implemented by stub")
	}
	return r.ClaimFunc(ctx, limit)
}

func (r *StubRepo) Reclaim(ctx context.Context, lease time.Duration) (int64, error) {
	if r.ReclaimFunc == nil {
		return 0, errors.New("Reclaim not implemented by stub")
	}
	return r.ReclaimFunc(ctx, lease)
}

func (r *StubRepo) RecordAttempt(ctx context.Context, params AttemptParams) error {
	if r.RecordAttemptFunc == nil {
		return errors.New("RecordAttempt not implemented by stub")
	}
	return r.RecordAttemptFunc(ctx, params)
}

func (r *StubRepo) UpsertSource(ctx context.Context, tenantID, source, secret string) error {
	if r.UpsertSourceFunc == nil {
		return errors.New("UpsertSource not implemented by stub")
	}
	return r.UpsertSourceFunc(ctx, tenantID, source, secret)
}

func (r *StubRepo) FindSource(ctx context.Context, tenantSlug, source string) (tenantID, secret string, err error) {
	if r.FindSourceFunc == nil {
		return "", "", errors.New("FindSource not implemented by stub")
	}
	return r.FindSourceFunc(ctx, tenantSlug, source)
}

func (r *StubRepo) RecordInbound(ctx context.Context, tenantID, source, externalID string, payload []byte) (bool, error) {
	if r.RecordInboundFunc == nil {
		return false, errors.New("RecordInbound not implemented by stub")
	}
	return r.RecordInboundFunc(ctx, tenantID, source, externalID, payload)
}

type StubService struct {
	CreateEndpointFunc func(ctx context.Context, tenantID, rawURL string, events []string) (*Endpoint, error)
	ListEndpointsFunc  func(ctx context.Context, tenantID string) ([]Endpoint, error)
	DeleteEndpointFunc func(ctx context.Context, tenantID, endpointID string) error
	DeliveriesFunc     func(ctx context.Context, tenantID, endpointID string, limit int) ([]Delivery, error)
	RedeliverFunc      func(ctx context.Context, tenantID, deliveryID string) (*Delivery, error)
	RotateSourceFunc   func(ctx context.Context, tenantID, source string) (string, error)
}

var _ WebhookService = (*StubService)(nil)

func (s *StubService) CreateEndpoint(ctx context.Context, tenantID, rawURL string, events []string) (*Endpoint, error) {
	if s.CreateEndpointFunc == nil {
		return nil, errors.New("CreateEndpoint not implemented by stub")
	}
	return s.CreateEndpointFunc(ctx, tenantID, rawURL, events)
}

func (s *StubService) ListEndpoints(ctx context.Context, tenantID string) ([]Endpoint, error) {
	if s.ListEndpointsFunc == nil {
		return nil, errors.New("ListEndpoints not implemented by stub")
	}
	return s.ListEndpointsFunc(ctx, tenantID)
}

func (s *StubService) DeleteEndpoint(ctx context.Context, tenantID, endpointID string) error {
	if s.DeleteEndpointFunc == nil {
		return errors.New("DeleteEndpoint not implemented by stub")
	}
	return s.DeleteEndpointFunc(ctx, tenantID, endpointID)
}

func (s *StubService) Deliveries(ctx context.Context, tenantID, endpointID string, limit int) ([]Delivery, error) {
	if s.DeliveriesFunc == nil {
		return nil, errors.New("Deliveries not implemented by stub")
	}
	return s.DeliveriesFunc(ctx, tenantID, endpointID, limit)
}

func (s *StubService) Redeliver(ctx context.Context, tenantID, deliveryID string) (*Delivery, error) {
	if s.RedeliverFunc == nil {
		return nil, errors.New("Redeliver not implemented by stub")
	}
	return s.RedeliverFunc(ctx, tenantID, deliveryID)
}

func (s *StubService) RotateSource(ctx context.Context, tenantID, source string) (string, error) {
	if s.RotateSourceFunc == nil {
		return "", errors.New("RotateSource not implemented by stub")
	}
	return s.RotateSourceFunc(ctx, tenantID, source)
}

type StubReceiver struct {
	ReceiveFunc func(ctx context.Context, req InboundRequest) (*InboundResult, error)
}

var _ InboundReceiver = (*StubReceiver)(nil)

func (s *StubReceiver) Receive(ctx context.Context, req InboundRequest) (*InboundResult, error) {
	if s.ReceiveFunc == nil {
		return nil, errors.New("Receive not implemented by stub")
	}
	return s.ReceiveFunc(ctx, req)
}

type StubCandidateUpserter struct {
	UpsertFunc func(ctx context.Context, params candidate.CreateParams) (*candidate.Candidate, error)
}

var _ CandidateUpserter = (*StubCandidateUpserter)(nil)

func (s *StubCandidateUpserter) Upsert(ctx context.Context, params candidate.CreateParams) (*candidate.Candidate, error) {
	if s.UpsertFunc == nil {
		return nil, errors.New("Upsert not implemented by stub")
	}
	return s.UpsertFunc(ctx, params)
}

type StubApplicationCreator struct {
	ApplyFunc func(ctx context.Context, actor identity.Principal, jobID string, params application.ApplyParams) (*application.Application, error)
}

var _ ApplicationCreator = (*StubApplicationCreator)(nil)

func (s *StubApplicationCreator) Apply(ctx context.Context, actor identity.Principal, jobID string, params application.ApplyParams) (*application.Application, error) {
	if s.ApplyFunc == nil {
		return nil, errors.New("Apply not implemented by stub")
	}
	return s.ApplyFunc(ctx, actor, jobID, params)
}
