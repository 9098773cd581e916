package messaging

import (
	"context"
	"errors"

	"github.com/ferdiebergado/hireloop/internal/application"
	"github.com/ferdiebergado/hireloop/internal/candidate"
	"github.com/ferdiebergado/hireloop/internal/identity"
)

type StubRepo struct {
	CreateFunc   func(ctx context.Context, params CreateParams) (*Message, error)
	ListFunc     func(ctx context.Context, tenantID, appID string) ([]Message, error)
	MarkReadFunc func(ctx context.Context, tenantID, appID, readerID string) (int64, error)
}

var _ Repository = (*StubRepo)(nil)

func (r *StubRepo) Create(ctx context.Context, params CreateParams) (*Message, error) {
	if r.CreateFunc == nil {
		return nil, errors.New("Create not implemented by stub")
	}
	return r.CreateFunc(ctx, params)
}

func (r *StubRepo) List(ctx context.Context, tenantID, appID string) ([]Message, error) {
	if r.ListFunc == nil {
		return nil, errors.New("List not implemented by stub")
	}
	return r.ListFunc(ctx, tenantID, appID)
}

func (r *StubRepo) MarkRead(ctx context.Context, tenantID, appID, readerID string) (int64, error) {
	if r.MarkReadFunc == nil {
		return 0, errors.New("MarkRead not implemented by stub")
	}
	return r.MarkReadFunc(ctx, tenantID, appID, readerID)
}

type StubService struct {
	SendFunc     func(ctx context.Context, actor identity.Principal, appID, body string) (*Message, error)
	ListFunc     func(ctx context.Context, actor identity.Principal, appID string) ([]Message, error)
	MarkReadFunc func(ctx context.Context, actor identity.Principal, appID string) (int64, error)
}

var _ MessageService = (*StubService)(nil)

func (s *StubService) Send(ctx context.Context, actor identity.Principal, appID, body string) (*Message, error) {
	if s.SendFunc == nil {
		return nil, errors.New("Send not implemented by stub")
	}
	return s.SendFunc(ctx, actor, appID, body)
}

func (s *StubService) List(ctx context.Context, actor identity.Principal, appID string) ([]Message, error) {
	if s.ListFunc == nil {
		return nil, errors.New("List not implemented by stub")
	}
	return s.ListFunc(ctx, actor, appID)
}

func (s *StubService) MarkRead(ctx context.Context, actor identity.Principal, appID string) (int64, error) {
	if s.MarkReadFunc == nil {
		return 0, errors.New("MarkRead not implemented by stub")
	}
	return s.MarkReadFunc(ctx, actor, appID)
}

type StubAuthorizer struct {
	AuthorizeFunc func(ctx context.Context, actor identity.Principal, appID string) (*application.Application, error)
}

var _ ApplicationAuthorizer = (*StubAuthorizer)(nil)

func (a *StubAuthorizer) Authorize(ctx context.Context, actor identity.Principal, appID string) (*application.Application, error) {
	if a.AuthorizeFunc == nil {
		return nil, errors.New("Authorize not implemented by stub")
	}
	return a.AuthorizeFunc(ctx, actor, appID)
}

type StubCandidateFinder struct {
	FindFunc func(ctx context.Context, tenantID, candidateID string) (*candidate.Candidate, error)
}

var _ CandidateFinder = (*StubCandidateFinder)(nil)

func (f *StubCandidateFinder) Find(ctx context.Context, tenantID, candidateID string) (*candidate.Candidate, error) {
	if f.FindFunc == nil {
		return nil, errors.New("Find not implemented by stub")
	}
	return f.FindFunc(ctx, tenantID, candidateID)
}
