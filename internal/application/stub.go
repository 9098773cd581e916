package application

import (
	"context"
	"errors"

	"github.com/ferdiebergado/hireloop/internal/candidate"
	"github.com/ferdiebergado/hireloop/internal/identity"
	"github.com/ferdiebergado/hireloop/internal/job"
)

type StubRepo struct {
	CreateFunc          func(ctx context.Context, params CreateParams) (*Application, error)
	FindFunc            func(ctx context.Context, tenantID, appID string) (*Application, error)
	ListByJobFunc       func(ctx context.Context, tenantID, jobID, stage string) ([]Application, error)
	ListByCandidateFunc func(ctx context.Context, tenantID, candidateID string) ([]Application, error)
	SetStageFunc        func(ctx context.Context, tenantID, appID, from, to, reason string) (*Application, error)
	AddEventFunc        func(ctx context.Context, params EventParams) (*StageEvent, error)
	EventsFunc          func(ctx context.Context, tenantID, appID string) ([]StageEvent, error)
}

var _ Repository = (*StubRepo)(nil)

func (r *StubRepo) Create(ctx context.Context, params CreateParams) (*Application, error) {
	if r.CreateFunc == nil {
		return nil, errors.New("Create not implemented by stub")
	}
	return r.CreateFunc(ctx, params)
}

func (r *StubRepo) Find(ctx context.Context, tenantID, appID string) (*Application, error) {
	if r.FindFunc == nil {
		return nil, errors.New("Find not implemented by stub")
	}
	return r.FindFunc(ctx, tenantID, appID)
}

func (r *StubRepo) ListByJob(ctx context.Context, tenantID, jobID, stage string) ([]Application, error) {
	if r.ListByJobFunc == nil {
		return nil, errors.New("ListByJob not implemented by stub")
	}
	return r.ListByJobFunc(ctx, tenantID, jobID, stage)
}

func (r *StubRepo) ListByCandidate(ctx context.Context, tenantID, candidateID string) ([]Application, error) {
	if r.ListByCandidateFunc == nil {
		return nil, errors.New("ListByCandidate not implemented by stub")
	}
	return r.ListByCandidateFunc(ctx, tenantID, candidateID)
}

func (r *StubRepo) SetStage(ctx context.Context, tenantID, appID, from, to, reason string) (*Application, error) {
	if r.SetStageFunc == nil {
		return nil, errors.New("SetStage not implemented by stub")
	}
	return r.SetStageFunc(ctx, tenantID, appID, from, to, reason)
}

func (r *StubRepo) AddEvent(ctx context.Context, params EventParams) (*StageEvent, error) {
	if r.AddEventFunc == nil {
		return nil, errors.New("AddEvent not implemented by stub")
	}
	return r.AddEventFunc(ctx, params)
}

func (r *StubRepo) Events(ctx context.Context, tenantID, appID string) ([]StageEvent, error) {
	if r.EventsFunc == nil {
		return nil, errors.New("Events not implemented by stub")
	}
	return r.EventsFunc(ctx, tenantID, appID)
}

type StubService struct {
	ApplyFunc     func(ctx context.Context, actor identity.Principal, jobID string, params ApplyParams) (*Application, error)
	ListByJobFunc func(ctx context.Context, tenantID, jobID, stage string) ([]Application, error)
	ListMineFunc  func(ctx context.Context, actor identity.Principal) ([]Application, error)
	AuthorizeFunc func(ctx context.Context, actor identity.Principal, appID string) (*Application, error)
	MoveStageFunc func(ctx context.Context, actor identity.Principal, appID string, params MoveParams) (*Application, error)
	EventsFunc    func(ctx context.Context, actor identity.Principal, appID string) ([]StageEvent, error)
}

var _ ApplicationService = (*StubService)(nil)

func (s *StubService) Apply(ctx context.Context, actor identity.Principal, jobID string, params ApplyParams) (*Application, error) {
	if s.ApplyFunc == nil {
		return nil, errors.New("Apply not implemented by stub")
	}
	return s.ApplyFunc(ctx, actor, jobID, params)
}

func (s *StubService) ListByJob(ctx context.Context, tenantID, jobID, stage string) ([]Application, error) {
	if s.ListByJobFunc == nil {
		return nil, errors.New("ListByJob not implemented by stub")
	}
	return s.ListByJobFunc(ctx, tenantID, jobID, stage)
}

func (s *StubService) ListMine(ctx context.Context, actor identity.Principal) ([]Application, error) {
	if s.ListMineFunc == nil {
		return nil, errors.New("ListMine not implemented by stub")
	}
	return s.ListMineFunc(ctx, actor)
}

func (s *StubService) Authorize(ctx context.Context, actor identity.Principal, appID string) (*Application, error) {
	if s.AuthorizeFunc == nil {
		return nil, errors.New("Authorize not implemented by stub")
	}
	return s.AuthorizeFunc(ctx, actor, appID)
}

func (s *StubService) MoveStage(ctx context.Context, actor identity.Principal, appID string, params MoveParams) (*Application, error) {
	if s.MoveStageFunc == nil {
		return nil, errors.New("MoveStage not implemented by stub")
	}
	return s.MoveStageFunc(ctx, actor, appID, params)
}

func (s *StubService) Events(ctx context.Context, actor identity.Principal, appID string) ([]StageEvent, error) {
	if s.EventsFunc == nil {
		return nil, errors.New("Events not implemented by stub")
	}
	return s.EventsFunc(ctx, actor, appID)
}

type StubJobFinder struct {
	FindFunc func(ctx context.Context, tenantID, jobID string) (*job.Job, error)
}

var _ JobFinder = (*StubJobFinder)(nil)

func (f *StubJobFinder) Find(ctx context.Context, tenantID, jobID string) (*job.Job, error) {
	if f.FindFunc == nil {
		return nil, errors.New("Find not implemented by stub")
	}
	return f.FindFunc(ctx, tenantID, jobID)
}

type StubCandidateFinder struct {
	FindFunc       func(ctx context.Context, tenantID, candidateID string) (*candidate.Candidate, error)
	FindByUserFunc func(ctx context.Context, tenantID, userID string) (*candidate.Candidate, error)
}

var _ CandidateFinder = (*StubCandidateFinder)(nil)

func (f *StubCandidateFinder) Find(ctx context.Context, tenantID, candidateID string) (*candidate.Candidate, error) {
	if f.FindFunc == nil {
		return nil, errors.New("Find not implemented by stub")
	}
	return f.FindFunc(ctx, tenantID, candidateID)
}

func (f *StubCandidateFinder) FindByUser(ctx context.Context, tenantID, userID string) (*candidate.Candidate, error) {
	if f.FindByUserFunc == nil {
		return nil, errors.New("FindByUser not implemented by stub")
	}
	return f.FindByUserFunc(ctx, tenantID, userID)
}
