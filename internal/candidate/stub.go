package candidate

import (
	"context"
	"errors"

	"github.com/ferdiebergado/hireloop/internal/job"
)

type StubRepo struct {
	CreateFunc     func(ctx context.Context, params CreateParams) (*Candidate, error)
	UpsertFunc     func(ctx context.Context, params CreateParams) (*Candidate, bool, error)
	FindFunc       func(ctx context.Context, tenantID, candidateID string) (*Candidate, error)
	FindByUserFunc func(ctx context.Context, tenantID, userID string) (*Candidate, error)
	UpdateFunc     func(ctx context.Context, c *Candidate) (*Candidate, error)
	SearchFunc     func(ctx context.Context, f Filter) ([]Candidate, error)
}

var _ Repository = (*StubRepo)(nil)

func (r *StubRepo) Create(ctx context.Context, params CreateParams) (*Candidate, error) {
	if r.CreateFunc == nil {
		return nil, errors.New("Create not implemented by stub")
	}
	return r.CreateFunc(ctx, params)
}

func (r *StubRepo) Upsert(ctx context.Context, params CreateParams) (*Candidate, bool, error) {
	if r.UpsertFunc == nil {
		return nil, false, errors.New("Upsert not implemented by stub")
	}
	return r.UpsertFunc(ctx, params)
}

func (r *StubRepo) Find(ctx context.Context, tenantID, candidateID string) (*Candidate, error) {
	if r.FindFunc == nil {
		return nil, errors.New("Find not implemented by stub")
	}
	return r.FindFunc(ctx, tenantID, candidateID)
}

func (r *StubRepo) FindByUser(ctx context.Context, tenantID, userID string) (*Candidate, error) {
	if r.FindByUserFunc == nil {
		return nil, errors.New("FindByUser not implemented by stub")
	}
	return r.FindByUserFunc(ctx, tenantID, userID)
}

func (r *StubRepo) Update(ctx context.Context, c *Candidate) (*Candidate, error) {
	if r.UpdateFunc == nil {
		return nil, errors.New("Update not implemented by stub")
	}
	return r.UpdateFunc(ctx, c)
}

func (r *StubRepo) Search(ctx context.Context, f Filter) ([]Candidate, error) {
	if r.SearchFunc == nil {
		return nil, errors.New("Search not implemented by stub")
	}
	return r.SearchFunc(ctx, f)
}

type StubService struct {
	CreateFunc     func(ctx context.Context, params CreateParams) (*Candidate, error)
	FindFunc       func(ctx context.Context, tenantID, candidateID string) (*Candidate, error)
	FindByUserFunc func(ctx context.Context, tenantID, userID string) (*Candidate, error)
	UpdateFunc     func(ctx context.Context, tenantID, candidateID string, params UpdateParams) (*Candidate, error)
	SearchFunc     func(ctx context.Context, params SearchParams) (*SearchResult, error)
}

var _ CandidateService = (*StubService)(nil)

func (s *StubService) Create(ctx context.Context, params CreateParams) (*Candidate, error) {
	if s.CreateFunc == nil {
		return nil, errors.New("Create not implemented by stub")
	}
	return s.CreateFunc(ctx, params)
}

func (s *StubService) Find(ctx context.Context, tenantID, candidateID string) (*Candidate, error) {
	if s.FindFunc == nil {
		return nil, errors.New("Find not implemented by stub")
	}
	return s.FindFunc(ctx, tenantID, candidateID)
}

func (s *StubService) FindByUser(ctx context.Context, tenantID, userID string) (*Candidate, error) {
	if s.FindByUserFunc == nil {
		return nil, errors.New("FindByUser not implemented by stub")
	}
	return s.FindByUserFunc(ctx, tenantID, userID)
}

func (s *StubService) Update(ctx context.Context, tenantID, candidateID string, params UpdateParams) (*Candidate, error) {
	if s.UpdateFunc == nil {
		return nil, errors.New("Update not implemented by stub")
	}
	return s.UpdateFunc(ctx, tenantID, candidateID, params)
}

func (s *StubService) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	if s.SearchFunc == nil {
		return nil, errors.New("Search not implemented by stub")
	}
	return s.SearchFunc(ctx, params)
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
