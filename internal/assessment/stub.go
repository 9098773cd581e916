package assessment

import (
	"context"
	"errors"

	"github.com/ferdiebergado/hireloop/internal/application"
	"github.com/ferdiebergado/hireloop/internal/identity"
	"github.com/ferdiebergado/hireloop/internal/job"
)

type StubRepo struct {
	CreateFunc               func(ctx context.Context, params CreateParams) (*Assessment, error)
	FindFunc                 func(ctx context.Context, tenantID, assessmentID string) (*Assessment, error)
	ListByJobFunc            func(ctx context.Context, tenantID, jobID string) ([]Assessment, error)
	CreateResultFunc         func(ctx context.Context, params ResultParams) (*Result, error)
	ResultsByApplicationFunc func(ctx context.Context, tenantID, appID string) ([]Result, error)
}

var _ Repository = (*StubRepo)(nil)

func (r *StubRepo) Create(ctx context.Context, params CreateParams) (*Assessment, error) {
	if r.CreateFunc == nil {
		return nil, errors.New("Create not implemented by stub")
	}
	return r.CreateFunc(ctx, params)
}

func (r *StubRepo) Find(ctx context.Context, tenantID, assessmentID string) (*Assessment, error) {
	if r.FindFunc == nil {
		return nil, errors.New("Find not implemented by stub")
	}
	return r.FindFunc(ctx, tenantID, assessmentID)
}

func (r *StubRepo) ListByJob(ctx context.Context, tenantID, jobID string) ([]Assessment, error) {
	if r.ListByJobFunc == nil {
		return nil, errors.New("ListByJob not implemented by stub")
	}
	return r.ListByJobFunc(ctx, tenantID, jobID)
}

func (r *StubRepo) CreateResult(ctx context.Context, params ResultParams) (*Result, error) {
	if r.CreateResultFunc == nil {
		return nil, errors.New("CreateResult not implemented by stub")
	}
	return r.CreateResultFunc(ctx, params)
}

func (r *StubRepo) ResultsByApplication(ctx context.Context, tenantID, appID string) ([]Result, error) {
	if r.ResultsByApplicationFunc == nil {
		return nil, errors.New("ResultsByApplication not implemented by stub")
	}
	return r.ResultsByApplicationFunc(ctx, tenantID, appID)
}

type StubService struct {
	CreateFunc    func(ctx context.Context, params CreateParams) (*Assessment, error)
	ListByJobFunc func(ctx context.Context, tenantID, jobID string) ([]Assessment, error)
	RecordFunc    func(ctx context.Context, actor identity.Principal, assessmentID string, params RecordParams) (*Result, error)
	ResultsFunc   func(ctx context.Context, actor identity.Principal, appID string) ([]Result, error)
}

var _ AssessmentService = (*StubService)(nil)

func (s *StubService) Create(ctx context.Context, params CreateParams) (*Assessment, error) {
	if s.CreateFunc == nil {
		return nil, errors.New("Create not implemented by stub")
	}
	return s.CreateFunc(ctx, params)
}

func (s *StubService) ListByJob(ctx context.Context, tenantID, jobID string) ([]Assessment, error) {
	if s.ListByJobFunc == nil {
		return nil, errors.New("ListByJob not implemented by stub")
	}
	return s.ListByJobFunc(ctx, tenantID, jobID)
}

func (s *StubService) Record(ctx context.Context, actor identity.Principal, assessmentID string, params RecordParams) (*Result, error) {
	if s.RecordFunc == nil {
		return nil, errors.New("Record not implemented by stub")
	}
	return s.RecordFunc(ctx, actor, assessmentID, params)
}

func (s *StubService) Results(ctx context.Context, actor identity.Principal, appID string) ([]Result, error) {
	if s.ResultsFunc == nil {
		return nil, errors.New("Results not implemented by stub")
	}
	return s.ResultsFunc(ctx, actor, appID)
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
