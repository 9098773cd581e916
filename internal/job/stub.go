package job

import (
	"context"
	"errors"
)

type StubRepo struct {
	CreateFunc    func(ctx context.Context, params CreateParams) (*Job, error)
	FindFunc      func(ctx context.Context, tenantID, jobID string) (*Job, error)
	ListFunc      func(ctx context.Context, params ListParams) ([]Job, int, error)
	UpdateFunc    func(ctx context.Context, j *Job) (*Job, error)
	SetStatusFunc func(ctx context.Context, tenantID, jobID, from, to string) (*Job, error)
	DeleteFunc    func(ctx context.Context, tenantID, jobID string) error
}

var _ Repository = (*StubRepo)(nil)

func (r *StubRepo) Create(ctx context.Context, params CreateParams) (*Job, error) {
	if r.CreateFunc == nil {
		return nil, errors.New("Create not implemented by stub")
	}
	return r.CreateFunc(ctx, params)
}

func (r *StubRepo) Find(ctx context.Context, tenantID, jobID string) (*Job, error) {
	if r.FindFunc == nil {
		return nil, errors.New("Find not implemented by stub")
	}
	return r.FindFunc(ctx, tenantID, jobID)
}

func (r *StubRepo) List(ctx context.Context, params ListParams) ([]Job, int, error) {
	if r.ListFunc == nil {
		return nil, 0, errors.New("List not implemented by stub")
	}
	return r.ListFunc(ctx, params)
}

func (r *StubRepo) Update(ctx context.Context, j *Job) (*Job, error) {
	if r.UpdateFunc == nil {
		return nil, errors.New("Update not implemented by stub")
	}
	return r.UpdateFunc(ctx, j)
}

func (r *StubRepo) SetStatus(ctx context.Context, tenantID, jobID, from, to string) (*Job, error) {
	if r.SetStatusFunc == nil {
		return nil, errors.New("SetStatus not implemented by stub")
	}
	return r.SetStatusFunc(ctx, tenantID, jobID, from, to)
}

func (r *StubRepo) Delete(ctx context.Context, tenantID, jobID string) error {
	if r.DeleteFunc == nil {
		return errors.New("Delete not implemented by stub")
	}
	return r.DeleteFunc(ctx, tenantID, jobID)
}

type StubService struct {
	CreateFunc  func(ctx context.Context, params CreateParams) (*Job, error)
	FindFunc    func(ctx context.Context, tenantID, jobID string) (*Job, error)
	ListFunc    func(ctx context.Context, params ListParams) ([]Job, int, error)
	UpdateFunc  func(ctx context.Context, tenantID, jobID string, params UpdateParams) (*Job, error)
	DeleteFunc  func(ctx context.Context, tenantID, jobID string) error
	PublishFunc func(ctx context.Context, tenantID, jobID string) (*Job, error)
	CloseFunc   func(ctx context.Context, tenantID, jobID string) (*Job, error)
}

var _ JobService = (*StubService)(nil)

func (s *StubService) Create(ctx context.Context, params CreateParams) (*Job, error) {
	if s.CreateFunc == nil {
		return nil, errors.New("Create not implemented by stub")
	}
	return s.CreateFunc(ctx, params)
}

func (s *StubService) Find(ctx context.Context, tenantID, jobID string) (*Job, error) {
	if s.FindFunc == nil {
		return nil, errors.New("Find not implemented by stub")
	}
	return s.FindFunc(ctx, tenantID, jobID)
}

func (s *StubService) List(ctx context.Context, params ListParams) ([]Job, int, error) {
	if s.ListFunc == nil {
		return nil, 0, errors.New("List not implemented by stub")
	}
	return s.ListFunc(ctx, params)
}

func (s *StubService) Update(ctx context.Context, tenantID, jobID string, params UpdateParams) (*Job, error) {
	if s.UpdateFunc == nil {
		return nil, errors.New("Update not implemented by stub")
	}
	return s.UpdateFunc(ctx, tenantID, jobID, params)
}

func (s *StubService) Delete(ctx context.Context, tenantID, jobID string) error {
	if s.DeleteFunc == nil {
		return errors.New("Delete not implemented by stub")
	}
	return s.DeleteFunc(ctx, tenantID, jobID)
}

func (s *StubService) Publish(ctx context.Context, tenantID, jobID string) (*Job, error) {
	if s.PublishFunc == nil {
		return nil, errors.New("Publish not implemented by stub")
	}
	return s.PublishFunc(ctx, tenantID, jobID)
}

func (s *StubService) Close(ctx context.Context, tenantID, jobID string) (*Job, error) {
	if s.CloseFunc == nil {
		return nil, errors.New("Close not implemented by stub")
	}
	return s.CloseFunc(ctx, tenantID, jobID)
}
