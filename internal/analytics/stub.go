package analytics

import (
	"context"
	"errors"
	"time"

	"github.com/ferdiebergado/hireloop/internal/job"
)

type StubRepo struct {
	StageCountsFunc          func(ctx context.Context, tenantID, jobID string) (map[string]int, error)
	ReachedCountsFunc        func(ctx context.Context, tenantID, jobID string) (map[string]int, error)
	OpenJobsFunc             func(ctx context.Context, tenantID string) (int, error)
	ApplicationsBySourceFunc func(ctx context.Context, tenantID string, from, to time.Time) (map[string]int, error)
	HiresFunc                func(ctx context.Context, tenantID string, from, to time.Time) (int, *float64, error)
}

var _ Repository = (*StubRepo)(nil)

func (r *StubRepo) StageCounts(ctx context.Context, tenantID, jobID string) (map[string]int, error) {
	if r.StageCountsFunc == nil {
		return nil, errors.New("StageCounts not implemented by stub")
	}
	return r.StageCountsFunc(ctx, tenantID, jobID)
}

func (r *StubRepo) ReachedCounts(ctx context.Context, tenantID, jobID string) (map[string]int, error) {
	if r.ReachedCountsFunc == nil {
		return nil, errors.New("ReachedCounts not implemented by stub")
	}
	return r.ReachedCountsFunc(ctx, tenantID, jobID)
}

func (r *StubRepo) OpenJobs(ctx context.Context, tenantID string) (int, error) {
	if r.OpenJobsFunc == nil {
		return 0, errors.New("OpenJobs not implemented by stub")
	}
	return r.OpenJobsFunc(ctx, tenantID)
}

func (r *StubRepo) ApplicationsBySource(ctx context.Context, tenantID string, from, to time.Time) (map[string]int, error) {
	if r.ApplicationsBySourceFunc == nil {
		return nil, errors.New("ApplicationsBySource not implemented by stub")
	}
	return r.ApplicationsBySourceFunc(ctx, tenantID, from, to)
}

func (r *StubRepo) Hires(ctx context.Context, tenantID string, from, to time.Time) (int, *float64, error) {
	if r.HiresFunc == nil {
		return 0, nil, errors.New("Hires not implemented by stub")
	}
	return r.HiresFunc(ctx, tenantID, from, to)
}

type StubService struct {
	PipelineFunc func(ctx context.Context, tenantID, jobID string) ([]StageCount, error)
	OverviewFunc func(ctx context.Context, tenantID string, from, to time.Time) (*Overview, error)
	FunnelFunc   func(ctx context.Context, tenantID, jobID string) (*Funnel, error)
}

var _ AnalyticsService = (*StubService)(nil)

func (s *StubService) Pipeline(ctx context.Context, tenantID, jobID string) ([]StageCount, error) {
	if s.PipelineFunc == nil {
		return nil, errors.New("Pipeline not implemented by stub")
	}
	return s.PipelineFunc(ctx, tenantID, jobID)
}

func (s *StubService) Overview(ctx context.Context, tenantID string, from, to time.Time) (*Overview, error) {
	if s.OverviewFunc == nil {
		return nil, errors.New("Overview not implemented by stub")
	}
	return s.OverviewFunc(ctx, tenantID, from, to)
}

func (s *StubService) Funnel(ctx context.Context, tenantID, jobID string) (*Funnel, error) {
	if s.FunnelFunc == nil {
		return nil, errors.New("Funnel not implemented by stub")
	}
	return s.FunnelFunc(ctx, tenantID, jobID)
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
