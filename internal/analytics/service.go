package analytics

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/ferdiebergado/hireloop/internal/application"
	"github.com/ferdiebergado/hireloop/internal/job"
)

const (
	defaultWindow = 30 * 24 * time.Hour
	maxWindow     = 366 * 24 * time.Hour
)

var ErrInvalidRange = errors.New("from must be before to and at most a year apart")

type Repository interface {
	StageCounts(ctx context.Context, tenantID, jobID string) (map[string]int, error)
	ReachedCounts(ctx context.Context, tenantID, jobID string) (map[string]int, error)
	OpenJobs(ctx context.Context, tenantID string) (int, error)
	ApplicationsBySource(ctx context.Context, tenantID string, from, to time.Time) (map[string]int, error)
	Hires(ctx context.Context, tenantID string, from, to time.Time) (int, *float64, error)
}

type JobFinder interface {
	Find(ctx context.Context, tenantID, jobID string) (*job.Job, error)
}

type Service struct {
	repo Repository
	jobs JobFinder
	now  func() time.Time
}

var _ AnalyticsService = (*Service)(nil)

func NewService(repo Repository, jobs JobFinder) *Service {
	return &Service{repo: repo, jobs: jobs, now: time.Now}
}

// Pipeline counts applications per stage. Every stage is present, in
// pipeline order. An empty jobID covers the whole tenant.
func (s *Service) Pipeline(ctx context.Context, tenantID, jobID string) ([]StageCount, error) {
	if jobID != "" {
		if _, err := s.jobs.Find(ctx, tenantID, jobID); err != nil {
			return nil, fmt.Errorf("analytics service: %w", err)
		}
	}

	counts, err := s.repo.StageCounts(ctx, tenantID, jobID)
	if err != nil {
		return nil, fmt.Errorf("analytics service: %w", err)
	}

	stages := application.Stages()
	res := make([]StageCount, 0, len(stages))
	for _, stage := range stages {
		res = append(res, StageCount{Stage: stage, Count: counts[stage]})
	}
	return res, nil
}

// Overview summarizes hiring activity in [from, to). Zero times default to the
// last 30 days.
func (s *Service) Overview(ctx context.Context, tenantID string, from, to time.Time) (*Overview, error) {
	if to.IsZero() {
		to = s.now()
	}
	if from.IsZero() {
		from = to.Add(-defaultWindow)
	}
	if !from.Before(to) || to.Sub(from) > maxWindow {
		return nil, ErrInvalidRange
	}

	o := &Overview{From: from, To: to}

	var err error
	if o.OpenJobs, err = s.repo.OpenJobs(ctx, tenantID); err != nil {
		return nil, fmt.Errorf("analytics service: %w", err)
	}

	if o.ApplicationsFrom, err = s.repo.ApplicationsBySource(ctx, tenantID, from, to); err != nil {
		return nil, fmt.Errorf("analytics service: %w", err)
	}
	for _, n := range o.ApplicationsFrom {
		o.Applications += n
	}

	var avg *float64
	if o.Hires, avg, err = s.repo.Hires(ctx, tenantID, from, to); err != nil {
		return nil, fmt.Errorf("analytics service: %w", err)
	}
	if avg != nil {
		rounded := round(*avg, 2)
		o.AvgDaysToHire = &rounded
	}
	return o, nil
}

// Funnel reports how far the applications of a job got along the pipeline.
func (s *Service) Funnel(ctx context.Context, tenantID, jobID string) (*Funnel, error) {
	if _, err := s.jobs.Find(ctx, tenantID, jobID); err != nil {
		return nil, fmt.Errorf("analytics service: %w", err)
	}

	reached, err := s.repo.ReachedCounts(ctx, tenantID, jobID)
	if err != nil {
		return nil, fmt.Errorf("analytics service: %w", err)
	}

	f := &Funnel{
		JobID:     jobID,
		Rejected:  reached[application.StageRejected],
		Withdrawn: reached[application.StageWithdrawn],
	}

	prev := 0
	for i, stage := range application.PipelineStages() {
		n := reached[stage]
		fs := FunnelStage{Stage: stage, Reached: n}
		switch {
		case i == 0 && n > 0:
			fs.Conversion = 1
		case prev > 0:
			fs.Conversion = round(float64(n)/float64(prev), 4)
		}
		f.Stages = append(f.Stages, fs)
		prev = n
	}
	return f, nil
}

func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
