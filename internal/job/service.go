package job

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ferdiebergado/hireloop/internal/event"
	"github.com/ferdiebergado/hireloop/internal/pkg/skill"
	"github.com/ferdiebergado/hireloop/internal/platform/db"
)

var (
	ErrInvalidStatus = errors.New("invalid job status transition")
	ErrSalaryRange   = errors.New("salary_min must not exceed salary_max")
)

type Repository interface {
	Create(ctx context.Context, params CreateParams) (*Job, error)
	Find(ctx context.Context, tenantID, jobID string) (*Job, error)
	List(ctx context.Context, params ListParams) ([]Job, int, error)
	Update(ctx context.Context, j *Job) (*Job, error)
	SetStatus(ctx context.Context, tenantID, jobID, from, to string) (*Job, error)
	Delete(ctx context.Context, tenantID, jobID string) error
}

type Service struct {
	repo      Repository
	txMgr     db.TxManager
	publisher event.Publisher
}

var _ JobService = (*Service)(nil)

func NewService(repo Repository, txMgr db.TxManager, publisher event.Publisher) *Service {
	return &Service{
		repo:      repo,
		txMgr:     txMgr,
		publisher: publisher,
	}
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Job, error) {
	if err := checkSalary(params.SalaryMin, params.SalaryMax); err != nil {
		return nil, err
	}

	params.Skills = skill.Normalize(params.Skills)
	if params.EmploymentType == "" {
		params.EmploymentType = TypeFullTime
	}

	j, err := s.repo.Create(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("job service: %w", err)
	}
	return j, nil
}

func (s *Service) Find(ctx context.Context, tenantID, jobID string) (*Job, error) {
	j, err := s.repo.Find(ctx, tenantID, jobID)
	if err != nil {
		return nil, fmt.Errorf("job service: %w", err)
	}
	return j, nil
}

func (s *Service) List(ctx context.Context, params ListParams) ([]Job, int, error) {
	jobs, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("job service: %w", err)
	}
	return jobs, total, nil
}

// UpdateParams holds the fields of a partial update. Nil fields are left unchanged.
type UpdateParams struct {
	Title          *string
	Description    *string
	Location       *string
	EmploymentType *string
	Remote         *bool
	SalaryMin      *int
	SalaryMax      *int
	Skills         []string
}

func (s *Service) Update(ctx context.Context, tenantID, jobID string, params UpdateParams) (*Job, error) {
	j, err := s.repo.Find(ctx, tenantID, jobID)
	if err != nil {
		return nil, fmt.Errorf("job service: %w", err)
	}

	if j.Status == StatusClosed {
		return nil, fmt.Errorf("update closed job %s: %w", jobID, ErrInvalidStatus)
	}

	apply(j, params)

	if err := checkSalary(j.SalaryMin, j.SalaryMax); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, j)
	if err != nil {
		return nil, fmt.Errorf("job service: %w", err)
	}
	return updated, nil
}

func apply(j *Job, params UpdateParams) {
	if params.Title != nil {
		j.Title = *params.Title
	}
	if params.Description != nil {
		j.Description = *params.Description
	}
	if params.Location != nil {
		j.Location = *params.Location
	}
	if params.EmploymentType != nil {
		j.EmploymentType = *params.EmploymentType
	}
	if params.Remote != nil {
		j.Remote = *params.Remote
	}
	if params.SalaryMin != nil {
		j.SalaryMin = params.SalaryMin
	}
	if params.SalaryMax != nil {
		j.SalaryMax = params.SalaryMax
	}
	if params.Skills != nil {
		j.Skills = skill.Normalize(params.Skills)
	}
}

// Delete removes a draft job. Published jobs are closed instead.
func (s *Service) Delete(ctx context.Context, tenantID, jobID string) error {
	j, err := s.repo.Find(ctx, tenantID, jobID)
	if err != nil {
		return fmt.Errorf("job service: %w", err)
	}

	if j.Status != StatusDraft {
		return fmt.Errorf("delete %s job %s: %w", j.Status, jobID, ErrInvalidStatus)
	}

	if err := s.repo.Delete(ctx, tenantID, jobID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fmt.Errorf("delete job %s: %w", jobID, ErrInvalidStatus)
		}
		return fmt.Errorf("job service: %w", err)
	}
	return nil
}

func (s *Service) Publish(ctx context.Context, tenantID, jobID string) (*Job, error) {
	return s.transition(ctx, tenantID, jobID, StatusOpen, event.JobPublished)
}

func (s *Service) Close(ctx context.Context, tenantID, jobID string) (*Job, error) {
	return s.transition(ctx, tenantID, jobID, StatusClosed, event.JobClosed)
}

// EventData is the payload of job events.
type EventData struct {
	JobID       string     `json:"job_id"`
	Title       string     `json:"title"`
	Status      string     `json:"status"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	ClosedAt    *time.Time `json:"closed_at,omitempty"`
}

func (s *Service) transition(ctx context.Context, tenantID, jobID, to, eventType string) (*Job, error) {
	var updated *Job
	err := s.txMgr.RunInTx(ctx, func(txCtx context.Context) error {
		j, err := s.repo.Find(txCtx, tenantID, jobID)
		if err != nil {
			return err
		}

		if !CanTransition(j.Status, to) {
			return fmt.Errorf("%s -> %s: %w", j.Status, to, ErrInvalidStatus)
		}

		updated, err = s.repo.SetStatus(txCtx, tenantID, jobID, j.Status, to)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return fmt.Errorf("job %s changed concurrently: %w", jobID, ErrInvalidStatus)
			}
			return err
		}

		return s.publisher.Publish(txCtx, tenantID, eventType, &EventData{
			JobID:       updated.ID,
			Title:       updated.Title,
			Status:      updated.Status,
			PublishedAt: updated.PublishedAt,
			ClosedAt:    updated.ClosedAt,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("job service: %w", err)
	}
	return updated, nil
}

func checkSalary(lo, hi *int) error {
	if lo != nil && hi != nil && *lo > *hi {
		return ErrSalaryRange
	}
	return nil
}
