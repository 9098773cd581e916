package assessment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ferdiebergado/hireloop/internal/application"
	"github.com/ferdiebergado/hireloop/internal/event"
	"github.com/ferdiebergado/hireloop/internal/identity"
	"github.com/ferdiebergado/hireloop/internal/job"
	"github.com/ferdiebergado/hireloop/internal/platform/db"
)

var (
	ErrScoreRange  = errors.New("score is outside the range of the assessment")
	ErrJobMismatch = errors.New("application is for a different job")
)

type Repository interface {
	Create(ctx context.Context, params CreateParams) (*Assessment, error)
	Find(ctx context.Context, tenantID, assessmentID string) (*Assessment, error)
	ListByJob(ctx context.Context, tenantID, jobID string) ([]Assessment, error)
	CreateResult(ctx context.Context, params ResultParams) (*Result, error)
	ResultsByApplication(ctx context.Context, tenantID, appID string) ([]Result, error)
}

type JobFinder interface {
	Find(ctx context.Context, tenantID, jobID string) (*job.Job, error)
}

type ApplicationAuthorizer interface {
	Authorize(ctx context.Context, actor identity.Principal, appID string) (*application.Application, error)
}

type Service struct {
	repo      Repository
	jobs      JobFinder
	apps      ApplicationAuthorizer
	txMgr     db.TxManager
	publisher event.Publisher
}

var _ AssessmentService = (*Service)(nil)

func NewService(repo Repository, jobs JobFinder, apps ApplicationAuthorizer, txMgr db.TxManager, publisher event.Publisher) *Service {
	return &Service{
		repo:      repo,
		jobs:      jobs,
		apps:      apps,
		txMgr:     txMgr,
		publisher: publisher,
	}
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Assessment, error) {
	if _, err := s.jobs.Find(ctx, params.TenantID, params.JobID); err != nil {
		return nil, fmt.Errorf("assessment service: %w", err)
	}

	a, err := s.repo.Create(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("assessment service: %w", err)
	}
	return a, nil
}

func (s *Service) ListByJob(ctx context.Context, tenantID, jobID string) ([]Assessment, error) {
	if _, err := s.jobs.Find(ctx, tenantID, jobID); err != nil {
		return nil, fmt.Errorf("assessment service: %w", err)
	}

	list, err := s.repo.ListByJob(ctx, tenantID, jobID)
	if err != nil {
		return nil, fmt.Errorf("assessment service: %w", err)
	}
	return list, nil
}

type RecordParams struct {
	ApplicationID string
	Score         int
	Feedback      string
}

// EventData is the payload of assessment.completed.
type EventData struct {
	AssessmentID  string    `json:"assessment_id"`
	ApplicationID string    `json:"application_id"`
	JobID         string    `json:"job_id"`
	Score         int       `json:"score"`
	MaxScore      int       `json:"max_score"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

// Record stores the result of an application on an assessment of the same job.
func (s *Service) Record(ctx context.Context, actor identity.Principal, assessmentID string, params RecordParams) (*Result, error) {
	a, err := s.repo.Find(ctx, actor.TenantID, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("assessment service: %w", err)
	}

	if params.Score < 0 || params.Score > a.MaxScore {
		return nil, fmt.Errorf("score %d of %d: %w", params.Score, a.MaxScore, ErrScoreRange)
	}

	app, err := s.apps.Authorize(ctx, actor, params.ApplicationID)
	if err != nil {
		return nil, fmt.Errorf("assessment service: %w", err)
	}
	if app.JobID != a.JobID {
		return nil, ErrJobMismatch
	}

	var res *Result
	err = s.txMgr.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		res, err = s.repo.CreateResult(txCtx, ResultParams{
			AssessmentID:  a.ID,
			ApplicationID: app.ID,
			Score:         params.Score,
			Feedback:      params.Feedback,
		})
		if err != nil {
			return err
		}

		return s.publisher.Publish(txCtx, actor.TenantID, event.AssessmentCompleted, &EventData{
			AssessmentID:  a.ID,
			ApplicationID: app.ID,
			JobID:         a.JobID,
			Score:         res.Score,
			MaxScore:      a.MaxScore,
			SubmittedAt:   res.SubmittedAt,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("assessment service: %w", err)
	}
	return res, nil
}

// Results lists the assessment results of an application visible to the actor.
func (s *Service) Results(ctx context.Context, actor identity.Principal, appID string) ([]Result, error) {
	app, err := s.apps.Authorize(ctx, actor, appID)
	if err != nil {
		return nil, fmt.Errorf("assessment service: %w", err)
	}

	results, err := s.repo.ResultsByApplication(ctx, actor.TenantID, app.ID)
	if err != nil {
		return nil, fmt.Errorf("assessment service: %w", err)
	}
	return results, nil
}
