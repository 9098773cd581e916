package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/ferdiebergado/hireloop/internal/candidate"
	"github.com/ferdiebergado/hireloop/internal/event"
	"github.com/ferdiebergado/hireloop/internal/identity"
	"github.com/ferdiebergado/hireloop/internal/job"
	"github.com/ferdiebergado/hireloop/internal/platform/db"
)

var (
	ErrJobNotOpen        = errors.New("job is not open for applications")
	ErrInvalidTransition = errors.New("invalid stage transition")
	ErrForbidden         = errors.New("not allowed to change this application")
	ErrCandidateRequired = errors.New("candidate_id is required")
	ErrNoProfile         = errors.New("caller has no candidate profile")
)

type Repository interface {
	Create(ctx context.Context, params CreateParams) (*Application, error)
	Find(ctx context.Context, tenantID, appID string) (*Application, error)
	ListByJob(ctx context.Context, tenantID, jobID, stage string) ([]Application, error)
	ListByCandidate(ctx context.Context, tenantID, candidateID string) ([]Application, error)
	SetStage(ctx context.Context, tenantID, appID, from, to, reason string) (*Application, error)
	AddEvent(ctx context.Context, params EventParams) (*StageEvent, error)
	Events(ctx context.Context, tenantID, appID string) ([]StageEvent, error)
}

type JobFinder interface {
	Find(ctx context.Context, tenantID, jobID string) (*job.Job, error)
}

type CandidateFinder interface {
	Find(ctx context.Context, tenantID, candidateID string) (*candidate.Candidate, error)
	FindByUser(ctx context.Context, tenantID, userID string) (*candidate.Candidate, error)
}

type Service struct {
	repo       Repository
	jobs       JobFinder
	candidates CandidateFinder
	txMgr      db.TxManager
	publisher  event.Publisher
}

var _ ApplicationService = (*Service)(nil)

func NewService(repo Repository, jobs JobFinder, candidates CandidateFinder, txMgr db.TxManager, publisher event.Publisher) *Service {
	return &Service{
		repo:       repo,
		jobs:       jobs,
		candidates: candidates,
		txMgr:      txMgr,
		publisher:  publisher,
	}
}

type ApplyParams struct {
	CandidateID string
	Source      string
}

// EventData is the payload of application events.
type EventData struct {
	ApplicationID string  `json:"application_id"`
	JobID         string  `json:"job_id"`
	CandidateID   string  `json:"candidate_id"`
	Source        string  `json:"source,omitempty"`
	FromStage     *string `json:"from_stage,omitempty"`
	Stage         string  `json:"stage"`
	Reason        string  `json:"reason,omitempty"`
}

// Apply creates an application for an open job. Candidates apply for themselves;
// staff and api callers name the candidate.
func (s *Service) Apply(ctx context.Context, actor identity.Principal, jobID string, params ApplyParams) (*Application, error) {
	candidateID, err := s.resolveCandidate(ctx, actor, params.CandidateID)
	if err != nil {
		return nil, err
	}

	j, err := s.jobs.Find(ctx, actor.TenantID, jobID)
	if err != nil {
		return nil, fmt.Errorf("application service: %w", err)
	}
	if j.Status != job.StatusOpen {
		return nil, fmt.Errorf("apply to %s job %s: %w", j.Status, jobID, ErrJobNotOpen)
	}

	if params.Source == "" {
		params.Source = "direct"
	}

	var a *Application
	err = s.txMgr.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		a, err = s.repo.Create(txCtx, CreateParams{
			TenantID:    actor.TenantID,
			JobID:       jobID,
			CandidateID: candidateID,
			Source:      params.Source,
		})
		if err != nil {
			return err
		}

		if _, err := s.repo.AddEvent(txCtx, EventParams{
			ApplicationID: a.ID,
			ToStage:       StageApplied,
			ActorID:       actorID(actor),
		}); err != nil {
			return err
		}

		return s.publisher.Publish(txCtx, actor.TenantID, event.ApplicationCreated, &EventData{
			ApplicationID: a.ID,
			JobID:         a.JobID,
			CandidateID:   a.CandidateID,
			Source:        a.Source,
			Stage:         a.Stage,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("application service: %w", err)
	}
	return a, nil
}

func (s *Service) resolveCandidate(ctx context.Context, actor identity.Principal, requested string) (string, error) {
	if actor.Role == identity.RoleCandidate {
		c, err := s.candidates.FindByUser(ctx, actor.TenantID, actor.UserID)
		if err != nil {
			if errors.Is(err, candidate.ErrNotFound) {
				return "", ErrNoProfile
			}
			return "", fmt.Errorf("application service: %w", err)
		}
		return c.ID, nil
	}

	if requested == "" {
		return "", ErrCandidateRequired
	}

	c, err := s.candidates.Find(ctx, actor.TenantID, requested)
	if err != nil {
		return "", fmt.Errorf("application service: %w", err)
	}
	return c.ID, nil
}

func (s *Service) ListByJob(ctx context.Context, tenantID, jobID, stage string) ([]Application, error) {
	if _, err := s.jobs.Find(ctx, tenantID, jobID); err != nil {
		return nil, fmt.Errorf("application service: %w", err)
	}

	apps, err := s.repo.ListByJob(ctx, tenantID, jobID, stage)
	if err != nil {
		return nil, fmt.Errorf("application service: %w", err)
	}
	return apps, nil
}

// ListMine returns the applications of the calling candidate.
func (s *Service) ListMine(ctx context.Context, actor identity.Principal) ([]Application, error) {
	c, err := s.candidates.FindByUser(ctx, actor.TenantID, actor.UserID)
	if err != nil {
		if errors.Is(err, candidate.ErrNotFound) {
			return []Application{}, nil
		}
		return nil, fmt.Errorf("application service: %w", err)
	}

	apps, err := s.repo.ListByCandidate(ctx, actor.TenantID, c.ID)
	if err != nil {
		return nil, fmt.Errorf("application service: %w", err)
	}
	return apps, nil
}

// Authorize loads an application the actor may see: any application of the tenant
// for staff, only their own for candidates. Others get ErrNotFound.
func (s *Service) Authorize(ctx context.Context, actor identity.Principal, appID string) (*Application, error) {
	a, err := s.repo.Find(ctx, actor.TenantID, appID)
	if err != nil {
		return nil, fmt.Errorf("application service: %w", err)
	}

	if actor.IsStaff() {
		return a, nil
	}

	owns, err := s.owns(ctx, actor, a)
	if err != nil {
		return nil, err
	}
	if !owns {
		return nil, ErrNotFound
	}
	return a, nil
}

func (s *Service) owns(ctx context.Context, actor identity.Principal, a *Application) (bool, error) {
	if actor.Role != identity.RoleCandidate || actor.UserID == "" {
		return false, nil
	}

	c, err := s.candidates.FindByUser(ctx, actor.TenantID, actor.UserID)
	if err != nil {
		if errors.Is(err, candidate.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("application service: %w", err)
	}
	return c.ID == a.CandidateID, nil
}

type MoveParams struct {
	Stage  string
	Note   string
	Reason string
}

// MoveStage advances or exits an application. Candidates may only withdraw.
func (s *Service) MoveStage(ctx context.Context, actor identity.Principal, appID string, params MoveParams) (*Application, error) {
	if !actor.IsStaff() && params.Stage != StageWithdrawn {
		return nil, ErrForbidden
	}

	var moved *Application
	err := s.txMgr.RunInTx(ctx, func(txCtx context.Context) error {
		a, err := s.Authorize(txCtx, actor, appID)
		if err != nil {
			return err
		}

		if !CanMove(a.Stage, params.Stage) {
			return fmt.Errorf("%s -> %s: %w", a.Stage, params.Stage, ErrInvalidTransition)
		}

		moved, err = s.repo.SetStage(txCtx, actor.TenantID, appID, a.Stage, params.Stage, params.Reason)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return fmt.Errorf("application %s changed concurrently: %w", appID, ErrInvalidTransition)
			}
			return err
		}

		from := a.Stage
		if _, err := s.repo.AddEvent(txCtx, EventParams{
			ApplicationID: appID,
			FromStage:     &from,
			ToStage:       params.Stage,
			ActorID:       actorID(actor),
			Note:          params.Note,
		}); err != nil {
			return err
		}

		data := &EventData{
			ApplicationID: moved.ID,
			JobID:         moved.JobID,
			CandidateID:   moved.CandidateID,
			FromStage:     &from,
			Stage:         moved.Stage,
			Reason:        params.Reason,
		}
		if err := s.publisher.Publish(txCtx, actor.TenantID, event.ApplicationStageChanged, data); err != nil {
			return err
		}

		if moved.Stage == StageHired {
			return s.publisher.Publish(txCtx, actor.TenantID, event.ApplicationHired, data)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("application service: %w", err)
	}
	return moved, nil
}

func (s *Service) Events(ctx context.Context, actor identity.Principal, appID string) ([]StageEvent, error) {
	if _, err := s.Authorize(ctx, actor, appID); err != nil {
		return nil, err
	}

	events, err := s.repo.Events(ctx, actor.TenantID, appID)
	if err != nil {
		return nil, fmt.Errorf("application service: %w", err)
	}
	return events, nil
}

func actorID(actor identity.Principal) *string {
	if actor.UserID == "" {
		return nil
	}
	return &actor.UserID
}
