package candidate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ferdiebergado/hireloop/internal/config"
	"github.com/ferdiebergado/hireloop/internal/event"
	"github.com/ferdiebergado/hireloop/internal/job"
	"github.com/ferdiebergado/hireloop/internal/pkg/skill"
	"github.com/ferdiebergado/hireloop/internal/platform/db"
)

type Repository interface {
	Create(ctx context.Context, params CreateParams) (*Candidate, error)
	Upsert(ctx context.Context, params CreateParams) (*Candidate, bool, error)
	Find(ctx context.Context, tenantID, candidateID string) (*Candidate, error)
	FindByUser(ctx context.Context, tenantID, userID string) (*Candidate, error)
	Update(ctx context.Context, c *Candidate) (*Candidate, error)
	Search(ctx context.Context, f Filter) ([]Candidate, error)
}

type JobFinder interface {
	Find(ctx context.Context, tenantID, jobID string) (*job.Job, error)
}

type SearchObserver interface {
	ObserveSearch(d time.Duration)
}

type Service struct {
	repo      Repository
	jobs      JobFinder
	txMgr     db.TxManager
	publisher event.Publisher
	cfg       *config.Search
	observer  SearchObserver
}

var _ CandidateService = (*Service)(nil)

func NewService(repo Repository, jobs JobFinder, txMgr db.TxManager, publisher event.Publisher,
	cfg *config.Search, observer SearchObserver) *Service {
	return &Service{
		repo:      repo,
		jobs:      jobs,
		txMgr:     txMgr,
		publisher: publisher,
		cfg:       cfg,
		observer:  observer,
	}
}

// EventData is the payload of candidate.created.
type EventData struct {
	CandidateID string   `json:"candidate_id"`
	Email       string   `json:"email"`
	FullName    string   `json:"full_name"`
	Skills      []string `json:"skills"`
	Source      string   `json:"source"`
}

func eventData(c *Candidate) *EventData {
	return &EventData{
		CandidateID: c.ID,
		Email:       c.Email,
		FullName:    c.FullName,
		Skills:      c.Skills,
		Source:      c.Source,
	}
}

func normalize(params *CreateParams) {
	params.Email = strings.ToLower(strings.TrimSpace(params.Email))
	params.FullName = strings.TrimSpace(params.FullName)
	params.Skills = skill.Normalize(params.Skills)
	if params.Source == "" {
		params.Source = SourceManual
	}
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Candidate, error) {
	normalize(&params)

	var c *Candidate
	err := s.txMgr.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		c, err = s.repo.Create(txCtx, params)
		if err != nil {
			return err
		}
		return s.publisher.Publish(txCtx, c.TenantID, event.CandidateCreated, eventData(c))
	})
	if err != nil {
		return nil, fmt.Errorf("candidate service: %w", err)
	}
	return c, nil
}

// Upsert creates or refreshes a candidate by email within the transaction in ctx.
func (s *Service) Upsert(ctx context.Context, params CreateParams) (*Candidate, error) {
	normalize(&params)

	c, created, err := s.repo.Upsert(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("candidate service: %w", err)
	}

	if created {
		if err := s.publisher.Publish(ctx, c.TenantID, event.CandidateCreated, eventData(c)); err != nil {
			return nil, fmt.Errorf("candidate service: %w", err)
		}
	}
	return c, nil
}

func (s *Service) Find(ctx context.Context, tenantID, candidateID string) (*Candidate, error) {
	c, err := s.repo.Find(ctx, tenantID, candidateID)
	if err != nil {
		return nil, fmt.Errorf("candidate service: %w", err)
	}
	return c, nil
}

func (s *Service) FindByUser(ctx context.Context, tenantID, userID string) (*Candidate, error) {
	c, err := s.repo.FindByUser(ctx, tenantID, userID)
	if err != nil {
		return nil, fmt.Errorf("candidate service: %w", err)
	}
	return c, nil
}

// UpdateParams holds the fields of a partial update. Nil fields are left unchanged.
type UpdateParams struct {
	FullName        *string
	Headline        *string
	Location        *string
	YearsExperience *int
	Skills          []string
	ResumeURL       *string
}

func (s *Service) Update(ctx context.Context, tenantID, candidateID string, params UpdateParams) (*Candidate, error) {
	c, err := s.repo.Find(ctx, tenantID, candidateID)
	if err != nil {
		return nil, fmt.Errorf("candidate service: %w", err)
	}

	if params.FullName != nil {
		c.FullName = strings.TrimSpace(*params.FullName)
	}
	if params.Headline != nil {
		c.Headline = *params.Headline
	}
	if params.Location != nil {
		c.Location = *params.Location
	}
	if params.YearsExperience != nil {
		c.YearsExperience = *params.YearsExperience
	}
	if params.Skills != nil {
		c.Skills = skill.Normalize(params.Skills)
	}
	if params.ResumeURL != nil {
		c.ResumeURL = *params.ResumeURL
	}

	updated, err := s.repo.Update(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("candidate service: %w", err)
	}
	return updated, nil
}

type SearchParams struct {
	TenantID      string
	Text          string
	Skills        []string
	Location      string
	MinExperience int
	JobID         string
	Limit         int
	Offset        int
}

type SearchResult struct {
	Matches []Match
	Total   int
}

// Search pre-filters candidates in the database and ranks the rest in memory.
// With a job id, the job's skills and location stand in for the ones the search
// does not name, both in the filter and in the ranking.
func (s *Service) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	start := time.Now()
	defer func() {
		if s.observer != nil {
			s.observer.ObserveSearch(time.Since(start))
		}
	}()

	criteria := Criteria{
		Text:          params.Text,
		Skills:        skill.Normalize(params.Skills),
		Location:      params.Location,
		MinExperience: params.MinExperience,
	}

	if params.JobID != "" {
		j, err := s.jobs.Find(ctx, params.TenantID, params.JobID)
		if err != nil {
			return nil, fmt.Errorf("candidate search: %w", err)
		}
		if len(criteria.Skills) == 0 {
			criteria.Skills = skill.Normalize(j.Skills)
		}
		if criteria.Location == "" && !j.Remote {
			criteria.Location = j.Location
		}
	}

	candidates, err := s.repo.Search(ctx, Filter{
		TenantID:      params.TenantID,
		Location:      criteria.Location,
		MinExperience: params.MinExperience,
		Skills:        criteria.Skills,
		Window:        s.cfg.Window,
	})
	if err != nil {
		return nil, fmt.Errorf("candidate search: %w", err)
	}

	ranked := Rank(candidates, criteria)
	res := &SearchResult{Total: len(ranked), Matches: []Match{}}
	if params.Offset < len(ranked) {
		end := min(params.Offset+params.Limit, len(ranked))
		res.Matches = ranked[params.Offset:end]
	}
	return res, nil
}
