package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/ferdiebergado/hireloop/internal/application"
	"github.com/ferdiebergado/hireloop/internal/candidate"
	"github.com/ferdiebergado/hireloop/internal/config"
	"github.com/ferdiebergado/hireloop/internal/identity"
	"github.com/ferdiebergado/hireloop/internal/platform/db"
	"github.com/ferdiebergado/hireloop/internal/platform/validation"
)

const (
	InboundApplicationSubmitted = "application.submitted"
	InboundCandidateUpdated     = "candidate.updated"
)

// Outcomes reported to the inbound observer.
const (
	InboundAccepted  = "accepted"
	InboundDuplicate = "duplicate"
	InboundRejected  = "rejected"
	InboundInvalid   = "invalid"
	InboundError     = "error"
)

// PayloadError lists the problems with an inbound event body.
type PayloadError struct {
	Errors map[string]string
}

func (e *PayloadError) Error() string {
	fields := slices.Sorted(maps.Keys(e.Errors))
	return "invalid inbound payload: " + strings.Join(fields, ", ")
}

type InboundCandidate struct {
	Email           string   `json:"email" validate:"required,email,max=254"`
	FullName        string   `json:"full_name" validate:"required,max=200"`
	Headline        string   `json:"headline" validate:"max=300"`
	Location        string   `json:"location" validate:"max=200"`
	YearsExperience int      `json:"years_experience" validate:"min=0,max=80"`
	Skills          []string `json:"skills" validate:"max=100,dive,min=1,max=50"`
	ResumeURL       string   `json:"resume_url" validate:"omitempty,url,max=2000"`
}

type InboundEvent struct {
	EventID   string           `json:"event_id" validate:"required,max=200"`
	Type      string           `json:"type" validate:"required,oneof=application.submitted candidate.updated"`
	Candidate InboundCandidate `json:"candidate"`
	JobID     string           `json:"job_id" validate:"required_if=Type application.submitted,omitempty,uuid"`
}

type InboundRequest struct {
	TenantSlug string
	Source     string
	Timestamp  string
	Signature  string
	Body       []byte
}

type InboundResult struct {
	Duplicate     bool
	CandidateID   string
	ApplicationID string
}

type CandidateUpserter interface {
	Upsert(ctx context.Context, params candidate.CreateParams) (*candidate.Candidate, error)
}

type ApplicationCreator interface {
	Apply(ctx context.Context, actor identity.Principal, jobID string, params application.ApplyParams) (*application.Application, error)
}

type InboundObserver interface {
	ObserveInbound(source, outcome string)
}

// Receiver accepts signed events pushed by external systems such as job boards.
type Receiver struct {
	repo       Repository
	candidates CandidateUpserter
	apps       ApplicationCreator
	txMgr      db.TxManager
	validator  validation.Validator
	cfg        *config.Webhook
	observer   InboundObserver
	now        func() time.Time
}

func NewReceiver(repo Repository, candidates CandidateUpserter, apps ApplicationCreator, txMgr db.TxManager,
	validator validation.Validator, cfg *config.Webhook, observer InboundObserver) *Receiver {
	return &Receiver{
		repo:       repo,
		candidates: candidates,
		apps:       apps,
		txMgr:      txMgr,
		validator:  validator,
		cfg:        cfg,
		observer:   observer,
		now:        time.Now,
	}
}

func (rc *Receiver) Receive(ctx context.Context, req InboundRequest) (res *InboundResult, err error) {
	defer func() {
		rc.observe(req.Source, res, err)
	}()

	tenantID, secret, err := rc.repo.FindSource(ctx, req.TenantSlug, req.Source)
	if err != nil {
		return nil, fmt.Errorf("receive inbound webhook: %w", err)
	}

	if err := Verify(secret, req.Timestamp, req.Signature, req.Body, rc.now(), rc.cfg.SignatureTolerance.Duration); err != nil {
		return nil, err
	}

	var evt InboundEvent
	if err := json.Unmarshal(req.Body, &evt); err != nil {
		return nil, &PayloadError{Errors: map[string]string{"body": "body must be a JSON object"}}
	}
	if errs := rc.validator.ValidateStruct(evt); errs != nil {
		return nil, &PayloadError{Errors: errs}
	}

	res = &InboundResult{}
	err = rc.txMgr.RunInTx(ctx, func(txCtx context.Context) error {
		fresh, err := rc.repo.RecordInbound(txCtx, tenantID, req.Source, evt.EventID, req.Body)
		if err != nil {
			return err
		}
		if !fresh {
			res.Duplicate = true
			return nil
		}

		return rc.process(txCtx, tenantID, req.Source, &evt, res)
	})
	if err != nil {
		return nil, fmt.Errorf("process inbound event %s: %w", evt.EventID, err)
	}

	if res.Duplicate {
		slog.Info("duplicate inbound webhook ignored", "source", req.Source, "event_id", evt.EventID)
	}
	return res, nil
}

func (rc *Receiver) process(ctx context.Context, tenantID, source string, evt *InboundEvent, res *InboundResult) error {
	c, err := rc.candidates.Upsert(ctx, candidate.CreateParams{
		TenantID:        tenantID,
		Email:           evt.Candidate.Email,
		FullName:        evt.Candidate.FullName,
		Headline:        evt.Candidate.Headline,
		Location:        evt.Candidate.Location,
		YearsExperience: evt.Candidate.YearsExperience,
		Skills:          evt.Candidate.Skills,
		ResumeURL:       evt.Candidate.ResumeURL,
		Source:          candidate.SourceAPI,
	})
	if err != nil {
		return err
	}
	res.CandidateID = c.ID

	if evt.Type != InboundApplicationSubmitted {
		return nil
	}

	actor := identity.Principal{TenantID: tenantID, Role: identity.RoleAPI}
	a, err := rc.apps.Apply(ctx, actor, evt.JobID, application.ApplyParams{
		CandidateID: c.ID,
		Source:      source,
	})
	if err != nil {
		return err
	}
	res.ApplicationID = a.ID
	return nil
}

func (rc *Receiver) observe(source string, res *InboundResult, err error) {
	if rc.observer == nil {
		return
	}

	var payloadErr *PayloadError
	outcome := InboundAccepted
	switch {
	case err == nil && res.Duplicate:
		outcome = InboundDuplicate
	case err == nil:
	case errors.Is(err, ErrSourceNotFound):
		// Unknown sources come straight from the URL and must not become label values.
		source, outcome = "unknown", InboundRejected
	case errors.Is(err, ErrInvalidSignature), errors.Is(err, ErrStaleTimestamp):
		outcome = InboundRejected
	case errors.As(err, &payloadErr):
		outcome = InboundInvalid
	default:
		outcome = InboundError
	}
	rc.observer.ObserveInbound(source, outcome)
}
