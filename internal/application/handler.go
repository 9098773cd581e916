package application

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ferdiebergado/hireloop/internal/candidate"
	"github.com/ferdiebergado/hireloop/internal/identity"
	"github.com/ferdiebergado/hireloop/internal/job"
	"github.com/ferdiebergado/hireloop/internal/pkg/message"
	"github.com/ferdiebergado/hireloop/internal/pkg/web"
)

type ApplicationService interface {
	Apply(ctx context.Context, actor identity.Principal, jobID string, params ApplyParams) (*Application, error)
	ListByJob(ctx context.Context, tenantID, jobID, stage string) ([]Application, error)
	ListMine(ctx context.Context, actor identity.Principal) ([]Application, error)
	Authorize(ctx context.Context, actor identity.Principal, appID string) (*Application, error)
	MoveStage(ctx context.Context, actor identity.Principal, appID string, params MoveParams) (*Application, error)
	Events(ctx context.Context, actor identity.Principal, appID string) ([]StageEvent, error)
}

type Handler struct {
	svc ApplicationService
}

func NewHandler(svc ApplicationService) *Handler {
	return &Handler{svc: svc}
}

type ApplyRequest struct {
	CandidateID string `json:"candidate_id" validate:"omitempty,uuid"`
	Source      string `json:"source" validate:"omitempty,max=50"`
}

type MoveRequest struct {
	Stage  string `json:"stage" validate:"required,oneof=screening interview offer hired rejected withdrawn"`
	Note   string `json:"note" validate:"max=2000"`
	Reason string `json:"reason" validate:"max=500"`
}

type ApplicationData struct {
	ID             string    `json:"id"`
	JobID          string    `json:"job_id"`
	CandidateID    string    `json:"candidate_id"`
	Stage          string    `json:"stage"`
	Source         string    `json:"source"`
	RejectedReason *string   `json:"rejected_reason,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type ListResponse struct {
	Applications []ApplicationData `json:"applications"`
}

type StageEventData struct {
	ID        string    `json:"id"`
	FromStage *string   `json:"from_stage"`
	ToStage   string    `json:"to_stage"`
	ActorID   *string   `json:"actor_id,omitempty"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type EventsResponse struct {
	Events []StageEventData `json:"events"`
}

func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	p, jobID, ok := principalAndID(w, r)
	if !ok {
		return
	}

	req, err := web.ParamsFromContext[ApplyRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	a, err := h.svc.Apply(r.Context(), p, jobID, ApplyParams(req))
	if err != nil {
		fail(w, err)
		return
	}

	msg := "Application submitted."
	web.RespondCreated(w, &msg, toData(a))
}

func (h *Handler) ListByJob(w http.ResponseWriter, r *http.Request) {
	p, jobID, ok := principalAndID(w, r)
	if !ok {
		return
	}

	stage := r.URL.Query().Get("stage")
	if stage != "" && !ValidStage(stage) {
		web.RespondUnprocessableEntity(w, errors.New("invalid stage filter"), message.InvalidInput,
			map[string]string{"stage": "stage must be a valid pipeline stage"})
		return
	}

	apps, err := h.svc.ListByJob(r.Context(), p.TenantID, jobID, stage)
	if err != nil {
		fail(w, err)
		return
	}
	web.RespondOK(w, nil, toList(apps))
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	p, err := identity.FromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	apps, err := h.svc.ListMine(r.Context(), p)
	if err != nil {
		fail(w, err)
		return
	}
	web.RespondOK(w, nil, toList(apps))
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	p, appID, ok := principalAndID(w, r)
	if !ok {
		return
	}

	a, err := h.svc.Authorize(r.Context(), p, appID)
	if err != nil {
		fail(w, err)
		return
	}
	web.RespondOK(w, nil, toData(a))
}

func (h *Handler) MoveStage(w http.ResponseWriter, r *http.Request) {
	p, appID, ok := principalAndID(w, r)
	if !ok {
		return
	}

	req, err := web.ParamsFromContext[MoveRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	a, err := h.svc.MoveStage(r.Context(), p, appID, MoveParams(req))
	if err != nil {
		fail(w, err)
		return
	}

	msg := "Application moved to " + a.Stage + "."
	web.RespondOK(w, &msg, toData(a))
}

func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	p, appID, ok := principalAndID(w, r)
	if !ok {
		return
	}

	events, err := h.svc.Events(r.Context(), p, appID)
	if err != nil {
		fail(w, err)
		return
	}

	res := &EventsResponse{Events: make([]StageEventData, 0, len(events))}
	for _, e := range events {
		res.Events = append(res.Events, StageEventData{
			ID:        e.ID,
			FromStage: e.FromStage,
			ToStage:   e.ToStage,
			ActorID:   e.ActorID,
			Note:      e.Note,
			CreatedAt: e.CreatedAt,
		})
	}
	web.RespondOK(w, nil, res)
}

func fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, job.ErrNotFound):
		web.RespondNotFound(w, err, message.NotFound, nil)
	case errors.Is(err, candidate.ErrNotFound):
		web.RespondUnprocessableEntity(w, err, message.InvalidInput, map[string]string{"candidate_id": "candidate_id does not exist"})
	case errors.Is(err, ErrCandidateRequired):
		web.RespondUnprocessableEntity(w, err, message.InvalidInput, map[string]string{"candidate_id": "candidate_id is required"})
	case errors.Is(err, ErrDuplicate):
		web.RespondConflict(w, err, "The candidate already applied to this job.", nil)
	case errors.Is(err, ErrJobNotOpen):
		web.RespondConflict(w, err, "The job is not accepting applications.", nil)
	case errors.Is(err, ErrInvalidTransition):
		web.RespondConflict(w, err, "The application cannot move to that stage.", nil)
	case errors.Is(err, ErrNoProfile):
		web.RespondConflict(w, err, "Create your candidate profile before applying.", nil)
	case errors.Is(err, ErrForbidden):
		web.RespondForbidden(w, err, message.Forbidden, nil)
	default:
		web.RespondInternalServerError(w, err)
	}
}

func principalAndID(w http.ResponseWriter, r *http.Request) (identity.Principal, string, bool) {
	p, err := identity.FromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return p, "", false
	}

	id, err := web.PathID(r, "id")
	if err != nil {
		web.RespondNotFound(w, err, message.NotFound, nil)
		return p, "", false
	}

	return p, id, true
}

func toList(apps []Application) *ListResponse {
	res := &ListResponse{Applications: make([]ApplicationData, 0, len(apps))}
	for i := range apps {
		res.Applications = append(res.Applications, *toData(&apps[i]))
	}
	return res
}

func toData(a *Application) *ApplicationData {
	return &ApplicationData{
		ID:             a.ID,
		JobID:          a.JobID,
		CandidateID:    a.CandidateID,
		Stage:          a.Stage,
		Source:         a.Source,
		RejectedReason: a.RejectedReason,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}
