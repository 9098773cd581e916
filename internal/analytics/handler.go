package analytics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ferdiebergado/hireloop/internal/identity"
	"github.com/ferdiebergado/hireloop/internal/job"
	"github.com/ferdiebergado/hireloop/internal/pkg/message"
	"github.com/ferdiebergado/hireloop/internal/pkg/web"
)

type AnalyticsService interface {
	Pipeline(ctx context.Context, tenantID, jobID string) ([]StageCount, error)
	Overview(ctx context.Context, tenantID string, from, to time.Time) (*Overview, error)
	Funnel(ctx context.Context, tenantID, jobID string) (*Funnel, error)
}

type Handler struct {
	svc AnalyticsService
}

func NewHandler(svc AnalyticsService) *Handler {
	return &Handler{svc: svc}
}

type StageCountData struct {
	Stage string `json:"stage"`
	Count int    `json:"count"`
}

type PipelineResponse struct {
	JobID  string           `json:"job_id,omitempty"`
	Stages []StageCountData `json:"stages"`
}

type OverviewResponse struct {
	From                 time.Time      `json:"from"`
	To                   time.Time      `json:"to"`
	OpenJobs             int            `json:"open_jobs"`
	Applications         int            `json:"applications"`
	Hires                int            `json:"hires"`
	AvgDaysToHire        *float64       `json:"avg_days_to_hire"`
	ApplicationsBySource map[string]int `json:"applications_by_source"`
}

type FunnelStageData struct {
	Stage      string  `json:"stage"`
	Count      int     `json:"count"`
	Conversion float64 `json:"conversion"`
}

type FunnelResponse struct {
	JobID     string            `json:"job_id"`
	Stages    []FunnelStageData `json:"stages"`
	Rejected  int               `json:"rejected"`
	Withdrawn int               `json:"withdrawn"`
}

func (h *Handler) Pipeline(w http.ResponseWriter, r *http.Request) {
	p, err := identity.FromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	jobID := r.URL.Query().Get("job_id")
	if jobID != "" {
		if err := uuid.Validate(jobID); err != nil {
			web.RespondUnprocessableEntity(w, err, message.InvalidInput, map[string]string{"job_id": "job_id must be a valid id"})
			return
		}
	}

	counts, err := h.svc.Pipeline(r.Context(), p.TenantID, jobID)
	if err != nil {
		fail(w, err)
		return
	}

	res := &PipelineResponse{JobID: jobID, Stages: make([]StageCountData, 0, len(counts))}
	for _, c := range counts {
		res.Stages = append(res.Stages, StageCountData(c))
	}
	web.RespondOK(w, nil, res)
}

func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	p, err := identity.FromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	q := r.URL.Query()
	errs := make(map[string]string)
	var from, to time.Time
	if raw := q.Get("from"); raw != "" {
		if from, err = web.ParseTime(raw); err != nil {
			errs["from"] = "from must be a date or an RFC 3339 timestamp"
		}
	}
	if raw := q.Get("to"); raw != "" {
		if to, err = web.ParseTime(raw); err != nil {
			errs["to"] = "to must be a date or an RFC 3339 timestamp"
		}
	}
	if len(errs) > 0 {
		web.RespondUnprocessableEntity(w, errors.New("invalid date range"), message.InvalidInput, errs)
		return
	}

	o, err := h.svc.Overview(r.Context(), p.TenantID, from, to)
	if err != nil {
		fail(w, err)
		return
	}

	web.RespondOK(w, nil, &OverviewResponse{
		From:                 o.From,
		To:                   o.To,
		OpenJobs:             o.OpenJobs,
		Applications:         o.Applications,
		Hires:                o.Hires,
		AvgDaysToHire:        o.AvgDaysToHire,
		ApplicationsBySource: o.ApplicationsFrom,
	})
}

func (h *Handler) Funnel(w http.ResponseWriter, r *http.Request) {
	p, err := identity.FromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	jobID, err := web.PathID(r, "id")
	if err != nil {
		web.RespondNotFound(w, err, message.NotFound, nil)
		return
	}

	f, err := h.svc.Funnel(r.Context(), p.TenantID, jobID)
	if err != nil {
		fail(w, err)
		return
	}

	res := &FunnelResponse{
		JobID:     f.JobID,
		Stages:    make([]FunnelStageData, 0, len(f.Stages)),
		Rejected:  f.Rejected,
		Withdrawn: f.Withdrawn,
	}
	for _, s := range f.Stages {
		res.Stages = append(res.Stages, FunnelStageData{Stage: s.Stage, Count: s.Reached, Conversion: s.Conversion})
	}
	web.RespondOK(w, nil, res)
}

func fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, job.ErrNotFound):
		web.RespondNotFound(w, err, message.NotFound, nil)
	case errors.Is(err, ErrInvalidRange):
		web.RespondUnprocessableEntity(w, err, message.InvalidInput, map[string]string{"from": err.Error()})
	default:
		web.RespondInternalServerError(w, err)
	}
}
