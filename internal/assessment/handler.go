package assessment

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ferdiebergado/hireloop/internal/application"
	"github.com/ferdiebergado/hireloop/internal/identity"
	"github.com/ferdiebergado/hireloop/internal/job"
	"github.com/ferdiebergado/hireloop/internal/pkg/message"
	"github.com/ferdiebergado/hireloop/internal/pkg/web"
)

type AssessmentService interface {
	Create(ctx context.Context, params CreateParams) (*Assessment, error)
	ListByJob(ctx context.Context, tenantID, jobID string) ([]Assessment, error)
	Record(ctx context.Context, actor identity.Principal, assessmentID string, params RecordParams) (*Result, error)
	Results(ctx context.Context, actor identity.Principal, appID string) ([]Result, error)
}

type Handler struct {
	svc AssessmentService
}

func NewHandler(svc AssessmentService) *Handler {
	return &Handler{svc: svc}
}

type CreateRequest struct {
	Title        string `json:"title" validate:"required,max=200"`
	Instructions string `json:"instructions" validate:"max=20000"`
	MaxScore     int    `json:"max_score" validate:"required,min=1,max=10000"`
}

type RecordRequest struct {
	ApplicationID string `json:"application_id" validate:"required,uuid"`
	Score         int    `json:"score" validate:"min=0"`
	Feedback      string `json:"feedback" validate:"max=5000"`
}

type AssessmentData struct {
	ID           string    `json:"id"`
	JobID        string    `json:"job_id"`
	Title        string    `json:"title"`
	Instructions string    `json:"instructions"`
	MaxScore     int       `json:"max_score"`
	CreatedAt    time.Time `json:"created_at"`
}

type ListResponse struct {
	Assessments []AssessmentData `json:"assessments"`
}

type ResultData struct {
	ID              string    `json:"id"`
	AssessmentID    string    `json:"assessment_id"`
	AssessmentTitle string    `json:"assessment_title"`
	ApplicationID   string    `json:"application_id"`
	Score           int       `json:"score"`
	MaxScore        int       `json:"max_score"`
	Feedback        string    `json:"feedback"`
	SubmittedAt     time.Time `json:"submitted_at"`
}

type ResultsResponse struct {
	Results []ResultData `json:"results"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	p, jobID, ok := principalAndID(w, r)
	if !ok {
		return
	}

	req, err := web.ParamsFromContext[CreateRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	a, err := h.svc.Create(r.Context(), CreateParams{
		TenantID:     p.TenantID,
		JobID:        jobID,
		Title:        req.Title,
		Instructions: req.Instructions,
		MaxScore:     req.MaxScore,
	})
	if err != nil {
		fail(w, err)
		return
	}

	msg := "Assessment created."
	web.RespondCreated(w, &msg, toData(a))
}

func (h *Handler) ListByJob(w http.ResponseWriter, r *http.Request) {
	p, jobID, ok := principalAndID(w, r)
	if !ok {
		return
	}

	list, err := h.svc.ListByJob(r.Context(), p.TenantID, jobID)
	if err != nil {
		fail(w, err)
		return
	}

	res := &ListResponse{Assessments: make([]AssessmentData, 0, len(list))}
	for i := range list {
		res.Assessments = append(res.Assessments, *toData(&list[i]))
	}
	web.RespondOK(w, nil, res)
}

func (h *Handler) Record(w http.ResponseWriter, r *http.Request) {
	p, assessmentID, ok := principalAndID(w, r)
	if !ok {
		return
	}

	req, err := web.ParamsFromContext[RecordRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	res, err := h.svc.Record(r.Context(), p, assessmentID, RecordParams(req))
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			web.RespondUnprocessableEntity(w, err, message.InvalidInput, map[string]string{"application_id": "application does not exist"})
			return
		}
		fail(w, err)
		return
	}

	msg := "Assessment result recorded."
	web.RespondCreated(w, &msg, toResultData(res))
}

func (h *Handler) Results(w http.ResponseWriter, r *http.Request) {
	p, appID, ok := principalAndID(w, r)
	if !ok {
		return
	}

	results, err := h.svc.Results(r.Context(), p, appID)
	if err != nil {
		fail(w, err)
		return
	}

	res := &ResultsResponse{Results: make([]ResultData, 0, len(results))}
	for i := range results {
		res.Results = append(res.Results, *toResultData(&results[i]))
	}
	web.RespondOK(w, nil, res)
}

func fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, job.ErrNotFound), errors.Is(err, application.ErrNotFound):
		web.RespondNotFound(w, err, message.NotFound, nil)
	case errors.Is(err, ErrDuplicate):
		web.RespondConflict(w, err, err.Error(), nil)
	case errors.Is(err, ErrScoreRange):
		web.RespondUnprocessableEntity(w, err, message.InvalidInput, map[string]string{"score": "score must be between 0 and max_score"})
	case errors.Is(err, ErrJobMismatch):
		web.RespondUnprocessableEntity(w, err, message.InvalidInput, map[string]string{"application_id": err.Error()})
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

func toData(a *Assessment) *AssessmentData {
	return &AssessmentData{
		ID:           a.ID,
		JobID:        a.JobID,
		Title:        a.Title,
		Instructions: a.Instructions,
		MaxScore:     a.MaxScore,
		CreatedAt:    a.CreatedAt,
	}
}

func toResultData(res *Result) *ResultData {
	return &ResultData{
		ID:              res.ID,
		AssessmentID:    res.AssessmentID,
		AssessmentTitle: res.AssessmentTitle,
		ApplicationID:   res.ApplicationID,
		Score:           res.Score,
		MaxScore:        res.MaxScore,
		Feedback:        res.Feedback,
		SubmittedAt:     res.SubmittedAt,
	}
}
