package job

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ferdiebergado/hireloop/internal/identity"
	"github.com/ferdiebergado/hireloop/internal/pkg/message"
	"github.com/ferdiebergado/hireloop/internal/pkg/web"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type JobService interface {
	Create(ctx context.Context, params CreateParams) (*Job, error)
	Find(ctx context.Context, tenantID, jobID string) (*Job, error)
	List(ctx context.Context, params ListParams) ([]Job, int, error)
	Update(ctx context.Context, tenantID, jobID string, params UpdateParams) (*Job, error)
	Delete(ctx context.Context, tenantID, jobID string) error
	Publish(ctx context.Context, tenantID, jobID string) (*Job, error)
	Close(ctx context.Context, tenantID, jobID string) (*Job, error)
}

type Handler struct {
	svc JobService
}

func NewHandler(svc JobService) *Handler {
	return &Handler{svc: svc}
}

type CreateRequest struct {
	Title          string   `json:"title" validate:"required,max=200"`
	Description    string   `json:"description" validate:"max=20000"`
	Location       string   `json:"location" validate:"max=200"`
	EmploymentType string   `json:"employment_type" validate:"omitempty,oneof=full_time part_time contract internship"`
	Remote         bool     `json:"remote"`
	SalaryMin      *int     `json:"salary_min" validate:"omitempty,min=0"`
	SalaryMax      *int     `json:"salary_max" validate:"omitempty,min=0"`
	Skills         []string `json:"skills" validate:"max=50,dive,min=1,max=50"`
}

type UpdateRequest struct {
	Title          *string  `json:"title" validate:"omitempty,min=1,max=200"`
	Description    *string  `json:"description" validate:"omitempty,max=20000"`
	Location       *string  `json:"location" validate:"omitempty,max=200"`
	EmploymentType *string  `json:"employment_type" validate:"omitempty,oneof=full_time part_time contract internship"`
	Remote         *bool    `json:"remote"`
	SalaryMin      *int     `json:"salary_min" validate:"omitempty,min=0"`
	SalaryMax      *int     `json:"salary_max" validate:"omitempty,min=0"`
	Skills         []string `json:"skills" validate:"omitempty,max=50,dive,min=1,max=50"`
}

type JobData struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Location       string     `json:"location"`
	EmploymentType string     `json:"employment_type"`
	Remote         bool       `json:"remote"`
	SalaryMin      *int       `json:"salary_min,omitempty"`
	SalaryMax      *int       `json:"salary_max,omitempty"`
	Skills         []string   `json:"skills"`
	Status         string     `json:"status"`
	PublishedAt    *time.Time `json:"published_at,omitempty"`
	ClosedAt       *time.Time `json:"closed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type ListResponse struct {
	Jobs   []JobData `json:"jobs"`
	Total  int       `json:"total"`
	Limit  int       `json:"limit"`
	Offset int       `json:"offset"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	p, err := identity.FromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	req, err := web.ParamsFromContext[CreateRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	params := CreateParams{
		TenantID:       p.TenantID,
		Title:          req.Title,
		Description:    req.Description,
		Location:       req.Location,
		EmploymentType: req.EmploymentType,
		Remote:         req.Remote,
		SalaryMin:      req.SalaryMin,
		SalaryMax:      req.SalaryMax,
		Skills:         req.Skills,
	}
	if p.UserID != "" {
		params.CreatedBy = &p.UserID
	}

	j, err := h.svc.Create(r.Context(), params)
	if err != nil {
		h.fail(w, err)
		return
	}

	msg := "Job created."
	web.RespondCreated(w, &msg, toData(j))
}

// List returns the jobs of the tenant. Candidates only see open jobs.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	p, err := identity.FromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	q := r.URL.Query()
	page, errs := web.ParsePage(q, defaultPageSize, maxPageSize)

	status := q.Get("status")
	if status != "" && !ValidStatus(status) {
		if errs == nil {
			errs = make(map[string]string)
		}
		errs["status"] = "status must be one of: draft, open, closed"
	}

	if errs != nil {
		web.RespondUnprocessableEntity(w, errors.New("invalid job list query"), message.InvalidInput, errs)
		return
	}

	if !p.IsStaff() {
		status = StatusOpen
	}

	jobs, total, err := h.svc.List(r.Context(), ListParams{
		TenantID: p.TenantID,
		Status:   status,
		Query:    q.Get("q"),
		Limit:    page.Limit,
		Offset:   page.Offset,
	})
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	res := &ListResponse{Jobs: make([]JobData, 0, len(jobs)), Total: total, Limit: page.Limit, Offset: page.Offset}
	for i := range jobs {
		res.Jobs = append(res.Jobs, *toData(&jobs[i]))
	}
	web.RespondOK(w, nil, res)
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	p, jobID, ok := principalAndID(w, r)
	if !ok {
		return
	}

	j, err := h.svc.Find(r.Context(), p.TenantID, jobID)
	if err != nil {
		h.fail(w, err)
		return
	}

	if !p.IsStaff() && j.Status != StatusOpen {
		web.RespondNotFound(w, ErrNotFound, message.NotFound, nil)
		return
	}

	web.RespondOK(w, nil, toData(j))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	p, jobID, ok := principalAndID(w, r)
	if !ok {
		return
	}

	req, err := web.ParamsFromContext[UpdateRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	j, err := h.svc.Update(r.Context(), p.TenantID, jobID, UpdateParams(req))
	if err != nil {
		h.fail(w, err)
		return
	}

	msg := "Job updated."
	web.RespondOK(w, &msg, toData(j))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	p, jobID, ok := principalAndID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), p.TenantID, jobID); err != nil {
		h.fail(w, err)
		return
	}

	web.RespondNoContent(w)
}

func (h *Handler) Publish(w http.ResponseWriter, r *http.Request) {
	h.changeStatus(w, r, h.svc.Publish, "Job published.")
}

func (h *Handler) Close(w http.ResponseWriter, r *http.Request) {
	h.changeStatus(w, r, h.svc.Close, "Job closed.")
}

func (h *Handler) changeStatus(w http.ResponseWriter, r *http.Request,
	change func(ctx context.Context, tenantID, jobID string) (*Job, error), msg string) {
	p, jobID, ok := principalAndID(w, r)
	if !ok {
		return
	}

	j, err := change(r.Context(), p.TenantID, jobID)
	if err != nil {
		h.fail(w, err)
		return
	}

	web.RespondOK(w, &msg, toData(j))
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		web.RespondNotFound(w, err, message.NotFound, nil)
	case errors.Is(err, ErrInvalidStatus):
		web.RespondConflict(w, err, "The job status does not allow this action.", nil)
	case errors.Is(err, ErrSalaryRange):
		web.RespondUnprocessableEntity(w, err, message.InvalidInput,
			map[string]string{"salary_max": "salary_max must be greater than or equal to salary_min"})
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

	jobID, err := web.PathID(r, "id")
	if err != nil {
		web.RespondNotFound(w, err, message.NotFound, nil)
		return p, "", false
	}

	return p, jobID, true
}

func toData(j *Job) *JobData {
	skills := j.Skills
	if skills == nil {
		skills = []string{}
	}
	return &JobData{
		ID:             j.ID,
		Title:          j.Title,
		Description:    j.Description,
		Location:       j.Location,
		EmploymentType: j.EmploymentType,
		Remote:         j.Remote,
		SalaryMin:      j.SalaryMin,
		SalaryMax:      j.SalaryMax,
		Skills:         skills,
		Status:         j.Status,
		PublishedAt:    j.PublishedAt,
		ClosedAt:       j.ClosedAt,
		CreatedAt:      j.CreatedAt,
		UpdatedAt:      j.UpdatedAt,
	}
}
