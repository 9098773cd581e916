package candidate

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/ferdiebergado/hireloop/internal/config"
	"github.com/ferdiebergado/hireloop/internal/identity"
	"github.com/ferdiebergado/hireloop/internal/job"
	"github.com/ferdiebergado/hireloop/internal/pkg/message"
	"github.com/ferdiebergado/hireloop/internal/pkg/web"
	"github.com/google/uuid"
)

const maskChar = "*"

type CandidateService interface {
	Create(ctx context.Context, params CreateParams) (*Candidate, error)
	Find(ctx context.Context, tenantID, candidateID string) (*Candidate, error)
	FindByUser(ctx context.Context, tenantID, userID string) (*Candidate, error)
	Update(ctx context.Context, tenantID, candidateID string, params UpdateParams) (*Candidate, error)
	Search(ctx context.Context, params SearchParams) (*SearchResult, error)
}

type Handler struct {
	svc CandidateService
	cfg *config.Search
}

func NewHandler(svc CandidateService, cfg *config.Search) *Handler {
	return &Handler{svc: svc, cfg: cfg}
}

type CreateRequest struct {
	Email           string   `json:"email" validate:"required,email,max=254"`
	FullName        string   `json:"full_name" validate:"required,max=200"`
	Headline        string   `json:"headline" validate:"max=300"`
	Location        string   `json:"location" validate:"max=200"`
	YearsExperience int      `json:"years_experience" validate:"min=0,max=70"`
	Skills          []string `json:"skills" validate:"max=100,dive,min=1,max=50"`
	ResumeURL       string   `json:"resume_url" validate:"omitempty,url,max=2048"`
}

func (r CreateRequest) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("email", maskChar),
		slog.String("full_name", maskChar),
		slog.Int("years_experience", r.YearsExperience),
		slog.Any("skills", r.Skills),
	)
}

type UpdateRequest struct {
	FullName        *string  `json:"full_name" validate:"omitempty,min=1,max=200"`
	Headline        *string  `json:"headline" validate:"omitempty,max=300"`
	Location        *string  `json:"location" validate:"omitempty,max=200"`
	YearsExperience *int     `json:"years_experience" validate:"omitempty,min=0,max=70"`
	Skills          []string `json:"skills" validate:"omitempty,max=100,dive,min=1,max=50"`
	ResumeURL       *string  `json:"resume_url" validate:"omitempty,url,max=2048"`
}

type CandidateData struct {
	ID              string    `json:"id"`
	UserID          *string   `json:"user_id,omitempty"`
	Email           string    `json:"email"`
	FullName        string    `json:"full_name"`
	Headline        string    `json:"headline"`
	Location        string    `json:"location"`
	YearsExperience int       `json:"years_experience"`
	Skills          []string  `json:"skills"`
	ResumeURL       string    `json:"resume_url,omitempty"`
	Source          string    `json:"source"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Create adds a profile. Candidates create their own, linked to their user.
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
		TenantID:        p.TenantID,
		Email:           req.Email,
		FullName:        req.FullName,
		Headline:        req.Headline,
		Location:        req.Location,
		YearsExperience: req.YearsExperience,
		Skills:          req.Skills,
		ResumeURL:       req.ResumeURL,
		Source:          SourceManual,
	}
	switch p.Role {
	case identity.RoleCandidate:
		params.UserID = &p.UserID
		params.Source = SourceSelf
	case identity.RoleAPI:
		params.Source = SourceAPI
	}

	c, err := h.svc.Create(r.Context(), params)
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicate):
			web.RespondConflict(w, err, "A candidate with this email already exists.", map[string]string{"email": "email is already in use"})
		case errors.Is(err, ErrProfileTaken):
			web.RespondConflict(w, err, "You already have a candidate profile.", nil)
		default:
			web.RespondInternalServerError(w, err)
		}
		return
	}

	msg := "Candidate created."
	web.RespondCreated(w, &msg, toData(c))
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	_, c, ok := h.accessible(w, r)
	if !ok {
		return
	}
	web.RespondOK(w, nil, toData(c))
}

// Me returns the profile linked to the calling candidate.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	p, err := identity.FromContext(r.Context())
	if err != nil || p.UserID == "" {
		web.RespondUnauthorized(w, identity.ErrNoPrincipal, message.InvalidUser, nil)
		return
	}

	c, err := h.svc.FindByUser(r.Context(), p.TenantID, p.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			web.RespondNotFound(w, err, message.NotFound, nil)
			return
		}
		web.RespondInternalServerError(w, err)
		return
	}
	web.RespondOK(w, nil, toData(c))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	p, c, ok := h.accessible(w, r)
	if !ok {
		return
	}

	req, err := web.ParamsFromContext[UpdateRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	updated, err := h.svc.Update(r.Context(), p.TenantID, c.ID, UpdateParams(req))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			web.RespondNotFound(w, err, message.NotFound, nil)
			return
		}
		web.RespondInternalServerError(w, err)
		return
	}

	msg := "Candidate updated."
	web.RespondOK(w, &msg, toData(updated))
}

// accessible loads the candidate in the path. Candidates may only reach their own profile.
func (h *Handler) accessible(w http.ResponseWriter, r *http.Request) (identity.Principal, *Candidate, bool) {
	p, err := identity.FromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return p, nil, false
	}

	candidateID, err := web.PathID(r, "id")
	if err != nil {
		web.RespondNotFound(w, err, message.NotFound, nil)
		return p, nil, false
	}

	c, err := h.svc.Find(r.Context(), p.TenantID, candidateID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			web.RespondNotFound(w, err, message.NotFound, nil)
			return p, nil, false
		}
		web.RespondInternalServerError(w, err)
		return p, nil, false
	}

	if !p.IsStaff() && !c.OwnedBy(p.UserID) {
		web.RespondNotFound(w, ErrNotFound, message.NotFound, nil)
		return p, nil, false
	}

	return p, c, true
}

type MatchData struct {
	CandidateData
	Score         float64  `json:"score"`
	MatchedSkills []string `json:"matched_skills"`
}

type SearchResponse struct {
	Candidates []MatchData `json:"candidates"`
	Total      int         `json:"total"`
	Limit      int         `json:"limit"`
	Offset     int         `json:"offset"`
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	p, err := identity.FromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	params, errs := h.parseSearch(r)
	if errs != nil {
		web.RespondUnprocessableEntity(w, errors.New("invalid search query"), message.InvalidInput, errs)
		return
	}
	params.TenantID = p.TenantID

	res, err := h.svc.Search(r.Context(), params)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			web.RespondUnprocessableEntity(w, err, message.InvalidInput, map[string]string{"job_id": "job_id does not exist"})
			return
		}
		web.RespondInternalServerError(w, err)
		return
	}

	out := &SearchResponse{
		Candidates: make([]MatchData, 0, len(res.Matches)),
		Total:      res.Total,
		Limit:      params.Limit,
		Offset:     params.Offset,
	}
	for i := range res.Matches {
		m := &res.Matches[i]
		out.Candidates = append(out.Candidates, MatchData{
			CandidateData: *toData(&m.Candidate),
			Score:         m.Score,
			MatchedSkills: m.MatchedSkills,
		})
	}
	web.RespondOK(w, nil, out)
}

func (h *Handler) parseSearch(r *http.Request) (SearchParams, map[string]string) {
	q := r.URL.Query()
	page, errs := web.ParsePage(q, h.cfg.DefaultLimit, h.cfg.MaxLimit)
	if errs == nil {
		errs = make(map[string]string)
	}

	params := SearchParams{
		Text:     q.Get("q"),
		Skills:   web.SplitList(q.Get("skills")),
		Location: q.Get("location"),
		Limit:    page.Limit,
		Offset:   page.Offset,
	}

	if raw := q.Get("min_experience"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			errs["min_experience"] = "min_experience must be a non-negative integer"
		}
		params.MinExperience = n
	}

	if raw := q.Get("job_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			errs["job_id"] = "job_id must be a valid UUID"
		}
		params.JobID = id.String()
	}

	if len(errs) > 0 {
		return params, errs
	}
	return params, nil
}

func toData(c *Candidate) *CandidateData {
	skills := c.Skills
	if skills == nil {
		skills = []string{}
	}
	return &CandidateData{
		ID:              c.ID,
		UserID:          c.UserID,
		Email:           c.Email,
		FullName:        c.FullName,
		Headline:        c.Headline,
		Location:        c.Location,
		YearsExperience: c.YearsExperience,
		Skills:          skills,
		ResumeURL:       c.ResumeURL,
		Source:          c.Source,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}
