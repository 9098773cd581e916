package job_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ferdiebergado/hireloop/internal/identity"
	"github.com/ferdiebergado/hireloop/internal/job"
	"github.com/ferdiebergado/hireloop/internal/pkg/message"
	"github.com/ferdiebergado/hireloop/internal/pkg/web"
)

func ctxAs(role string) context.Context {
	return identity.ContextWith(context.Background(), identity.Principal{UserID: "u1", TenantID: tenantID, Role: role})
}

func TestHandler_List(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		role       string
		query      string
		code       int
		wantStatus string
	}{
		{"recruiter sees all", identity.RoleRecruiter, "", http.StatusOK, ""},
		{"recruiter filters by status", identity.RoleRecruiter, "?status=draft", http.StatusOK, job.StatusDraft},
		{"candidate only sees open jobs", identity.RoleCandidate, "?status=draft", http.StatusOK, job.StatusOpen},
		{"invalid status", identity.RoleRecruiter, "?status=archived", http.StatusUnprocessableEntity, ""},
		{"limit too large", identity.RoleRecruiter, "?limit=1000", http.StatusUnprocessableEntity, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got job.ListParams
			h := job.NewHandler(&job.StubService{
				ListFunc: func(_ context.Context, params job.ListParams) ([]job.Job, int, error) {
					got = params
					return []job.Job{{ID: jobID, Title: "Backend Engineer", Status: job.StatusOpen}}, 1, nil
				},
			})

			req := httptest.NewRequestWithContext(ctxAs(tt.role), http.MethodGet, "/jobs"+tt.query, http.NoBody)
			rec := httptest.NewRecorder()
			h.List(rec, req)

			if rec.Code != tt.code {
				t.Fatalf(message.FmtErrStatusCode, rec.Code, tt.code)
			}
			if tt.code != http.StatusOK {
				return
			}

			if got.Status != tt.wantStatus || got.TenantID != tenantID {
				t.Errorf("params = %+v, want status %q", got, tt.wantStatus)
			}

			var res web.OKResponse[job.ListResponse]
			if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
				t.Fatal(err)
			}
			if res.Data.Total != 1 || len(res.Data.Jobs) != 1 || res.Data.Limit != 20 {
				t.Errorf("res.Data = %+v", res.Data)
			}
		})
	}
}

func TestHandler_Find(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		role   string
		id     string
		status string
		err    error
		code   int
	}{
		{"recruiter sees draft", identity.RoleRecruiter, jobID, job.StatusDraft, nil, http.StatusOK},
		{"candidate sees open", identity.RoleCandidate, jobID, job.StatusOpen, nil, http.StatusOK},
		{"candidate cannot see draft", identity.RoleCandidate, jobID, job.StatusDraft, nil, http.StatusNotFound},
		{"unknown job", identity.RoleRecruiter, jobID, "", job.ErrNotFound, http.StatusNotFound},
		{"malformed id", identity.RoleRecruiter, "abc", "", nil, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := job.NewHandler(&job.StubService{
				FindFunc: func(_ context.Context, _, id string) (*job.Job, error) {
					if tt.err != nil {
						return nil, tt.err
					}
					return &job.Job{ID: id, Status: tt.status}, nil
				},
			})

			req := httptest.NewRequestWithContext(ctxAs(tt.role), http.MethodGet, "/jobs/"+tt.id, http.NoBody)
			req.SetPathValue("id", tt.id)
			rec := httptest.NewRecorder()
			h.Find(rec, req)

			if rec.Code != tt.code {
				t.Errorf(message.FmtErrStatusCode, rec.Code, tt.code)
			}
		})
	}
}

func TestHandler_Create(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		principal identity.Principal
		err       error
		code      int
		createdBy bool
	}{
		{"recruiter", identity.Principal{UserID: "u1", TenantID: tenantID, Role: identity.RoleRecruiter}, nil, http.StatusCreated, true},
		{"api key", identity.Principal{TenantID: tenantID, Role: identity.RoleAPI}, nil, http.StatusCreated, false},
		{"salary range", identity.Principal{UserID: "u1", TenantID: tenantID, Role: identity.RoleRecruiter}, job.ErrSalaryRange, http.StatusUnprocessableEntity, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := job.NewHandler(&job.StubService{
				CreateFunc: func(_ context.Context, params job.CreateParams) (*job.Job, error) {
					if (params.CreatedBy != nil) != tt.createdBy {
						t.Errorf("params.CreatedBy = %v, want set: %v", params.CreatedBy, tt.createdBy)
					}
					if tt.err != nil {
						return nil, tt.err
					}
					return &job.Job{ID: jobID, Title: params.Title, Status: job.StatusDraft}, nil
				},
			})

			ctx := identity.ContextWith(context.Background(), tt.principal)
			ctx = web.NewContextWithParams(ctx, job.CreateRequest{Title: "Backend Engineer"})
			req := httptest.NewRequestWithContext(ctx, http.MethodPost, "/jobs", http.NoBody)
			rec := httptest.NewRecorder()
			h.Create(rec, req)

			if rec.Code != tt.code {
				t.Errorf(message.FmtErrStatusCode, rec.Code, tt.code)
			}
		})
	}
}

func TestHandler_Publish(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		code int
	}{
		{"published", nil, http.StatusOK},
		{"not a draft", fmt.Errorf("open -> open: %w", job.ErrInvalidStatus), http.StatusConflict},
		{"not found", job.ErrNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := job.NewHandler(&job.StubService{
				PublishFunc: func(_ context.Context, _, id string) (*job.Job, error) {
					if tt.err != nil {
						return nil, tt.err
					}
					return &job.Job{ID: id, Status: job.StatusOpen}, nil
				},
			})

			req := httptest.NewRequestWithContext(ctxAs(identity.RoleRecruiter), http.MethodPost, "/jobs/"+jobID+"/publish", http.NoBody)
			req.SetPathValue("id", jobID)
			rec := httptest.NewRecorder()
			h.Publish(rec, req)

			if rec.Code != tt.code {
				t.Errorf(message.FmtErrStatusCode, rec.Code, tt.code)
			}
		})
	}
}
