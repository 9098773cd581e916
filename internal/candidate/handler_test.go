package candidate_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ferdiebergado/hireloop/internal/candidate"
	"github.com/ferdiebergado/hireloop/internal/identity"
	"github.com/ferdiebergado/hireloop/internal/job"
	"github.com/ferdiebergado/hireloop/internal/pkg/message"
	"github.com/ferdiebergado/hireloop/internal/pkg/web"
)

const candidateID = "6b0f7f1c-2f4e-4a7d-8c1b-5e3d9a2b4c6f"

func ctxAs(userID, role string) context.Context {
	return identity.ContextWith(context.Background(), identity.Principal{UserID: userID, TenantID: tenantID, Role: role})
}

func TestHandler_Create(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		role       string
		err        error
		code       int
		wantSource string
		wantLinked bool
	}{
		{"recruiter", identity.RoleRecruiter, nil, http.StatusCreated, candidate.SourceManual, false},
		{"candidate for self", identity.RoleCandidate, nil, http.StatusCreated, candidate.SourceSelf, true},
		{"api key", identity.RoleAPI, nil, http.StatusCreated, candidate.SourceAPI, false},
		{"duplicate email", identity.RoleRecruiter, candidate.ErrDuplicate, http.StatusConflict, candidate.SourceManual, false},
		{"second profile", identity.RoleCandidate, candidate.ErrProfileTaken, http.StatusConflict, candidate.SourceSelf, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := candidate.NewHandler(&candidate.StubService{
				CreateFunc: func(_ context.Context, params candidate.CreateParams) (*candidate.Candidate, error) {
					if params.Source != tt.wantSource {
						t.Errorf("params.Source = %q, want: %q", params.Source, tt.wantSource)
					}
					if (params.UserID != nil) != tt.wantLinked {
						t.Errorf("params.UserID = %v, want linked: %v", params.UserID, tt.wantLinked)
					}
					if tt.err != nil {
						return nil, tt.err
					}
					return &candidate.Candidate{ID: candidateID, Email: params.Email, Source: params.Source}, nil
				},
			}, searchCfg)

			ctx := web.NewContextWithParams(ctxAs("u1", tt.role), candidate.CreateRequest{Email: "ana@example.com", FullName: "Ana"})
			req := httptest.NewRequestWithContext(ctx, http.MethodPost, "/candidates", http.NoBody)
			rec := httptest.NewRecorder()
			h.Create(rec, req)

			if rec.Code != tt.code {
				t.Errorf(message.FmtErrStatusCode, rec.Code, tt.code)
			}
		})
	}
}

func TestHandler_Find(t *testing.T) {
	t.Parallel()

	owner := "u-owner"

	tests := []struct {
		name   string
		userID string
		role   string
		code   int
	}{
		{"recruiter", "u-recruiter", identity.RoleRecruiter, http.StatusOK},
		{"owning candidate", owner, identity.RoleCandidate, http.StatusOK},
		{"other candidate", "u-other", identity.RoleCandidate, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := candidate.NewHandler(&candidate.StubService{
				FindFunc: func(_ context.Context, _, id string) (*candidate.Candidate, error) {
					return &candidate.Candidate{ID: id, UserID: &owner}, nil
				},
			}, searchCfg)

			req := httptest.NewRequestWithContext(ctxAs(tt.userID, tt.role), http.MethodGet, "/candidates/"+candidateID, http.NoBody)
			req.SetPathValue("id", candidateID)
			rec := httptest.NewRecorder()
			h.Find(rec, req)

			if rec.Code != tt.code {
				t.Errorf(message.FmtErrStatusCode, rec.Code, tt.code)
			}
		})
	}
}

func TestHandler_Search(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		query  string
		jobErr bool
		code   int
		want   candidate.SearchParams
	}{
		{
			name:  "all parameters",
			query: "?q=backend+go&skills=go,%20sql&location=Manila&min_experience=3&job_id=" + jobID + "&limit=5&offset=10",
			code:  http.StatusOK,
			want:  candidate.SearchParams{TenantID: tenantID, Text: "backend go", Location: "Manila", MinExperience: 3, JobID: jobID, Limit: 5, Offset: 10},
		},
		{
			name:  "defaults",
			query: "",
			code:  http.StatusOK,
			want:  candidate.SearchParams{TenantID: tenantID, Limit: 20},
		},
		{"negative experience", "?min_experience=-1", false, http.StatusUnprocessableEntity, candidate.SearchParams{}},
		{"malformed job id", "?job_id=42", false, http.StatusUnprocessableEntity, candidate.SearchParams{}},
		{"limit above max", "?limit=101", false, http.StatusUnprocessableEntity, candidate.SearchParams{}},
		{"unknown job", "?job_id=" + jobID, true, http.StatusUnprocessableEntity, candidate.SearchParams{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got candidate.SearchParams
			h := candidate.NewHandler(&candidate.StubService{
				SearchFunc: func(_ context.Context, params candidate.SearchParams) (*candidate.SearchResult, error) {
					got = params
					if tt.jobErr {
						return nil, job.ErrNotFound
					}
					return &candidate.SearchResult{
						Matches: []candidate.Match{{Candidate: candidate.Candidate{ID: candidateID}, Score: 0.9, MatchedSkills: []string{"go"}}},
						Total:   1,
					}, nil
				},
			}, searchCfg)

			req := httptest.NewRequestWithContext(ctxAs("u1", identity.RoleRecruiter), http.MethodGet, "/candidates/search"+tt.query, http.NoBody)
			rec := httptest.NewRecorder()
			h.Search(rec, req)

			if rec.Code != tt.code {
				t.Fatalf(message.FmtErrStatusCode, rec.Code, tt.code)
			}
			if tt.code != http.StatusOK {
				return
			}

			if got.TenantID != tt.want.TenantID || got.Text != tt.want.Text || got.Location != tt.want.Location ||
				got.MinExperience != tt.want.MinExperience || got.JobID != tt.want.JobID ||
				got.Limit != tt.want.Limit || got.Offset != tt.want.Offset {
				t.Errorf("params = %+v, want: %+v", got, tt.want)
			}

			var res web.OKResponse[candidate.SearchResponse]
			if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
				t.Fatal(err)
			}
			if res.Data.Total != 1 || len(res.Data.Candidates) != 1 || res.Data.Candidates[0].Score != 0.9 {
				t.Errorf("res.Data = %+v", res.Data)
			}
		})
	}
}
