package assessment_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ferdiebergado/hireloop/internal/application"
	"github.com/ferdiebergado/hireloop/internal/assessment"
	"github.com/ferdiebergado/hireloop/internal/identity"
	"github.com/ferdiebergado/hireloop/internal/job"
	"github.com/ferdiebergado/hireloop/internal/pkg/message"
	"github.com/ferdiebergado/hireloop/internal/pkg/web"
)

func TestHandler_Create(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		code int
	}{
		{"created", nil, http.StatusCreated},
		{"unknown job", job.ErrNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := assessment.NewHandler(&assessment.StubService{
				CreateFunc: func(_ context.Context, params assessment.CreateParams) (*assessment.Assessment, error) {
					if tt.err != nil {
						return nil, tt.err
					}
					if params.JobID != jobID || params.TenantID != tenantID {
						t.Errorf("params = %+v", params)
					}
					return &assessment.Assessment{ID: assessmentID, JobID: params.JobID, Title: params.Title, MaxScore: params.MaxScore}, nil
				},
			})

			ctx := identity.ContextWith(context.Background(), recruiter)
			ctx = web.NewContextWithParams(ctx, assessment.CreateRequest{Title: "Take-home", MaxScore: 100})
			req := httptest.NewRequestWithContext(ctx, http.MethodPost, "/jobs/"+jobID+"/assessments", http.NoBody)
			req.SetPathValue("id", jobID)
			rec := httptest.NewRecorder()
			h.Create(rec, req)

			if rec.Code != tt.code {
				t.Errorf(message.FmtErrStatusCode, rec.Code, tt.code)
			}
		})
	}
}

func TestHandler_Record(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		code int
	}{
		{"recorded", nil, http.StatusCreated},
		{"unknown assessment", assessment.ErrNotFound, http.StatusNotFound},
		{"unknown application", application.ErrNotFound, http.StatusUnprocessableEntity},
		{"out of range", assessment.ErrScoreRange, http.StatusUnprocessableEntity},
		{"other job", assessment.ErrJobMismatch, http.StatusUnprocessableEntity},
		{"duplicate", assessment.ErrDuplicate, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := assessment.NewHandler(&assessment.StubService{
				RecordFunc: func(_ context.Context, _ identity.Principal, id string, params assessment.RecordParams) (*assessment.Result, error) {
					if tt.err != nil {
						return nil, tt.err
					}
					return &assessment.Result{ID: "r1", AssessmentID: id, ApplicationID: params.ApplicationID, Score: params.Score}, nil
				},
			})

			ctx := identity.ContextWith(context.Background(), recruiter)
			ctx = web.NewContextWithParams(ctx, assessment.RecordRequest{ApplicationID: appID, Score: 7})
			req := httptest.NewRequestWithContext(ctx, http.MethodPost, "/assessments/"+assessmentID+"/results", http.NoBody)
			req.SetPathValue("id", assessmentID)
			rec := httptest.NewRecorder()
			h.Record(rec, req)

			if rec.Code != tt.code {
				t.Errorf(message.FmtErrStatusCode, rec.Code, tt.code)
			}
		})
	}
}
