package assessment_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ferdiebergado/hireloop/internal/application"
	"github.com/ferdiebergado/hireloop/internal/assessment"
	"github.com/ferdiebergado/hireloop/internal/event"
	"github.com/ferdiebergado/hireloop/internal/identity"
	"github.com/ferdiebergado/hireloop/internal/job"
	"github.com/ferdiebergado/hireloop/internal/platform/db"
)

const (
	tenantID     = "8a3c8c50-4a8e-4b1c-9a55-3c5a9d3c1f10"
	jobID        = "2f1d7c3e-5b6a-4c8d-9e0f-1a2b3c4d5e6f"
	appID        = "9c8b7a6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d"
	assessmentID = "4e5d6c7b-8a9f-4e0d-b1c2-a3b4c5d6e7f8"
)

var recruiter = identity.Principal{UserID: "u-recruiter", TenantID: tenantID, Role: identity.RoleRecruiter}

func TestService_Record(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		params    assessment.RecordParams
		appJob    string
		createErr error
		wantErr   error
		wantEvent bool
	}{
		{"recorded", assessment.RecordParams{ApplicationID: appID, Score: 80, Feedback: "solid"}, jobID, nil, nil, true},
		{"full marks", assessment.RecordParams{ApplicationID: appID, Score: 100}, jobID, nil, nil, true},
		{"above max", assessment.RecordParams{ApplicationID: appID, Score: 101}, jobID, nil, assessment.ErrScoreRange, false},
		{"negative", assessment.RecordParams{ApplicationID: appID, Score: -1}, jobID, nil, assessment.ErrScoreRange, false},
		{"other job", assessment.RecordParams{ApplicationID: appID, Score: 50}, "another-job", nil, assessment.ErrJobMismatch, false},
		{"duplicate", assessment.RecordParams{ApplicationID: appID, Score: 50}, jobID, assessment.ErrDuplicate, assessment.ErrDuplicate, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var published *assessment.EventData
			repo := &assessment.StubRepo{
				FindFunc: func(_ context.Context, _, id string) (*assessment.Assessment, error) {
					return &assessment.Assessment{ID: id, JobID: jobID, MaxScore: 100}, nil
				},
				CreateResultFunc: func(_ context.Context, params assessment.ResultParams) (*assessment.Result, error) {
					if tt.createErr != nil {
						return nil, tt.createErr
					}
					return &assessment.Result{
						ID:            "r1",
						AssessmentID:  params.AssessmentID,
						ApplicationID: params.ApplicationID,
						Score:         params.Score,
						Feedback:      params.Feedback,
						SubmittedAt:   time.Now(),
					}, nil
				},
			}
			apps := &assessment.StubAuthorizer{
				AuthorizeFunc: func(_ context.Context, _ identity.Principal, id string) (*application.Application, error) {
					return &application.Application{ID: id, JobID: tt.appJob}, nil
				},
			}
			pub := &event.StubPublisher{
				PublishFunc: func(_ context.Context, _, eventType string, data any) error {
					if eventType != event.AssessmentCompleted {
						t.Errorf("eventType = %q, want: %q", eventType, event.AssessmentCompleted)
					}
					published = data.(*assessment.EventData)
					return nil
				},
			}

			svc := assessment.NewService(repo, &assessment.StubJobFinder{}, apps, db.PassthroughTxManager{}, pub)
			res, err := svc.Record(context.Background(), recruiter, assessmentID, tt.params)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want: %v", err, tt.wantErr)
			}

			if (published != nil) != tt.wantEvent {
				t.Fatalf("published = %+v, want event: %v", published, tt.wantEvent)
			}
			if err != nil {
				return
			}
			if res.Score != tt.params.Score || published.MaxScore != 100 || published.JobID != jobID {
				t.Errorf("res = %+v, event = %+v", res, published)
			}
		})
	}
}

func TestService_Record_UnknownAssessment(t *testing.T) {
	t.Parallel()

	repo := &assessment.StubRepo{
		FindFunc: func(context.Context, string, string) (*assessment.Assessment, error) {
			return nil, assessment.ErrNotFound
		},
	}

	svc := assessment.NewService(repo, &assessment.StubJobFinder{}, &assessment.StubAuthorizer{}, db.PassthroughTxManager{}, &event.StubPublisher{})
	_, err := svc.Record(context.Background(), recruiter, assessmentID, assessment.RecordParams{ApplicationID: appID})
	if !errors.Is(err, assessment.ErrNotFound) {
		t.Errorf("err = %v, want: %v", err, assessment.ErrNotFound)
	}
}

func TestService_ListByJob(t *testing.T) {
	t.Parallel()

	jobs := &assessment.StubJobFinder{
		FindFunc: func(_ context.Context, _, id string) (*job.Job, error) {
			if id != jobID {
				return nil, job.ErrNotFound
			}
			return &job.Job{ID: id}, nil
		},
	}
	repo := &assessment.StubRepo{
		ListByJobFunc: func(_ context.Context, _, id string) ([]assessment.Assessment, error) {
			return []assessment.Assessment{{ID: assessmentID, JobID: id}}, nil
		},
	}
	svc := assessment.NewService(repo, jobs, &assessment.StubAuthorizer{}, db.PassthroughTxManager{}, &event.StubPublisher{})

	list, err := svc.ListByJob(context.Background(), tenantID, jobID)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Errorf("len(list) = %d, want: 1", len(list))
	}

	if _, err := svc.ListByJob(context.Background(), tenantID, "missing"); !errors.Is(err, job.ErrNotFound) {
		t.Errorf("err = %v, want: %v", err, job.ErrNotFound)
	}
}
