package candidate_test

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/ferdiebergado/hireloop/internal/candidate"
	"github.com/ferdiebergado/hireloop/internal/config"
	"github.com/ferdiebergado/hireloop/internal/event"
	"github.com/ferdiebergado/hireloop/internal/job"
	"github.com/ferdiebergado/hireloop/internal/platform/db"
)

const (
	tenantID = "8a3c8c50-4a8e-4b1c-9a55-3c5a9d3c1f10"
	jobID    = "2f1d7c3e-5b6a-4c8d-9e0f-1a2b3c4d5e6f"
)

var searchCfg = &config.Search{DefaultLimit: 20, MaxLimit: 100, Window: 500}

type latencyRecorder struct {
	n int
}

func (l *latencyRecorder) ObserveSearch(time.Duration) {
	l.n++
}

func TestService_Create(t *testing.T) {
	t.Parallel()

	var (
		got       candidate.CreateParams
		published string
	)
	repo := &candidate.StubRepo{
		CreateFunc: func(_ context.Context, params candidate.CreateParams) (*candidate.Candidate, error) {
			got = params
			return &candidate.Candidate{ID: "c1", TenantID: params.TenantID, Email: params.Email}, nil
		},
	}
	pub := &event.StubPublisher{
		PublishFunc: func(_ context.Context, _, eventType string, _ any) error {
			published = eventType
			return nil
		},
	}
	svc := candidate.NewService(repo, &candidate.StubJobFinder{}, db.PassthroughTxManager{}, pub, searchCfg, nil)

	_, err := svc.Create(context.Background(), candidate.CreateParams{
		TenantID: tenantID,
		Email:    " Ana@Example.COM ",
		FullName: " Ana Cruz ",
		Skills:   []string{"Go", "go", "SQL "},
	})
	if err != nil {
		t.Fatal(err)
	}

	if got.Email != "ana@example.com" || got.FullName != "Ana Cruz" || got.Source != candidate.SourceManual {
		t.Errorf("params = %+v", got)
	}
	if want := []string{"go", "sql"}; !slices.Equal(got.Skills, want) {
		t.Errorf("got.Skills = %q, want: %q", got.Skills, want)
	}
	if published != event.CandidateCreated {
		t.Errorf("published = %q, want: %q", published, event.CandidateCreated)
	}
}

func TestService_Upsert(t *testing.T) {
	t.Parallel()

	for _, created := range []bool{true, false} {
		var publishes int
		repo := &candidate.StubRepo{
			UpsertFunc: func(_ context.Context, params candidate.CreateParams) (*candidate.Candidate, bool, error) {
				return &candidate.Candidate{ID: "c1", TenantID: params.TenantID}, created, nil
			},
		}
		pub := &event.StubPublisher{
			PublishFunc: func(context.Context, string, string, any) error {
				publishes++
				return nil
			},
		}
		svc := candidate.NewService(repo, &candidate.StubJobFinder{}, db.PassthroughTxManager{}, pub, searchCfg, nil)

		if _, err := svc.Upsert(context.Background(), candidate.CreateParams{TenantID: tenantID, Email: "a@b.test"}); err != nil {
			t.Fatal(err)
		}

		want := 0
		if created {
			want = 1
		}
		if publishes != want {
			t.Errorf("created=%v: publishes = %d, want: %d", created, publishes, want)
		}
	}
}

// filterPool applies a Filter the way the SQL pre-filter does.
func filterPool(pool []candidate.Candidate, f candidate.Filter) []candidate.Candidate {
	var out []candidate.Candidate
	for _, c := range pool {
		if f.Location != "" && !strings.Contains(strings.ToLower(c.Location), strings.ToLower(f.Location)) {
			continue
		}
		if c.YearsExperience < f.MinExperience {
			continue
		}
		if len(f.Skills) > 0 && !slices.ContainsFunc(c.Skills, func(s string) bool { return slices.Contains(f.Skills, s) }) {
			continue
		}
		out = append(out, c)
		if len(out) == f.Window {
			break
		}
	}
	return out
}

func TestService_Search(t *testing.T) {
	t.Parallel()

	pool := []candidate.Candidate{
		{ID: "a", FullName: "Ana", Skills: []string{"go", "sql"}, Location: "Manila", YearsExperience: 5},
		{ID: "b", FullName: "Ben", Skills: []string{"go"}, Location: "Cebu", YearsExperience: 5},
		{ID: "c", FullName: "Cai", Skills: []string{"sql"}, Location: "Manila", YearsExperience: 1},
		{ID: "d", FullName: "Dee", Skills: []string{"cobol"}, Location: "Davao", YearsExperience: 9},
	}

	tests := []struct {
		name       string
		params     candidate.SearchParams
		jobRemote  bool
		jobErr     error
		wantFilter candidate.Filter
		wantIDs    []string
		wantTotal  int
		wantErr    error
	}{
		{
			name:       "explicit skills filter and rank",
			params:     candidate.SearchParams{TenantID: tenantID, Skills: []string{"Go", "SQL"}, Limit: 2},
			wantFilter: candidate.Filter{TenantID: tenantID, Skills: []string{"go", "sql"}, Window: 500},
			wantIDs:    []string{"a", "b"},
			wantTotal:  3,
		},
		{
			name:       "job skills and location filter",
			params:     candidate.SearchParams{TenantID: tenantID, JobID: jobID, Limit: 10},
			wantFilter: candidate.Filter{TenantID: tenantID, Skills: []string{"sql"}, Location: "Manila", Window: 500},
			wantIDs:    []string{"a", "c"},
			wantTotal:  2,
		},
		{
			name:       "remote job filters by skills only",
			params:     candidate.SearchParams{TenantID: tenantID, JobID: jobID, Limit: 10},
			jobRemote:  true,
			wantFilter: candidate.Filter{TenantID: tenantID, Skills: []string{"sql"}, Window: 500},
			wantIDs:    []string{"a", "c"},
			wantTotal:  2,
		},
		{
			name:       "explicit skills override the job",
			params:     candidate.SearchParams{TenantID: tenantID, JobID: jobID, Skills: []string{"COBOL"}, Location: "Davao", Limit: 10},
			wantFilter: candidate.Filter{TenantID: tenantID, Skills: []string{"cobol"}, Location: "Davao", Window: 500},
			wantIDs:    []string{"d"},
			wantTotal:  1,
		},
		{
			name:       "offset past the end",
			params:     candidate.SearchParams{TenantID: tenantID, Limit: 10, Offset: 10},
			wantFilter: candidate.Filter{TenantID: tenantID, Skills: []string{}, Window: 500},
			wantIDs:    []string{},
			wantTotal:  4,
		},
		{
			name:    "unknown job",
			params:  candidate.SearchParams{TenantID: tenantID, JobID: jobID, Limit: 10},
			jobErr:  job.ErrNotFound,
			wantErr: job.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotFilter candidate.Filter
			repo := &candidate.StubRepo{
				SearchFunc: func(_ context.Context, f candidate.Filter) ([]candidate.Candidate, error) {
					gotFilter = f
					return filterPool(pool, f), nil
				},
			}
			jobs := &candidate.StubJobFinder{
				FindFunc: func(context.Context, string, string) (*job.Job, error) {
					if tt.jobErr != nil {
						return nil, tt.jobErr
					}
					return &job.Job{ID: jobID, Skills: []string{"sql"}, Location: "Manila", Remote: tt.jobRemote}, nil
				},
			}
			obs := &latencyRecorder{}

			svc := candidate.NewService(repo, jobs, db.PassthroughTxManager{}, &event.StubPublisher{}, searchCfg, obs)
			res, err := svc.Search(context.Background(), tt.params)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want: %v", err, tt.wantErr)
			}
			if obs.n != 1 {
				t.Errorf("observed searches = %d, want: 1", obs.n)
			}
			if err != nil {
				return
			}

			if gotFilter.TenantID != tt.wantFilter.TenantID || gotFilter.Window != tt.wantFilter.Window ||
				!slices.Equal(gotFilter.Skills, tt.wantFilter.Skills) || gotFilter.Location != tt.wantFilter.Location {
				t.Errorf("filter = %+v, want: %+v", gotFilter, tt.wantFilter)
			}

			ids := make([]string, 0, len(res.Matches))
			for _, m := range res.Matches {
				ids = append(ids, m.Candidate.ID)
			}
			if !slices.Equal(ids, tt.wantIDs) || res.Total != tt.wantTotal {
				t.Errorf("ids = %q total %d, want: %q total %d", ids, res.Total, tt.wantIDs, tt.wantTotal)
			}
		})
	}
}
