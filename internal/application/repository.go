package application

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ferdiebergado/hireloop/internal/platform/db"
)

var (
	ErrNotFound  = errors.New("application not found")
	ErrDuplicate = errors.New("candidate already applied to this job")
)

type SQLRepository struct {
	db db.Executor
}

var _ Repository = (*SQLRepository)(nil)

func NewRepository(dbExec db.Executor) *SQLRepository {
	return &SQLRepository{db: dbExec}
}

const columns = "id, tenant_id, job_id, candidate_id, stage, source, rejected_reason, created_at, updated_at"

type CreateParams struct {
	TenantID    string
	JobID       string
	CandidateID string
	Source      string
}

func (r *SQLRepository) Create(ctx context.Context, params CreateParams) (*Application, error) {
	const query = `
	INSERT INTO applications (tenant_id, job_id, candidate_id, stage, source)
	VALUES ($1, $2, $3, 'applied', $4)
	RETURNING ` + columns

	row := db.ExecutorFromContext(ctx, r.db).QueryRowContext(ctx, query,
		params.TenantID, params.JobID, params.CandidateID, params.Source)
	a, err := scanApplication(row)
	if err != nil {
		err = db.Classify(err)
		if errors.Is(err, db.ErrUniqueViolation) {
			return nil, fmt.Errorf("create application: %w", ErrDuplicate)
		}
		return nil, fmt.Errorf("create application: %w", err)
	}
	return a, nil
}

func (r *SQLRepository) Find(ctx context.Context, tenantID, appID string) (*Application, error) {
	const query = "SELECT " + columns + " FROM applications WHERE tenant_id = $1 AND id = $2"

	a, err := scanApplication(db.ExecutorFromContext(ctx, r.db).QueryRowContext(ctx, query, tenantID, appID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find application %s: %w", appID, err)
	}
	return a, nil
}

func (r *SQLRepository) ListByJob(ctx context.Context, tenantID, jobID, stage string) ([]Application, error) {
	const query = `
	SELECT ` + columns + `
	FROM applications
	WHERE tenant_id = $1 AND job_id = $2 AND ($3 = '' OR stage = $3)
	ORDER BY created_at, id`

	return r.list(ctx, query, tenantID, jobID, stage)
}

func (r *SQLRepository) ListByCandidate(ctx context.Context, tenantID, candidateID string) ([]Application, error) {
	const query = `
	SELECT ` + columns + `
	FROM applications
	WHERE tenant_id = $1 AND candidate_id = $2
	ORDER BY created_at DESC, id`

	return r.list(ctx, query, tenantID, candidateID)
}

func (r *SQLRepository) list(ctx context.Context, query string, args ...any) ([]Application, error) {
	rows, err := db.ExecutorFromContext(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query applications: %w", err)
	}
	defer rows.Close()

	apps := make([]Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		apps = append(apps, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over applications: %w", err)
	}
	return apps, nil
}

// SetStage moves an application that is still in from. It returns ErrNotFound
// when the application is no longer in that stage.
func (r *SQLRepository) SetStage(ctx context.Context, tenantID, appID, from, to, reason string) (*Application, error) {
	const query = `
	UPDATE applications
	SET stage = $4,
		rejected_reason = CASE WHEN $4 = 'rejected' THEN NULLIF($5, '') ELSE rejected_reason END,
		updated_at = NOW()
	WHERE tenant_id = $1 AND id = $2 AND stage = $3
	RETURNING ` + columns

	a, err := scanApplication(db.ExecutorFromContext(ctx, r.db).QueryRowContext(ctx, query, tenantID, appID, from, to, reason))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("set stage of application %s: %w", appID, err)
	}
	return a, nil
}

type EventParams struct {
	ApplicationID string
	FromStage     *string
	ToStage       string
	ActorID       *string
	Note          string
}

func (r *SQLRepository) AddEvent(ctx context.Context, params EventParams) (*StageEvent, error) {
	const query = `
	INSERT INTO application_events (application_id, from_stage, to_stage, actor_id, note)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id, application_id, from_stage, to_stage, actor_id, note, created_at`

	var e StageEvent
	row := db.ExecutorFromContext(ctx, r.db).QueryRowContext(ctx, query,
		params.ApplicationID, params.FromStage, params.ToStage, params.ActorID, params.Note)
	if err := row.Scan(&e.ID, &e.ApplicationID, &e.FromStage, &e.ToStage, &e.ActorID, &e.Note, &e.CreatedAt); err != nil {
		return nil, fmt.Errorf("add event to application %s: %w", params.ApplicationID, db.Classify(err))
	}
	return &e, nil
}

func (r *SQLRepository) Events(ctx context.Context, tenantID, appID string) ([]StageEvent, error) {
	const query = `
	SELECT e.id, e.application_id, e.from_stage, e.to_stage, e.actor_id, e.note, e.created_at
	FROM application_events e
	JOIN applications a ON a.id = e.application_id
	WHERE a.tenant_id = $1 AND e.application_id = $2
	ORDER BY e.created_at, e.id`

	rows, err := db.ExecutorFromContext(ctx, r.db).QueryContext(ctx, query, tenantID, appID)
	if err != nil {
		return nil, fmt.Errorf("query events of application %s: %w", appID, err)
	}
	defer rows.Close()

	events := make([]StageEvent, 0)
	for rows.Next() {
		var e StageEvent
		if err := rows.Scan(&e.ID, &e.ApplicationID, &e.FromStage, &e.ToStage, &e.ActorID, &e.Note, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan application event: %w", err)
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over application events: %w", err)
	}
	return events, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanApplication(row scanner) (*Application, error) {
	var a Application
	if err := row.Scan(&a.ID, &a.TenantID, &a.JobID, &a.CandidateID, &a.Stage, &a.Source,
		&a.RejectedReason, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}
