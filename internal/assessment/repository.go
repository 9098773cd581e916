package assessment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ferdiebergado/hireloop/internal/platform/db"
)

var (
	ErrNotFound  = errors.New("assessment not found")
	ErrDuplicate = errors.New("assessment result already recorded")
)

type SQLRepository struct {
	db db.Executor
}

var _ Repository = (*SQLRepository)(nil)

func NewRepository(dbExec db.Executor) *SQLRepository {
	return &SQLRepository{db: dbExec}
}

const columns = "id, tenant_id, job_id, title, instructions, max_score, created_at"

type CreateParams struct {
	TenantID     string
	JobID        string
	Title        string
	Instructions string
	MaxScore     int
}

func (r *SQLRepository) Create(ctx context.Context, params CreateParams) (*Assessment, error) {
	const query = `
	INSERT INTO assessments (tenant_id, job_id, title, instructions, max_score)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING ` + columns

	row := db.ExecutorFromContext(ctx, r.db).QueryRowContext(ctx, query,
		params.TenantID, params.JobID, params.Title, params.Instructions, params.MaxScore)
	a, err := scanAssessment(row)
	if err != nil {
		return nil, fmt.Errorf("create assessment: %w", db.Classify(err))
	}
	return a, nil
}

func (r *SQLRepository) Find(ctx context.Context, tenantID, assessmentID string) (*Assessment, error) {
	const query = "SELECT " + columns + " FROM assessments WHERE tenant_id = $1 AND id = $2"

	a, err := scanAssessment(db.ExecutorFromContext(ctx, r.db).QueryRowContext(ctx, query, tenantID, assessmentID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find assessment %s: %w", assessmentID, err)
	}
	return a, nil
}

func (r *SQLRepository) ListByJob(ctx context.Context, tenantID, jobID string) ([]Assessment, error) {
	const query = `
	SELECT ` + columns + `
	FROM assessments
	WHERE tenant_id = $1 AND job_id = $2
	ORDER BY created_at, id`

	rows, err := db.ExecutorFromContext(ctx, r.db).QueryContext(ctx, query, tenantID, jobID)
	if err != nil {
		return nil, fmt.Errorf("query assessments of job %s: %w", jobID, err)
	}
	defer rows.Close()

	list := make([]Assessment, 0)
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan assessment: %w", err)
		}
		list = append(list, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over assessments: %w", err)
	}
	return list, nil
}

type ResultParams struct {
	AssessmentID  string
	ApplicationID string
	Score         int
	Feedback      string
}

func (r *SQLRepository) CreateResult(ctx context.Context, params ResultParams) (*Result, error) {
	const query = `
	WITH inserted AS (
		INSERT INTO assessment_results (assessment_id, application_id, score, feedback)
		VALUES ($1, $2, $3, $4)
		RETURNING id, assessment_id, application_id, score, feedback, submitted_at
	)
	SELECT i.id, i.assessment_id, a.title, a.max_score, i.application_id, i.score, i.feedback, i.submitted_at
	FROM inserted i
	JOIN assessments a ON a.id = i.assessment_id`

	row := db.ExecutorFromContext(ctx, r.db).QueryRowContext(ctx, query,
		params.AssessmentID, params.ApplicationID, params.Score, params.Feedback)
	res, err := scanResult(row)
	if err != nil {
		err = db.Classify(err)
		if errors.Is(err, db.ErrUniqueViolation) {
			return nil, fmt.Errorf("create assessment result: %w", ErrDuplicate)
		}
		return nil, fmt.Errorf("create assessment result: %w", err)
	}
	return res, nil
}

func (r *SQLRepository) ResultsByApplication(ctx context.Context, tenantID, appID string) ([]Result, error) {
	const query = `
	SELECT r.id, r.assessment_id, a.title, a.max_score, r.application_id, r.score, r.feedback, r.submitted_at
	FROM assessment_results r
	JOIN assessments a ON a.id = r.assessment_id
	WHERE a.tenant_id = $1 AND r.application_id = $2
	ORDER BY r.submitted_at, r.id`

	rows, err := db.ExecutorFromContext(ctx, r.db).QueryContext(ctx, query, tenantID, appID)
	if err != nil {
		return nil, fmt.Errorf("query results of application %s: %w", appID, err)
	}
	defer rows.Close()

	results := make([]Result, 0)
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("scan assessment result: %w", err)
		}
		results = append(results, *res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over assessment results: %w", err)
	}
	return results, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAssessment(row scanner) (*Assessment, error) {
	var a Assessment
	if err := row.Scan(&a.ID, &a.TenantID, &a.JobID, &a.Title, &a.Instructions, &a.MaxScore, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func scanResult(row scanner) (*Result, error) {
	var res Result
	if err := row.Scan(&res.ID, &res.AssessmentID, &res.AssessmentTitle, &res.MaxScore,
		&res.ApplicationID, &res.Score, &res.Feedback, &res.SubmittedAt); err != nil {
		return nil, err
	}
	return &res, nil
}
