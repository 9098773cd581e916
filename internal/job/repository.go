package job

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ferdiebergado/hireloop/internal/platform/db"
)

var ErrNotFound = errors.New("job not found")

type SQLRepository struct {
	db db.Executor
}

var _ Repository = (*SQLRepository)(nil)

func NewRepository(dbExec db.Executor) *SQLRepository {
	return &SQLRepository{db: dbExec}
}

const columns = `id, tenant_id, title, description, location, employment_type, remote,
	salary_min, salary_max, skills, status, published_at, closed_at, created_by, created_at, updated_at`

type CreateParams struct {
	TenantID       string
	CreatedBy      *string
	Title          string
	Description    string
	Location       string
	EmploymentType string
	Remote         bool
	SalaryMin      *int
	SalaryMax      *int
	Skills         []string
}

func (r *SQLRepository) Create(ctx context.Context, params CreateParams) (*Job, error) {
	const query = `
	INSERT INTO jobs (tenant_id, created_by, title, description, location, employment_type, remote, salary_min, salary_max, skills)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING ` + columns

	row := db.ExecutorFromContext(ctx, r.db).QueryRowContext(ctx, query,
		params.TenantID, params.CreatedBy, params.Title, params.Description, params.Location,
		params.EmploymentType, params.Remote, params.SalaryMin, params.SalaryMax, params.Skills)
	j, err := scanJob(row)
	if err != nil {
		return nil, fmt.Errorf("create job %q: %w", params.Title, db.Classify(err))
	}
	return j, nil
}

func (r *SQLRepository) Find(ctx context.Context, tenantID, jobID string) (*Job, error) {
	const query = "SELECT " + columns + " FROM jobs WHERE tenant_id = $1 AND id = $2"

	j, err := scanJob(db.ExecutorFromContext(ctx, r.db).QueryRowContext(ctx, query, tenantID, jobID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find job %s: %w", jobID, err)
	}
	return j, nil
}

type ListParams struct {
	TenantID string
	Status   string
	Query    string
	Limit    int
	Offset   int
}

// List returns a page of jobs and the number of jobs matching the filters.
func (r *SQLRepository) List(ctx context.Context, params ListParams) ([]Job, int, error) {
	const query = `
	SELECT ` + columns + `, COUNT(*) OVER()
	FROM jobs
	WHERE tenant_id = $1
	AND ($2 = '' OR status = $2)
	AND ($3 = '' OR title ILIKE $4)
	ORDER BY created_at DESC, id
	LIMIT $5 OFFSET $6`

	rows, err := db.ExecutorFromContext(ctx, r.db).QueryContext(ctx, query,
		params.TenantID, params.Status, params.Query, db.ContainsPattern(params.Query), params.Limit, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("query jobs: %w", err)
	}
	defer rows.Close()

	var (
		jobs  = make([]Job, 0)
		total int
	)
	for rows.Next() {
		j, err := scanJob(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, *j)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate over jobs: %w", err)
	}
	return jobs, total, nil
}

func (r *SQLRepository) Update(ctx context.Context, j *Job) (*Job, error) {
	const query = `
	UPDATE jobs
	SET title = $3, description = $4, location = $5, employment_type = $6, remote = $7,
		salary_min = $8, salary_max = $9, skills = $10, updated_at = NOW()
	WHERE tenant_id = $1 AND id = $2
	RETURNING ` + columns

	row := db.ExecutorFromContext(ctx, r.db).QueryRowContext(ctx, query,
		j.TenantID, j.ID, j.Title, j.Description, j.Location, j.EmploymentType, j.Remote,
		j.SalaryMin, j.SalaryMax, j.Skills)
	updated, err := scanJob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update job %s: %w", j.ID, db.Classify(err))
	}
	return updated, nil
}

// SetStatus moves a job from one status to another. It returns ErrNotFound when
// no job with the id is in the from status.
func (r *SQLRepository) SetStatus(ctx context.Context, tenantID, jobID, from, to string) (*Job, error) {
	const query = `
	UPDATE jobs
	SET status = $4,
		published_at = CASE WHEN $4 = 'open' THEN NOW() ELSE published_at END,
		closed_at = CASE WHEN $4 = 'closed' THEN NOW() ELSE closed_at END,
		updated_at = NOW()
	WHERE tenant_id = $1 AND id = $2 AND status = $3
	RETURNING ` + columns

	j, err := scanJob(db.ExecutorFromContext(ctx, r.db).QueryRowContext(ctx, query, tenantID, jobID, from, to))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("set status of job %s: %w", jobID, err)
	}
	return j, nil
}

// Delete removes a job that is still a draft.
func (r *SQLRepository) Delete(ctx context.Context, tenantID, jobID string) error {
	const query = "DELETE FROM jobs WHERE tenant_id = $1 AND id = $2 AND status = 'draft'"

	res, err := db.ExecutorFromContext(ctx, r.db).ExecContext(ctx, query, tenantID, jobID)
	if err != nil {
		return fmt.Errorf("delete job %s: %w", jobID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanJob(row scanner, extra ...any) (*Job, error) {
	var (
		j      Job
		skills db.TextArray
	)
	dest := []any{
		&j.ID, &j.TenantID, &j.Title, &j.Description, &j.Location, &j.EmploymentType, &j.Remote,
		&j.SalaryMin, &j.SalaryMax, &skills, &j.Status, &j.PublishedAt, &j.ClosedAt, &j.CreatedBy,
		&j.CreatedAt, &j.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	j.Skills = skills
	return &j, nil
}
