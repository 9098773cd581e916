package candidate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ferdiebergado/hireloop/internal/platform/db"
)

var (
	ErrNotFound     = errors.New("candidate not found")
	ErrDuplicate    = errors.New("candidate already exists")
	ErrProfileTaken = errors.New("user already has a candidate profile")
)

const constraintUserProfile = "candidates_tenant_id_user_id_key"

type SQLRepository struct {
	db db.Executor
}

var _ Repository = (*SQLRepository)(nil)

func NewRepository(dbExec db.Executor) *SQLRepository {
	return &SQLRepository{db: dbExec}
}

const columns = `id, tenant_id, user_id, email, full_name, headline, location, years_experience,
	skills, resume_url, source, created_at, updated_at`

type CreateParams struct {
	TenantID        string
	UserID          *string
	Email           string
	FullName        string
	Headline        string
	Location        string
	YearsExperience int
	Skills          []string
	ResumeURL       string
	Source          string
}

func (r *SQLRepository) Create(ctx context.Context, params CreateParams) (*Candidate, error) {
	const query = `
	INSERT INTO candidates (tenant_id, user_id, email, full_name, headline, location, years_experience, skills, resume_url, source)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING ` + columns

	row := db.ExecutorFromContext(ctx, r.db).QueryRowContext(ctx, query,
		params.TenantID, params.UserID, params.Email, params.FullName, params.Headline, params.Location,
		params.YearsExperience, params.Skills, params.ResumeURL, params.Source)
	c, err := scanCandidate(row)
	if err != nil {
		err = db.Classify(err)
		if errors.Is(err, db.ErrUniqueViolation) {
			if db.Constraint(err) == constraintUserProfile {
				return nil, fmt.Errorf("create candidate %s: %w", params.Email, ErrProfileTaken)
			}
			return nil, fmt.Errorf("create candidate %s: %w", params.Email, ErrDuplicate)
		}
		return nil, fmt.Errorf("create candidate %s: %w", params.Email, err)
	}
	return c, nil
}

// Upsert creates a candidate or, when the email is already known in the tenant,
// refreshes its profile. created reports whether a new row was inserted.
func (r *SQLRepository) Upsert(ctx context.Context, params CreateParams) (c *Candidate, created bool, err error) {
	const query = `
	INSERT INTO candidates (tenant_id, user_id, email, full_name, headline, location, years_experience, skills, resume_url, source)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (tenant_id, email) DO UPDATE
	SET full_name = EXCLUDED.full_name,
		headline = COALESCE(NULLIF(EXCLUDED.headline, ''), candidates.headline),
		location = COALESCE(NULLIF(EXCLUDED.location, ''), candidates.location),
		years_experience = GREATEST(EXCLUDED.years_experience, candidates.years_experience),
		skills = CASE WHEN cardinality(EXCLUDED.skills) = 0 THEN candidates.skills ELSE EXCLUDED.skills END,
		resume_url = COALESCE(NULLIF(EXCLUDED.resume_url, ''), candidates.resume_url),
		updated_at = NOW()
	RETURNING ` + columns + `, (xmax = 0)`

	row := db.ExecutorFromContext(ctx, r.db).QueryRowContext(ctx, query,
		params.TenantID, params.UserID, params.Email, params.FullName, params.Headline, params.Location,
		params.YearsExperience, params.Skills, params.ResumeURL, params.Source)
	c, err = scanCandidate(row, &created)
	if err != nil {
		return nil, false, fmt.Errorf("upsert candidate %s: %w", params.Email, db.Classify(err))
	}
	return c, created, nil
}

func (r *SQLRepository) Find(ctx context.Context, tenantID, candidateID string) (*Candidate, error) {
	const query = "SELECT " + columns + " FROM candidates WHERE tenant_id = $1 AND id = $2"
	return r.findOne(ctx, query, tenantID, candidateID)
}

func (r *SQLRepository) FindByUser(ctx context.Context, tenantID, userID string) (*Candidate, error) {
	const query = "SELECT " + columns + " FROM candidates WHERE tenant_id = $1 AND user_id = $2"
	return r.findOne(ctx, query, tenantID, userID)
}

func (r *SQLRepository) findOne(ctx context.Context, query, tenantID, key string) (*Candidate, error) {
	c, err := scanCandidate(db.ExecutorFromContext(ctx, r.db).QueryRowContext(ctx, query, tenantID, key))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find candidate %s: %w", key, err)
	}
	return c, nil
}

func (r *SQLRepository) Update(ctx context.Context, c *Candidate) (*Candidate, error) {
	const query = `
	UPDATE candidates
	SET full_name = $3, headline = $4, location = $5, years_experience = $6, skills = $7, resume_url = $8, updated_at = NOW()
	WHERE tenant_id = $1 AND id = $2
	RETURNING ` + columns

	row := db.ExecutorFromContext(ctx, r.db).QueryRowContext(ctx, query,
		c.TenantID, c.ID, c.FullName, c.Headline, c.Location, c.YearsExperience, c.Skills, c.ResumeURL)
	updated, err := scanCandidate(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update candidate %s: %w", c.ID, err)
	}
	return updated, nil
}

// Filter narrows the rows considered by a search before they are ranked.
type Filter struct {
	TenantID      string
	Location      string
	MinExperience int
	Skills        []string
	Window        int
}

// Search returns at most Window candidates passing the filter, most recently updated first.
func (r *SQLRepository) Search(ctx context.Context, f Filter) ([]Candidate, error) {
	const query = `
	SELECT ` + columns + `
	FROM candidates
	WHERE tenant_id = $1
	AND ($2 = '' OR location ILIKE $3)
	AND years_experience >= $4
	AND (cardinality($5::text[]) = 0 OR skills && $5::text[])
	ORDER BY updated_at DESC, id
	LIMIT $6`

	skills := f.Skills
	if skills == nil {
		skills = []string{}
	}

	rows, err := db.ExecutorFromContext(ctx, r.db).QueryContext(ctx, query,
		f.TenantID, f.Location, db.ContainsPattern(f.Location), f.MinExperience, skills, f.Window)
	if err != nil {
		return nil, fmt.Errorf("search candidates: %w", err)
	}
	defer rows.Close()

	candidates := make([]Candidate, 0)
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		candidates = append(candidates, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over candidates: %w", err)
	}
	return candidates, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCandidate(row scanner, extra ...any) (*Candidate, error) {
	var (
		c      Candidate
		skills db.TextArray
	)
	dest := []any{
		&c.ID, &c.TenantID, &c.UserID, &c.Email, &c.FullName, &c.Headline, &c.Location, &c.YearsExperience,
		&skills, &c.ResumeURL, &c.Source, &c.CreatedAt, &c.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	c.Skills = skills
	return &c, nil
}
