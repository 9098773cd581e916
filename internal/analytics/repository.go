package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/ferdiebergado/hireloop/internal/platform/db"
)

type SQLRepository struct {
	db db.Executor
}

var _ Repository = (*SQLRepository)(nil)

func NewRepository(dbExec db.Executor) *SQLRepository {
	return &SQLRepository{db: dbExec}
}

// StageCounts counts applications by current stage, optionally for one job.
func (r *SQLRepository) StageCounts(ctx context.Context, tenantID, jobID string) (map[string]int, error) {
	const query = `
	SELECT stage, COUNT(*)
	FROM applications
	WHERE tenant_id = $1 AND ($2::text = '' OR job_id = NULLIF($2::text, '')::uuid)
	GROUP BY stage`

	return r.countBy(ctx, query, tenantID, jobID)
}

// ReachedCounts counts the applications of a job that were ever moved to
// each stage.
func (r *SQLRepository) ReachedCounts(ctx context.Context, tenantID, jobID string) (map[string]int, error) {
	const query = `
	SELECT e.to_stage, COUNT(DISTINCT e.application_id)
	FROM application_events e
	JOIN applications a ON a.id = e.application_id
	WHERE a.tenant_id = $1 AND a.job_id = $2
	GROUP BY e.to_stage`

	return r.countBy(ctx, query, tenantID, jobID)
}

func (r *SQLRepository) OpenJobs(ctx context.Context, tenantID string) (int, error) {
	const query = "SELECT COUNT(*) FROM jobs WHERE tenant_id = $1 AND status = 'open'"

	var n int
	if err := db.ExecutorFromContext(ctx, r.db).QueryRowContext(ctx, query, tenantID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count open jobs: %w", err)
	}
	return n, nil
}

// ApplicationsBySource counts the applications created in [from, to) per source.
func (r *SQLRepository) ApplicationsBySource(ctx context.Context, tenantID string, from, to time.Time) (map[string]int, error) {
	const query = `
	SELECT source, COUNT(*)
	FROM applications
	WHERE tenant_id = $1 AND created_at >= $2 AND created_at < $3
	GROUP BY source`

	return r.countBy(ctx, query, tenantID, from, to)
}

// Hires counts the applications hired in [from, to) and the average number of
// days they took from application to hire.
func (r *SQLRepository) Hires(ctx context.Context, tenantID string, from, to time.Time) (int, *float64, error) {
	const query = `
	SELECT COUNT(*), AVG(EXTRACT(EPOCH FROM e.created_at - a.created_at) / 86400)::float8
	FROM application_events e
	JOIN applications a ON a.id = e.application_id
	WHERE a.tenant_id = $1 AND e.to_stage = 'hired' AND e.created_at >= $2 AND e.created_at < $3`

	var (
		n   int
		avg *float64
	)
	if err := db.ExecutorFromContext(ctx, r.db).QueryRowContext(ctx, query, tenantID, from, to).Scan(&n, &avg); err != nil {
		return 0, nil, fmt.Errorf("count hires: %w", err)
	}
	return n, avg, nil
}

func (r *SQLRepository) countBy(ctx context.Context, query string, args ...any) (map[string]int, error) {
	rows, err := db.ExecutorFromContext(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			key string
			n   int
		)
		if err := rows.Scan(&key, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[key] = n
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over counts: %w", err)
	}
	return counts, nil
}
