package apikey

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ferdiebergado/hireloop/internal/platform/db"
)

var ErrNotFound = errors.New("api key not found")

type SQLRepository struct {
	db db.Executor
}

var _ Repository = (*SQLRepository)(nil)

func NewRepository(dbExec db.Executor) *SQLRepository {
	return &SQLRepository{db: dbExec}
}

const columns = "id, tenant_id, name, prefix, key_hash, scopes, last_used_at, revoked_at, created_at"

type CreateParams struct {
	TenantID string
	Name     string
	Prefix   string
	KeyHash  string
	Scopes   []string
}

func (r *SQLRepository) Create(ctx context.Context, params CreateParams) (*APIKey, error) {
	const query = `
	INSERT INTO api_keys (tenant_id, name, prefix, key_hash, scopes)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING ` + columns

	row := db.ExecutorFromContext(ctx, r.db).QueryRowContext(ctx, query,
		params.TenantID, params.Name, params.Prefix, params.KeyHash, params.Scopes)
	k, err := scanKey(row)
	if err != nil {
		return nil, fmt.Errorf("create api key %s: %w", params.Name, db.Classify(err))
	}
	return k, nil
}

func (r *SQLRepository) List(ctx context.Context, tenantID string) ([]APIKey, error) {
	const query = "SELECT " + columns + " FROM api_keys WHERE tenant_id = $1 ORDER BY created_at DESC, id"

	rows, err := db.ExecutorFromContext(ctx, r.db).QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("query api keys: %w", err)
	}
	defer rows.Close()

	keys := make([]APIKey, 0)
	for rows.Next() {
		k, err := scanKey(rows)
		if err != nil {
			return nil, fmt.Errorf("scan api key: %w", err)
		}
		keys = append(keys, *k)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over api keys: %w", err)
	}
	return keys, nil
}

func (r *SQLRepository) FindByPrefix(ctx context.Context, prefix string) (*APIKey, error) {
	const query = "SELECT " + columns + " FROM api_keys WHERE prefix = $1"

	k, err := scanKey(db.ExecutorFromContext(ctx, r.db).QueryRowContext(ctx, query, prefix))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find api key %s: %w", prefix, err)
	}
	return k, nil
}

func (r *SQLRepository) Revoke(ctx context.Context, tenantID, keyID string) error {
	const query = `
	UPDATE api_keys SET revoked_at = NOW()
	WHERE tenant_id = $1 AND id = $2 AND revoked_at IS NULL`

	res, err := db.ExecutorFromContext(ctx, r.db).ExecContext(ctx, query, tenantID, keyID)
	if err != nil {
		return fmt.Errorf("revoke api key %s: %w", keyID, err)
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

func (r *SQLRepository) Touch(ctx context.Context, keyID string) error {
	const query = "UPDATE api_keys SET last_used_at = NOW() WHERE id = $1"

	if _, err := db.ExecutorFromContext(ctx, r.db).ExecContext(ctx, query, keyID); err != nil {
		return fmt.Errorf("touch api key %s: %w", keyID, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanKey(row scanner) (*APIKey, error) {
	var (
		k      APIKey
		scopes db.TextArray
	)
	if err := row.Scan(&k.ID, &k.TenantID, &k.Name, &k.Prefix, &k.KeyHash, &scopes,
		&k.LastUsedAt, &k.RevokedAt, &k.CreatedAt); err != nil {
		return nil, err
	}
	k.Scopes = scopes
	return &k, nil
}
