package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ferdiebergado/hireloop/internal/platform/db"
)

var (
	ErrNotFound  = errors.New("user not found")
	ErrDuplicate = errors.New("user already exists")
)

type SQLRepository struct {
	db db.Executor
}

var _ Repository = (*SQLRepository)(nil)

func NewRepository(dbExec db.Executor) *SQLRepository {
	return &SQLRepository{db: dbExec}
}

type CreateParams struct {
	TenantID     string
	Email        string
	PasswordHash string
	Role         string
	Verified     bool
}

func (r *SQLRepository) Create(ctx context.Context, params CreateParams) (User, error) {
	const query = `
	INSERT INTO users (tenant_id, email, password_hash, role, verified_at)
	VALUES ($1, $2, $3, $4, CASE WHEN $5 THEN NOW() END)
	RETURNING id, tenant_id, email, role, verified_at, created_at, updated_at`

	var u User
	row := db.ExecutorFromContext(ctx, r.db).QueryRowContext(ctx, query,
		params.TenantID, params.Email, params.PasswordHash, params.Role, params.Verified)
	if err := row.Scan(&u.ID, &u.TenantID, &u.Email, &u.Role, &u.VerifiedAt, &u.CreatedAt, &u.UpdatedAt); err != nil {
		err = db.Classify(err)
		if errors.Is(err, db.ErrUniqueViolation) {
			return u, fmt.Errorf("create user %s: %w", params.Email, ErrDuplicate)
		}
		return u, fmt.Errorf("create user %s: %w", params.Email, err)
	}

	return u, nil
}

func (r *SQLRepository) FindByEmail(ctx context.Context, tenantID, email string) (*User, error) {
	const query = `
	SELECT id, tenant_id, email, password_hash, role, verified_at, metadata, created_at, updated_at
	FROM users
	WHERE tenant_id = $1 AND email = $2 AND deleted_at IS NULL`

	row := db.ExecutorFromContext(ctx, r.db).QueryRowContext(ctx, query, tenantID, email)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("find user by email %s: %w", email, err)
	}
	return u, nil
}

func (r *SQLRepository) Find(ctx context.Context, tenantID, userID string) (*User, error) {
	const query = `
	SELECT id, tenant_id, email, password_hash, role, verified_at, metadata, created_at, updated_at
	FROM users
	WHERE tenant_id = $1 AND id = $2 AND deleted_at IS NULL`

	row := db.ExecutorFromContext(ctx, r.db).QueryRowContext(ctx, query, tenantID, userID)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("find user %s: %w", userID, err)
	}
	return u, nil
}

func (r *SQLRepository) List(ctx context.Context, tenantID string) ([]User, error) {
	const query = `
	SELECT id, tenant_id, email, role, verified_at, metadata, created_at, updated_at
	FROM users
	WHERE tenant_id = $1 AND deleted_at IS NULL
	ORDER BY created_at, id`

	rows, err := db.ExecutorFromContext(ctx, r.db).QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.TenantID, &u.Email, &u.Role, &u.VerifiedAt, &u.Metadata, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over users: %w", err)
	}

	return users, nil
}

func scanUser(row *sql.Row) (*User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.TenantID, &u.Email, &u.PasswordHash, &u.Role, &u.VerifiedAt, &u.Metadata, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
