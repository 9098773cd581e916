package tenant

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ferdiebergado/hireloop/internal/platform/db"
)

var (
	ErrNotFound      = errors.New("tenant not found")
	ErrDuplicateSlug = errors.New("tenant slug is taken")
	ErrDomainTaken   = errors.New("custom domain is taken")
)

type SQLRepository struct {
	db db.Executor
}

var _ Repository = (*SQLRepository)(nil)

func NewRepository(dbExec db.Executor) *SQLRepository {
	return &SQLRepository{db: dbExec}
}

func (r *SQLRepository) Create(ctx context.Context, name, slug string) (Tenant, error) {
	const query = `
	INSERT INTO tenants (name, slug) VALUES ($1, $2)
	RETURNING id, name, slug, created_at, updated_at`

	var t Tenant
	err := db.ExecutorFromContext(ctx, r.db).QueryRowContext(ctx, query, name, slug).
		Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		err = db.Classify(err)
		if errors.Is(err, db.ErrUniqueViolation) {
			return t, fmt.Errorf("create tenant %s: %w", slug, ErrDuplicateSlug)
		}
		return t, fmt.Errorf("create tenant %s: %w", slug, err)
	}
	return t, nil
}

func (r *SQLRepository) Find(ctx context.Context, tenantID string) (*Tenant, error) {
	const query = "SELECT id, name, slug, created_at, updated_at FROM tenants WHERE id = $1"
	return r.findOne(ctx, query, tenantID)
}

func (r *SQLRepository) FindBySlug(ctx context.Context, slug string) (*Tenant, error) {
	const query = "SELECT id, name, slug, created_at, updated_at FROM tenants WHERE slug = $1"
	return r.findOne(ctx, query, slug)
}

func (r *SQLRepository) findOne(ctx context.Context, query, arg string) (*Tenant, error) {
	var t Tenant
	err := db.ExecutorFromContext(ctx, r.db).QueryRowContext(ctx, query, arg).
		Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find tenant %s: %w", arg, err)
	}
	return &t, nil
}

func (r *SQLRepository) CreateBranding(ctx context.Context, b Branding) error {
	const query = `
	INSERT INTO tenant_branding (tenant_id, display_name, logo_url, primary_color, secondary_color, email_sender)
	VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := db.ExecutorFromContext(ctx, r.db).ExecContext(ctx, query,
		b.TenantID, b.DisplayName, b.LogoURL, b.PrimaryColor, b.SecondaryColor, b.EmailSender)
	if err != nil {
		return fmt.Errorf("create branding for tenant %s: %w", b.TenantID, err)
	}
	return nil
}

const brandingColumns = `
	b.tenant_id, t.slug, b.display_name, b.logo_url, b.primary_color, b.secondary_color,
	b.custom_domain, b.email_sender, b.updated_at`

func (r *SQLRepository) FindBranding(ctx context.Context, slug string) (*Branding, error) {
	query := "SELECT" + brandingColumns + `
	FROM tenant_branding b JOIN tenants t ON t.id = b.tenant_id
	WHERE t.slug = $1`

	return r.findBranding(ctx, query, slug)
}

func (r *SQLRepository) FindBrandingByTenant(ctx context.Context, tenantID string) (*Branding, error) {
	query := "SELECT" + brandingColumns + `
	FROM tenant_branding b JOIN tenants t ON t.id = b.tenant_id
	WHERE b.tenant_id = $1`

	return r.findBranding(ctx, query, tenantID)
}

func (r *SQLRepository) findBranding(ctx context.Context, query, arg string) (*Branding, error) {
	row := db.ExecutorFromContext(ctx, r.db).QueryRowContext(ctx, query, arg)
	b, err := scanBranding(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find branding %s: %w", arg, err)
	}
	return b, nil
}

func (r *SQLRepository) UpdateBranding(ctx context.Context, tenantID string, params BrandingParams) (*Branding, error) {
	const query = `
	WITH updated AS (
		UPDATE tenant_branding
		SET display_name = $2, logo_url = $3, primary_color = $4, secondary_color = $5,
			custom_domain = NULLIF($6, ''), email_sender = $7, updated_at = NOW()
		WHERE tenant_id = $1
		RETURNING *
	)
	SELECT b.tenant_id, t.slug, b.display_name, b.logo_url, b.primary_color, b.secondary_color,
		b.custom_domain, b.email_sender, b.updated_at
	FROM updated b JOIN tenants t ON t.id = b.tenant_id`

	row := db.ExecutorFromContext(ctx, r.db).QueryRowContext(ctx, query, tenantID,
		params.DisplayName, params.LogoURL, params.PrimaryColor, params.SecondaryColor,
		params.CustomDomain, params.EmailSender)
	b, err := scanBranding(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		err = db.Classify(err)
		if errors.Is(err, db.ErrUniqueViolation) {
			return nil, fmt.Errorf("update branding: %w", ErrDomainTaken)
		}
		return nil, fmt.Errorf("update branding: %w", err)
	}
	return b, nil
}

func scanBranding(row *sql.Row) (*Branding, error) {
	var b Branding
	if err := row.Scan(&b.TenantID, &b.TenantSlug, &b.DisplayName, &b.LogoURL, &b.PrimaryColor,
		&b.SecondaryColor, &b.CustomDomain, &b.EmailSender, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}
