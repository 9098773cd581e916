package tenant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ferdiebergado/hireloop/internal/identity"
	"github.com/ferdiebergado/hireloop/internal/platform/db"
	"github.com/ferdiebergado/hireloop/internal/platform/hash"
	"github.com/ferdiebergado/hireloop/internal/user"
)

type Repository interface {
	Create(ctx context.Context, name, slug string) (Tenant, error)
	Find(ctx context.Context, tenantID string) (*Tenant, error)
	FindBySlug(ctx context.Context, slug string) (*Tenant, error)
	CreateBranding(ctx context.Context, b Branding) error
	FindBranding(ctx context.Context, slug string) (*Branding, error)
	FindBrandingByTenant(ctx context.Context, tenantID string) (*Branding, error)
	UpdateBranding(ctx context.Context, tenantID string, params BrandingParams) (*Branding, error)
}

type UserCreator interface {
	Create(ctx context.Context, params user.CreateParams) (user.User, error)
}

// Verifier sends the email verification link to a newly created user.
type Verifier interface {
	SendVerification(u user.User)
}

type Service struct {
	repo     Repository
	users    UserCreator
	hasher   hash.Hasher
	txMgr    db.TxManager
	verifier Verifier
}

var _ TenantService = (*Service)(nil)

func NewService(repo Repository, users UserCreator, hasher hash.Hasher, txMgr db.TxManager, verifier Verifier) *Service {
	return &Service{
		repo:     repo,
		users:    users,
		hasher:   hasher,
		txMgr:    txMgr,
		verifier: verifier,
	}
}

type SignupParams struct {
	Name          string
	Slug          string
	AdminEmail    string
	AdminPassword string
}

func (p SignupParams) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("name", p.Name),
		slog.String("slug", p.Slug),
		slog.String("admin_email", maskChar),
		slog.String("admin_password", maskChar),
	)
}

type SignupResult struct {
	Tenant Tenant
	Admin  user.User
}

// Signup creates the tenant, its default branding and its admin user atomically.
func (s *Service) Signup(ctx context.Context, params SignupParams) (*SignupResult, error) {
	passwordHash, err := s.hasher.Hash(params.AdminPassword)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}

	var res SignupResult
	err = s.txMgr.RunInTx(ctx, func(txCtx context.Context) error {
		t, err := s.repo.Create(txCtx, strings.TrimSpace(params.Name), params.Slug)
		if err != nil {
			return err
		}

		branding := Branding{
			TenantID:       t.ID,
			DisplayName:    t.Name,
			PrimaryColor:   DefaultPrimaryColor,
			SecondaryColor: DefaultSecondaryColor,
		}
		if err := s.repo.CreateBranding(txCtx, branding); err != nil {
			return err
		}

		admin, err := s.users.Create(txCtx, user.CreateParams{
			TenantID:     t.ID,
			Email:        params.AdminEmail,
			PasswordHash: passwordHash,
			Role:         identity.RoleAdmin,
		})
		if err != nil {
			return err
		}

		res = SignupResult{Tenant: t, Admin: admin}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("signup tenant %s: %w", params.Slug, err)
	}

	s.verifier.SendVerification(res.Admin)

	return &res, nil
}

func (s *Service) FindBySlug(ctx context.Context, slug string) (*Tenant, error) {
	t, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("tenant service: %w", err)
	}
	return t, nil
}

func (s *Service) Current(ctx context.Context, tenantID string) (*Tenant, *Branding, error) {
	t, err := s.repo.Find(ctx, tenantID)
	if err != nil {
		return nil, nil, fmt.Errorf("tenant service: %w", err)
	}

	b, err := s.repo.FindBrandingByTenant(ctx, tenantID)
	if err != nil {
		return nil, nil, fmt.Errorf("tenant service: %w", err)
	}

	return t, b, nil
}

func (s *Service) Branding(ctx context.Context, slug string) (*Branding, error) {
	b, err := s.repo.FindBranding(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("tenant service: %w", err)
	}
	return b, nil
}

type BrandingParams struct {
	DisplayName    string
	LogoURL        string
	PrimaryColor   string
	SecondaryColor string
	CustomDomain   string
	EmailSender    string
}

func (s *Service) UpdateBranding(ctx context.Context, tenantID string, params BrandingParams) (*Branding, error) {
	if params.PrimaryColor == "" {
		params.PrimaryColor = DefaultPrimaryColor
	}
	if params.SecondaryColor == "" {
		params.SecondaryColor = DefaultSecondaryColor
	}
	params.PrimaryColor = strings.ToUpper(params.PrimaryColor)
	params.SecondaryColor = strings.ToUpper(params.SecondaryColor)
	params.CustomDomain = strings.ToLower(strings.TrimSuffix(params.CustomDomain, "."))

	b, err := s.repo.UpdateBranding(ctx, tenantID, params)
	if err != nil {
		return nil, fmt.Errorf("tenant service: %w", err)
	}
	return b, nil
}
