package tenant

import (
	"context"
	"errors"

	"github.com/ferdiebergado/hireloop/internal/user"
)

type StubRepo struct {
	CreateFunc               func(ctx context.Context, name, slug string) (Tenant, error)
	FindFunc                 func(ctx context.Context, tenantID string) (*Tenant, error)
	FindBySlugFunc           func(ctx context.Context, slug string) (*Tenant, error)
	CreateBrandingFunc       func(ctx context.Context, b Branding) error
	FindBrandingFunc         func(ctx context.Context, slug string) (*Branding, error)
	FindBrandingByTenantFunc func(ctx context.Context, tenantID string) (*Branding, error)
	UpdateBrandingFunc       func(ctx context.Context, tenantID string, params BrandingParams) (*Branding, error)
}

var _ Repository = (*StubRepo)(nil)

func (r *StubRepo) Create(ctx context.Context, name, slug string) (Tenant, error) {
	if r.CreateFunc == nil {
		return Tenant{}, errors.New("Create not implemented by stub")
	}
	return r.CreateFunc(ctx, name, slug)
}

func (r *StubRepo) Find(ctx context.Context, tenantID string) (*Tenant, error) {
	if r.FindFunc == nil {
		return nil, errors.New("Find not implemented by stub")
	}
	return r.FindFunc(ctx, tenantID)
}

func (r *StubRepo) FindBySlug(ctx context.Context, slug string) (*Tenant, error) {
	if r.FindBySlugFunc == nil {
		return nil, errors.New("FindBySlug not implemented by stub")
	}
	return r.FindBySlugFunc(ctx, slug)
}

func (r *StubRepo) CreateBranding(ctx context.Context, b Branding) error {
	if r.CreateBrandingFunc == nil {
		return errors.New("CreateBranding not implemented by stub")
	}
	return r.CreateBrandingFunc(ctx, b)
}

func (r *StubRepo) FindBranding(ctx context.Context, slug string) (*Branding, error) {
	if r.FindBrandingFunc == nil {
		return nil, errors.New("FindBranding not implemented by stub")
	}
	return r.FindBrandingFunc(ctx, slug)
}

func (r *StubRepo) FindBrandingByTenant(ctx context.Context, tenantID string) (*Branding, error) {
	if r.FindBrandingByTenantFunc == nil {
		return nil, errors.New("FindBrandingByTenant not implemented by stub")
	}
	return r.FindBrandingByTenantFunc(ctx, tenantID)
}

func (r *StubRepo) UpdateBranding(ctx context.Context, tenantID string, params BrandingParams) (*Branding, error) {
	if r.UpdateBrandingFunc == nil {
		return nil, errors.New("UpdateBranding not implemented by stub")
	}
	return r.UpdateBrandingFunc(ctx, tenantID, params)
}

type StubService struct {
	SignupFunc         func(ctx context.Context, params SignupParams) (*SignupResult, error)
	CurrentFunc        func(ctx context.Context, tenantID string) (*Tenant, *Branding, error)
	BrandingFunc       func(ctx context.Context, slug string) (*Branding, error)
	UpdateBrandingFunc func(ctx context.Context, tenantID string, params BrandingParams) (*Branding, error)
}

var _ TenantService = (*StubService)(nil)

func (s *StubService) Signup(ctx context.Context, params SignupParams) (*SignupResult, error) {
	if s.SignupFunc == nil {
		return nil, errors.New("Signup not implemented by stub")
	}
	return s.SignupFunc(ctx, params)
}

func (s *StubService) Current(ctx context.Context, tenantID string) (*Tenant, *Branding, error) {
	if s.CurrentFunc == nil {
		return nil, nil, errors.New("Current not implemented by stub")
	}
	return s.CurrentFunc(ctx, tenantID)
}

func (s *StubService) Branding(ctx context.Context, slug string) (*Branding, error) {
	if s.BrandingFunc == nil {
		return nil, errors.New("Branding not implemented by stub")
	}
	return s.BrandingFunc(ctx, slug)
}

func (s *StubService) UpdateBranding(ctx context.Context, tenantID string, params BrandingParams) (*Branding, error) {
	if s.UpdateBrandingFunc == nil {
		return nil, errors.New("UpdateBranding not implemented by stub")
	}
	return s.UpdateBrandingFunc(ctx, tenantID, params)
}

type StubVerifier struct {
	SendVerificationFunc func(u user.User)
}

func (v *StubVerifier) SendVerification(u user.User) {
	if v.SendVerificationFunc == nil {
		panic("SendVerification not implemented by stub")
	}
	v.SendVerificationFunc(u)
}
