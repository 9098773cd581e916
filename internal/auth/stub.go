package auth

import (
	"context"
	"errors"

	"github.com/ferdiebergado/hireloop/internal/tenant"
	"github.com/ferdiebergado/hireloop/internal/user"
)

type StubService struct {
	RegisterFunc          func(ctx context.Context, params RegisterParams) (user.User, error)
	VerifyFunc            func(ctx context.Context, userID string) error
	LoginFunc             func(ctx context.Context, params LoginParams) (*Session, error)
	RefreshFunc           func(ctx context.Context, refreshToken string) (string, error)
	SendPasswordResetFunc func(ctx context.Context, tenantSlug, email string)
	ResetPasswordFunc     func(ctx context.Context, userID, newPassword string) error
}

var _ AuthService = (*StubService)(nil)

func (s *StubService) Register(ctx context.Context, params RegisterParams) (user.User, error) {
	if s.RegisterFunc == nil {
		return user.User{}, errors.New("Register not implemented by stub")
	}
	return s.RegisterFunc(ctx, params)
}

func (s *StubService) Verify(ctx context.Context, userID string) error {
	if s.VerifyFunc == nil {
		return errors.New("Verify not implemented by stub")
	}
	return s.VerifyFunc(ctx, userID)
}

func (s *StubService) Login(ctx context.Context, params LoginParams) (*Session, error) {
	if s.LoginFunc == nil {
		return nil, errors.New("Login not implemented by stub")
	}
	return s.LoginFunc(ctx, params)
}

func (s *StubService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if s.RefreshFunc == nil {
		return "", errors.New("Refresh not implemented by stub")
	}
	return s.RefreshFunc(ctx, refreshToken)
}

func (s *StubService) SendPasswordReset(ctx context.Context, tenantSlug, email string) {
	if s.SendPasswordResetFunc == nil {
		panic("SendPasswordReset not implemented by stub")
	}
	s.SendPasswordResetFunc(ctx, tenantSlug, email)
}

func (s *StubService) ResetPassword(ctx context.Context, userID, newPassword string) error {
	if s.ResetPasswordFunc == nil {
		return errors.New("ResetPassword not implemented by stub")
	}
	return s.ResetPasswordFunc(ctx, userID, newPassword)
}

type StubRepo struct {
	VerifyFunc         func(ctx context.Context, userID string) error
	ChangePasswordFunc func(ctx context.Context, userID, passwordHash string) error
}

var _ Repository = (*StubRepo)(nil)

func (r *StubRepo) Verify(ctx context.Context, userID string) error {
	if r.VerifyFunc == nil {
		return errors.New("Verify not implemented by stub")
	}
	return r.VerifyFunc(ctx, userID)
}

func (r *StubRepo) ChangePassword(ctx context.Context, userID, passwordHash string) error {
	if r.ChangePasswordFunc == nil {
		return errors.New("ChangePassword not implemented by stub")
	}
	return r.ChangePasswordFunc(ctx, userID, passwordHash)
}

type StubTenantFinder struct {
	FindBySlugFunc func(ctx context.Context, slug string) (*tenant.Tenant, error)
}

var _ TenantFinder = (*StubTenantFinder)(nil)

func (f *StubTenantFinder) FindBySlug(ctx context.Context, slug string) (*tenant.Tenant, error) {
	if f.FindBySlugFunc == nil {
		return nil, errors.New("FindBySlug not implemented by stub")
	}
	return f.FindBySlugFunc(ctx, slug)
}
