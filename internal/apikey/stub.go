package apikey

import (
	"context"
	"errors"
	"time"
)

type StubRepo struct {
	CreateFunc       func(ctx context.Context, params CreateParams) (*APIKey, error)
	ListFunc         func(ctx context.Context, tenantID string) ([]APIKey, error)
	FindByPrefixFunc func(ctx context.Context, prefix string) (*APIKey, error)
	RevokeFunc       func(ctx context.Context, tenantID, keyID string) error
	TouchFunc        func(ctx context.Context, keyID string) error
}

var _ Repository = (*StubRepo)(nil)

func (r *StubRepo) Create(ctx context.Context, params CreateParams) (*APIKey, error) {
	if r.CreateFunc == nil {
		return nil, errors.New("Create not implemented by stub")
	}
	return r.CreateFunc(ctx, params)
}

func (r *StubRepo) List(ctx context.Context, tenantID string) ([]APIKey, error) {
	if r.ListFunc == nil {
		return nil, errors.New("List not implemented by stub")
	}
	return r.ListFunc(ctx, tenantID)
}

func (r *StubRepo) FindByPrefix(ctx context.Context, prefix string) (*APIKey, error) {
	if r.FindByPrefixFunc == nil {
		return nil, errors.New("FindByPrefix not implemented by stub")
	}
	return r.FindByPrefixFunc(ctx, prefix)
}

func (r *StubRepo) Revoke(ctx context.Context, tenantID, keyID string) error {
	if r.RevokeFunc == nil {
		return errors.New("Revoke not implemented by stub")
	}
	return r.RevokeFunc(ctx, tenantID, keyID)
}

func (r *StubRepo) Touch(ctx context.Context, keyID string) error {
	if r.TouchFunc == nil {
		return errors.New("Touch not implemented by stub")
	}
	return r.TouchFunc(ctx, keyID)
}

type StubService struct {
	CreateFunc func(ctx context.Context, tenantID, name string, scopes []string) (*Issued, error)
	ListFunc   func(ctx context.Context, tenantID string) ([]APIKey, error)
	RevokeFunc func(ctx context.Context, tenantID, keyID string) error
}

var _ APIKeyService = (*StubService)(nil)

func (s *StubService) Create(ctx context.Context, tenantID, name string, scopes []string) (*Issued, error) {
	if s.CreateFunc == nil {
		return nil, errors.New("Create not implemented by stub")
	}
	return s.CreateFunc(ctx, tenantID, name, scopes)
}

func (s *StubService) List(ctx context.Context, tenantID string) ([]APIKey, error) {
	if s.ListFunc == nil {
		return nil, errors.New("List not implemented by stub")
	}
	return s.ListFunc(ctx, tenantID)
}

func (s *StubService) Revoke(ctx context.Context, tenantID, keyID string) error {
	if s.RevokeFunc == nil {
		return errors.New("Revoke not implemented by stub")
	}
	return s.RevokeFunc(ctx, tenantID, keyID)
}

type StubAuthenticator struct {
	AuthenticateFunc func(ctx context.Context, raw string) (*APIKey, error)
}

var _ Authenticator = (*StubAuthenticator)(nil)

func (a *StubAuthenticator) Authenticate(ctx context.Context, raw string) (*APIKey, error) {
	if a.AuthenticateFunc == nil {
		return nil, errors.New("Authenticate not implemented by stub")
	}
	return a.AuthenticateFunc(ctx, raw)
}

type StubLimiter struct {
	AllowFunc func(key string) (bool, time.Duration)
}

var _ RateLimiter = (*StubLimiter)(nil)

func (l *StubLimiter) Allow(key string) (bool, time.Duration) {
	if l.AllowFunc == nil {
		panic("Allow not implemented by stub")
	}
	return l.AllowFunc(key)
}
