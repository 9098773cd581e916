// Package identity carries the authenticated caller through request contexts.
package identity

import (
	"context"
	"errors"
	"slices"
)

const (
	RoleAdmin     = "admin"
	RoleRecruiter = "recruiter"
	RoleCandidate = "candidate"
	RoleAPI       = "api"
)

var ErrNoPrincipal = errors.New("identity: no principal in context")

// Principal is the caller of a request. UserID is empty for API key callers,
// which carry Scopes instead.
type Principal struct {
	UserID   string
	TenantID string
	Role     string
	Scopes   []string
}

// IsStaff reports whether the principal acts on behalf of the tenant rather than a candidate.
func (p Principal) IsStaff() bool {
	switch p.Role {
	case RoleAdmin, RoleRecruiter, RoleAPI:
		return true
	}
	return false
}

func (p Principal) HasRole(roles ...string) bool {
	return slices.Contains(roles, p.Role)
}

func (p Principal) HasScope(scope string) bool {
	return slices.Contains(p.Scopes, scope)
}

type ctxKey int

const principalCtxKey ctxKey = iota

// ContextWith returns a new context carrying p.
//
//nolint:ireturn //This function needs to return a context.
func ContextWith(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalCtxKey, p)
}

func FromContext(ctx context.Context) (Principal, error) {
	p, ok := ctx.Value(principalCtxKey).(Principal)
	if !ok {
		return Principal{}, ErrNoPrincipal
	}
	return p, nil
}
