package apikey

import (
	"slices"
	"time"
)

const (
	ScopeJobsRead          = "jobs:read"
	ScopeJobsWrite         = "jobs:write"
	ScopeCandidatesRead    = "candidates:read"
	ScopeCandidatesWrite   = "candidates:write"
	ScopeApplicationsRead  = "applications:read"
	ScopeApplicationsWrite = "applications:write"
)

var scopes = []string{
	ScopeJobsRead,
	ScopeJobsWrite,
	ScopeCandidatesRead,
	ScopeCandidatesWrite,
	ScopeApplicationsRead,
	ScopeApplicationsWrite,
}

func ValidScope(s string) bool {
	return slices.Contains(scopes, s)
}

type APIKey struct {
	ID         string
	TenantID   string
	Name       string
	Prefix     string
	KeyHash    string
	Scopes     []string
	LastUsedAt *time.Time
	RevokedAt  *time.Time
	CreatedAt  time.Time
}
