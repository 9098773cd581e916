package apikey_test

import (
	"context"
	"errors"
	"regexp"
	"slices"
	"testing"
	"time"

	"github.com/ferdiebergado/hireloop/internal/apikey"
	"github.com/ferdiebergado/hireloop/internal/pkg/security"
)

const (
	tenantID = "8a3c8c50-4a8e-4b1c-9a55-3c5a9d3c1f10"
	appKey   = "0123456789abcdef0123456789abcdef"
)

var keyFormat = regexp.MustCompile(`^hl_[0-9a-f]{12}_[0-9a-f]+$`)

func TestService_CreateAndAuthenticate(t *testing.T) {
	t.Parallel()

	var stored apikey.CreateParams
	touched := make(chan string, 1)
	now := time.Now()

	repo := &apikey.StubRepo{
		CreateFunc: func(_ context.Context, params apikey.CreateParams) (*apikey.APIKey, error) {
			stored = params
			return &apikey.APIKey{ID: "k1", TenantID: params.TenantID, Name: params.Name, Prefix: params.Prefix, KeyHash: params.KeyHash, Scopes: params.Scopes, CreatedAt: now}, nil
		},
		FindByPrefixFunc: func(_ context.Context, prefix string) (*apikey.APIKey, error) {
			if prefix != stored.Prefix {
				return nil, apikey.ErrNotFound
			}
			return &apikey.APIKey{ID: "k1", TenantID: stored.TenantID, Prefix: stored.Prefix, KeyHash: stored.KeyHash, Scopes: stored.Scopes}, nil
		},
		TouchFunc: func(_ context.Context, keyID string) error {
			touched <- keyID
			return nil
		},
	}

	svc := apikey.NewService(repo, security.NewSHA256Hasher(appKey), 32)
	issued, err := svc.Create(context.Background(), tenantID, "ats-sync", []string{apikey.ScopeJobsRead, apikey.ScopeCandidatesWrite, apikey.ScopeJobsRead})
	if err != nil {
		t.Fatal(err)
	}

	if !keyFormat.MatchString(issued.Plaintext) {
		t.Errorf("issued.Plaintext = %q, want format hl_<prefix>_<secret>", issued.Plaintext)
	}

	if wantScopes := []string{apikey.ScopeCandidatesWrite, apikey.ScopeJobsRead}; !slices.Equal(stored.Scopes, wantScopes) {
		t.Errorf("stored.Scopes = %v, want: %v", stored.Scopes, wantScopes)
	}

	if stored.KeyHash == "" || stored.KeyHash == issued.Plaintext {
		t.Errorf("stored.KeyHash = %q, want a hash of the secret", stored.KeyHash)
	}

	k, err := svc.Authenticate(context.Background(), issued.Plaintext)
	if err != nil {
		t.Fatalf("Authenticate() err = %v", err)
	}
	if k.TenantID != tenantID {
		t.Errorf("k.TenantID = %q, want: %q", k.TenantID, tenantID)
	}

	select {
	case id := <-touched:
		if id != "k1" {
			t.Errorf("touched %q, want: k1", id)
		}
	case <-time.After(2 * time.Second):
		t.Error("last_used_at was not recorded")
	}

	tampered := issued.Plaintext[:len(issued.Plaintext)-1] + "x"
	if _, err := svc.Authenticate(context.Background(), tampered); !errors.Is(err, apikey.ErrInvalidKey) {
		t.Errorf("Authenticate(tampered) err = %v, want: %v", err, apikey.ErrInvalidKey)
	}
}

func TestService_Authenticate(t *testing.T) {
	t.Parallel()

	hasher := security.NewSHA256Hasher(appKey)
	revokedAt := time.Now()

	tests := []struct {
		name    string
		raw     string
		key     *apikey.APIKey
		wantErr error
	}{
		{"malformed", "not-a-key", nil, apikey.ErrInvalidKey},
		{"wrong vendor prefix", "sk_0123456789ab_secret", nil, apikey.ErrInvalidKey},
		{"unknown prefix", "hl_0123456789ab_secret", nil, apikey.ErrInvalidKey},
		{"revoked", "hl_0123456789ab_secret", &apikey.APIKey{ID: "k1", KeyHash: hasher.Hash("secret"), RevokedAt: &revokedAt}, apikey.ErrRevoked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := &apikey.StubRepo{
				FindByPrefixFunc: func(_ context.Context, _ string) (*apikey.APIKey, error) {
					if tt.key == nil {
						return nil, apikey.ErrNotFound
					}
					return tt.key, nil
				},
			}

			svc := apikey.NewService(repo, hasher, 32)
			if _, err := svc.Authenticate(context.Background(), tt.raw); !errors.Is(err, tt.wantErr) {
				t.Errorf("Authenticate() err = %v, want: %v", err, tt.wantErr)
			}
		})
	}
}
