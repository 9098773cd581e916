package apikey

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/ferdiebergado/hireloop/internal/pkg/security"
)

var (
	ErrInvalidKey = errors.New("invalid api key")
	ErrRevoked    = errors.New("api key revoked")
)

const touchTimeout = 5 * time.Second

type Repository interface {
	Create(ctx context.Context, params CreateParams) (*APIKey, error)
	List(ctx context.Context, tenantID string) ([]APIKey, error)
	FindByPrefix(ctx context.Context, prefix string) (*APIKey, error)
	Revoke(ctx context.Context, tenantID, keyID string) error
	Touch(ctx context.Context, keyID string) error
}

type Service struct {
	repo         Repository
	hasher       security.ShortHasher
	secretLength uint32
}

var _ APIKeyService = (*Service)(nil)
var _ Authenticator = (*Service)(nil)

func NewService(repo Repository, hasher security.ShortHasher, secretLength uint32) *Service {
	return &Service{
		repo:         repo,
		hasher:       hasher,
		secretLength: secretLength,
	}
}

// Issued is a newly created key. Plaintext is never stored and cannot be shown again.
type Issued struct {
	Key       *APIKey
	Plaintext string
}

func (s *Service) Create(ctx context.Context, tenantID, name string, scopes []string) (*Issued, error) {
	secret, err := security.GenerateRandomHex(s.secretLength)
	if err != nil {
		return nil, fmt.Errorf("generate api key secret: %w", err)
	}

	normalized := slices.Clone(scopes)
	slices.Sort(normalized)
	normalized = slices.Compact(normalized)

	prefix := newPrefix()
	k, err := s.repo.Create(ctx, CreateParams{
		TenantID: tenantID,
		Name:     name,
		Prefix:   prefix,
		KeyHash:  s.hasher.Hash(secret),
		Scopes:   normalized,
	})
	if err != nil {
		return nil, fmt.Errorf("apikey service: %w", err)
	}

	return &Issued{Key: k, Plaintext: formatKey(prefix, secret)}, nil
}

func (s *Service) List(ctx context.Context, tenantID string) ([]APIKey, error) {
	keys, err := s.repo.List(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("apikey service: %w", err)
	}
	return keys, nil
}

func (s *Service) Revoke(ctx context.Context, tenantID, keyID string) error {
	if err := s.repo.Revoke(ctx, tenantID, keyID); err != nil {
		return fmt.Errorf("apikey service: %w", err)
	}
	return nil
}

// Authenticate resolves a plaintext key to its stored record and records its use in the background.
func (s *Service) Authenticate(ctx context.Context, raw string) (*APIKey, error) {
	prefix, secret, err := parseKey(raw)
	if err != nil {
		return nil, errors.Join(ErrInvalidKey, err)
	}

	k, err := s.repo.FindByPrefix(ctx, prefix)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, errors.Join(ErrInvalidKey, err)
		}
		return nil, fmt.Errorf("apikey service: %w", err)
	}

	if !s.hasher.Verify(secret, k.KeyHash) {
		return nil, ErrInvalidKey
	}

	if k.RevokedAt != nil {
		return nil, ErrRevoked
	}

	go func(keyID string) {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), touchTimeout)
		defer cancel()
		if err := s.repo.Touch(ctx, keyID); err != nil {
			slog.Warn("failed to record api key use", "key_id", keyID, "reason", err)
		}
	}(k.ID)

	return k, nil
}
