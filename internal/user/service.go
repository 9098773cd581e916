package user

import (
	"context"
	"fmt"
	"strings"
)

// Repository is the interface for user management.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (User, error)
	List(ctx context.Context, tenantID string) ([]User, error)
	FindByEmail(ctx context.Context, tenantID, email string) (*User, error)
	Find(ctx context.Context, tenantID, userID string) (*User, error)
}

type Service struct {
	repo Repository
}

var _ UserService = (*Service)(nil)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a new user. Emails are compared case-insensitively, so they are stored lowercased.
func (s *Service) Create(ctx context.Context, params CreateParams) (User, error) {
	params.Email = NormalizeEmail(params.Email)
	u, err := s.repo.Create(ctx, params)
	if err != nil {
		return User{}, fmt.Errorf("user service: %w", err)
	}
	return u, nil
}

func (s *Service) FindByEmail(ctx context.Context, tenantID, email string) (*User, error) {
	u, err := s.repo.FindByEmail(ctx, tenantID, NormalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("user service: %w", err)
	}
	return u, nil
}

func (s *Service) Find(ctx context.Context, tenantID, userID string) (*User, error) {
	u, err := s.repo.Find(ctx, tenantID, userID)
	if err != nil {
		return nil, fmt.Errorf("user service: %w", err)
	}
	return u, nil
}

func (s *Service) List(ctx context.Context, tenantID string) ([]User, error) {
	users, err := s.repo.List(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("user service: %w", err)
	}
	return users, nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
