package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/ferdiebergado/hireloop/internal/config"
	"github.com/ferdiebergado/hireloop/internal/identity"
	"github.com/ferdiebergado/hireloop/internal/platform/email"
	"github.com/ferdiebergado/hireloop/internal/platform/hash"
	"github.com/ferdiebergado/hireloop/internal/platform/jwt"
	"github.com/ferdiebergado/hireloop/internal/tenant"
	"github.com/ferdiebergado/hireloop/internal/user"
)

var _ AuthService = (*Service)(nil)

var (
	ErrUserNotVerified    = errors.New("auth service: email not verified")
	ErrUserExists         = errors.New("auth service: user already exists")
	ErrInvalidCredentials = errors.New("auth service: invalid credentials")
	ErrTenantNotFound     = errors.New("auth service: tenant not found")
	ErrRoleNotAllowed     = errors.New("auth service: role cannot self-register")
)

const emailTimeout = 30 * time.Second

type Repository interface {
	Verify(ctx context.Context, userID string) error
	ChangePassword(ctx context.Context, userID, passwordHash string) error
}

type TenantFinder interface {
	FindBySlug(ctx context.Context, slug string) (*tenant.Tenant, error)
}

type Service struct {
	repo    Repository
	users   user.UserService
	tenants TenantFinder
	hasher  hash.Hasher
	signer  jwt.Signer
	mailer  email.Mailer
	cfg     *config.Config
}

type RegisterParams struct {
	TenantSlug string
	Email      string
	Password   string
	Role       string
}

func (p RegisterParams) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("tenant_slug", p.TenantSlug),
		slog.String("email", maskChar),
		slog.String("password", maskChar),
		slog.String("role", p.Role),
	)
}

func (s *Service) Register(ctx context.Context, params RegisterParams) (user.User, error) {
	var u user.User

	role := params.Role
	if role == "" {
		role = identity.RoleCandidate
	}
	if role != identity.RoleCandidate && role != identity.RoleRecruiter {
		return u, ErrRoleNotAllowed
	}

	t, err := s.findTenant(ctx, params.TenantSlug)
	if err != nil {
		return u, err
	}

	existing, err := s.users.FindByEmail(ctx, t.ID, params.Email)
	if err != nil && !errors.Is(err, user.ErrNotFound) {
		return u, fmt.Errorf("find user by email: %w", err)
	}
	if existing != nil {
		return u, ErrUserExists
	}

	passwordHash, err := s.hasher.Hash(params.Password)
	if err != nil {
		return u, fmt.Errorf("hasher hash: %w", err)
	}

	u, err = s.users.Create(ctx, user.CreateParams{
		TenantID:     t.ID,
		Email:        params.Email,
		PasswordHash: passwordHash,
		Role:         role,
	})
	if err != nil {
		if errors.Is(err, user.ErrDuplicate) {
			return u, ErrUserExists
		}
		return u, fmt.Errorf("create user: %w", err)
	}

	s.SendVerification(u)

	return u, nil
}

// SendVerification mails a verification link to u in the background.
func (s *Service) SendVerification(u user.User) {
	verifyEmail := &HTMLEmail{
		To:       u.Email,
		Subject:  "Verify your email",
		Title:    "Email verification",
		Template: "verification",
		Claims:   jwt.Claims{UserID: u.ID, TenantID: u.TenantID, Role: u.Role},
		Audience: jwt.AudienceVerify,
		TTL:      s.cfg.Email.VerifyTTL.Duration,
		URI:      "/auth/verify",
	}
	go s.sendEmail(verifyEmail)
}

type HTMLEmail struct {
	To, Subject, Title, Template string
	Claims                       jwt.Claims
	Audience                     string
	TTL                          time.Duration
	URI                          string
}

func (s *Service) sendEmail(email *HTMLEmail) {
	slog.Info("Sending email...", "template", email.Template)

	token, err := s.signer.Sign(email.Claims, email.Audience, email.TTL)
	if err != nil {
		slog.Error("failed to generate token", "reason", err)
		return
	}

	data := map[string]string{
		"Title":  email.Title,
		"Header": email.Subject,
		"Link":   s.cfg.Server.URL + email.URI + "?token=" + url.QueryEscape(token),
	}
	if err := s.mailer.SendHTML([]string{email.To}, email.Subject, email.Template, data); err != nil {
		slog.Error("failed to send email", "template", email.Template, "reason", err)
	}
}

func (s *Service) Verify(ctx context.Context, userID string) error {
	if err := s.repo.Verify(ctx, userID); err != nil {
		return fmt.Errorf("verify user with id %s: %w", userID, err)
	}
	return nil
}

type LoginParams struct {
	TenantSlug string
	Email      string
	Password   string
}

func (p LoginParams) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("tenant_slug", p.TenantSlug),
		slog.String("email", maskChar),
		slog.String("password", maskChar),
	)
}

type Session struct {
	AccessToken  string
	RefreshToken string
}

func (s *Service) Login(ctx context.Context, params LoginParams) (*Session, error) {
	t, err := s.findTenant(ctx, params.TenantSlug)
	if err != nil {
		if errors.Is(err, ErrTenantNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	u, err := s.users.FindByEmail(ctx, t.ID, params.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	ok, err := s.hasher.Verify(params.Password, u.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password for user %s: %w", u.ID, err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	if u.VerifiedAt == nil {
		return nil, ErrUserNotVerified
	}

	claims := jwt.Claims{UserID: u.ID, TenantID: u.TenantID, Role: u.Role}
	accessToken, err := s.signer.Sign(claims, jwt.AudienceAccess, s.cfg.JWT.TTL.Duration)
	if err != nil {
		return nil, fmt.Errorf("sign access token for user %s: %w", u.ID, err)
	}

	refreshToken, err := s.signer.Sign(claims, jwt.AudienceRefresh, s.cfg.JWT.RefreshTTL.Duration)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token for user %s: %w", u.ID, err)
	}

	return &Session{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Refresh issues a new access token for the user of a valid refresh token.
// The user's current role is used, so role changes apply on the next refresh.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.signer.Verify(refreshToken, jwt.AudienceRefresh)
	if err != nil {
		return "", errors.Join(ErrInvalidToken, err)
	}

	u, err := s.users.Find(ctx, claims.TenantID, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", errors.Join(ErrInvalidToken, err)
		}
		return "", fmt.Errorf("find user %s: %w", claims.UserID, err)
	}

	fresh := jwt.Claims{UserID: u.ID, TenantID: u.TenantID, Role: u.Role}
	token, err := s.signer.Sign(fresh, jwt.AudienceAccess, s.cfg.JWT.TTL.Duration)
	if err != nil {
		return "", fmt.Errorf("sign access token for user %s: %w", u.ID, err)
	}
	return token, nil
}

// SendPasswordReset looks up the user and mails a reset link in the background.
// It never reports whether the user exists.
func (s *Service) SendPasswordReset(ctx context.Context, tenantSlug, email string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), emailTimeout)
		defer cancel()

		t, err := s.findTenant(ctx, tenantSlug)
		if err != nil {
			slog.Info("password reset for unknown tenant", "tenant_slug", tenantSlug)
			return
		}

		u, err := s.users.FindByEmail(ctx, t.ID, email)
		if err != nil {
			if !errors.Is(err, user.ErrNotFound) {
				slog.Error("failed to find user for password reset", "reason", err)
			}
			return
		}

		s.sendEmail(&HTMLEmail{
			To:       u.Email,
			Subject:  "Reset Your Password",
			Title:    "Password Reset",
			Template: "reset_password",
			Claims:   jwt.Claims{UserID: u.ID, TenantID: u.TenantID, Role: u.Role},
			Audience: jwt.AudienceReset,
			TTL:      s.cfg.Email.ResetTTL.Duration,
			URI:      "/auth/reset",
		})
	}()
}

func (s *Service) ResetPassword(ctx context.Context, userID, newPassword string) error {
	newHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash new password for user %s: %w", userID, err)
	}

	if err := s.repo.ChangePassword(ctx, userID, newHash); err != nil {
		return fmt.Errorf("change password for user %s: %w", userID, err)
	}

	return nil
}

func (s *Service) findTenant(ctx context.Context, slug string) (*tenant.Tenant, error) {
	t, err := s.tenants.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, tenant.ErrNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("find tenant %s: %w", slug, err)
	}
	return t, nil
}

func NewService(repo Repository, provider *Provider) *Service {
	return &Service{
		repo:    repo,
		users:   provider.Users,
		tenants: provider.Tenants,
		hasher:  provider.Hasher,
		mailer:  provider.Mailer,
		signer:  provider.Signer,
		cfg:     provider.Cfg,
	}
}
