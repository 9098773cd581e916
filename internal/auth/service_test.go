package auth_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ferdiebergado/hireloop/internal/auth"
	"github.com/ferdiebergado/hireloop/internal/identity"
	"github.com/ferdiebergado/hireloop/internal/model"
	"github.com/ferdiebergado/hireloop/internal/platform/email"
	"github.com/ferdiebergado/hireloop/internal/platform/hash"
	"github.com/ferdiebergado/hireloop/internal/platform/jwt"
	"github.com/ferdiebergado/hireloop/internal/tenant"
	"github.com/ferdiebergado/hireloop/internal/user"
)

func tenantFinder() *auth.StubTenantFinder {
	return &auth.StubTenantFinder{
		FindBySlugFunc: func(_ context.Context, slug string) (*tenant.Tenant, error) {
			if slug != tenantSlug {
				return nil, tenant.ErrNotFound
			}
			return &tenant.Tenant{ID: tenantID, Slug: slug}, nil
		},
	}
}

func TestService_Register(t *testing.T) {
	t.Parallel()

	hasher := &hash.StubHasher{
		HashFunc: func(plain string) (string, error) { return "hashed:" + plain, nil },
	}
	signer := &jwt.StubSigner{
		SignFunc: func(_ jwt.Claims, _ string, _ time.Duration) (string, error) { return "verify-token", nil },
	}

	tests := []struct {
		name     string
		params   auth.RegisterParams
		existing *user.User
		wantErr  error
		wantRole string
	}{
		{"defaults to candidate", auth.RegisterParams{TenantSlug: tenantSlug, Email: testEmail, Password: testPass}, nil, nil, identity.RoleCandidate},
		{"recruiter may self-register", auth.RegisterParams{TenantSlug: tenantSlug, Email: testEmail, Password: testPass, Role: identity.RoleRecruiter}, nil, nil, identity.RoleRecruiter},
		{"admin may not self-register", auth.RegisterParams{TenantSlug: tenantSlug, Email: testEmail, Password: testPass, Role: identity.RoleAdmin}, nil, auth.ErrRoleNotAllowed, ""},
		{"unknown tenant", auth.RegisterParams{TenantSlug: "globex", Email: testEmail, Password: testPass}, nil, auth.ErrTenantNotFound, ""},
		{"existing email", auth.RegisterParams{TenantSlug: tenantSlug, Email: testEmail, Password: testPass}, &user.User{Email: testEmail}, auth.ErrUserExists, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sent := make(chan []string, 1)
			mailer := &email.StubMailer{
				SendHTMLFunc: func(to []string, _, tmpl string, data map[string]string) error {
					if tmpl != "verification" || !strings.Contains(data["Link"], "/auth/verify?token=verify-token") {
						t.Errorf("unexpected email %q with data %v", tmpl, data)
					}
					sent <- to
					return nil
				},
			}
			users := &user.StubService{
				FindByEmailFunc: func(_ context.Context, _, _ string) (*user.User, error) {
					if tt.existing != nil {
						return tt.existing, nil
					}
					return nil, user.ErrNotFound
				},
				CreateFunc: func(_ context.Context, params user.CreateParams) (user.User, error) {
					if params.PasswordHash != "hashed:"+testPass {
						t.Errorf("params.PasswordHash = %q", params.PasswordHash)
					}
					return user.User{Model: model.Model{ID: "u1"}, TenantID: params.TenantID, Email: params.Email, Role: params.Role}, nil
				},
			}

			svc := auth.NewService(&auth.StubRepo{}, &auth.Provider{
				Cfg:     testConfig(),
				Hasher:  hasher,
				Signer:  signer,
				Mailer:  mailer,
				Users:   users,
				Tenants: tenantFinder(),
			})

			u, err := svc.Register(context.Background(), tt.params)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Register() err = %v, want: %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}

			if u.Role != tt.wantRole {
				t.Errorf("u.Role = %q, want: %q", u.Role, tt.wantRole)
			}

			select {
			case to := <-sent:
				if len(to) != 1 || to[0] != testEmail {
					t.Errorf("verification sent to %v", to)
				}
			case <-time.After(2 * time.Second):
				t.Error("verification email was not sent")
			}
		})
	}
}

func TestService_Login(t *testing.T) {
	t.Parallel()

	now := time.Now()
	verified := &user.User{Model: model.Model{ID: "u1"}, TenantID: tenantID, Email: testEmail, PasswordHash: "hash", Role: identity.RoleRecruiter, VerifiedAt: &now}
	unverified := &user.User{Model: model.Model{ID: "u2"}, TenantID: tenantID, Email: testEmail, PasswordHash: "hash", Role: identity.RoleCandidate}

	tests := []struct {
		name     string
		slug     string
		found    *user.User
		password string
		wantErr  error
	}{
		{"valid credentials", tenantSlug, verified, testPass, nil},
		{"wrong password", tenantSlug, verified, "nope", auth.ErrInvalidCredentials},
		{"unknown user", tenantSlug, nil, testPass, auth.ErrInvalidCredentials},
		{"unknown tenant", "globex", verified, testPass, auth.ErrInvalidCredentials},
		{"unverified user", tenantSlug, unverified, testPass, auth.ErrUserNotVerified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			audiences := make(map[string]jwt.Claims)
			signer := &jwt.StubSigner{
				SignFunc: func(claims jwt.Claims, audience string, _ time.Duration) (string, error) {
					audiences[audience] = claims
					return audience + "-token", nil
				},
			}
			hasher := &hash.StubHasher{
				VerifyFunc: func(plain, _ string) (bool, error) { return plain == testPass, nil },
			}
			users := &user.StubService{
				FindByEmailFunc: func(_ context.Context, _, _ string) (*user.User, error) {
					if tt.found == nil {
						return nil, user.ErrNotFound
					}
					return tt.found, nil
				},
			}

			svc := auth.NewService(&auth.StubRepo{}, &auth.Provider{
				Cfg:     testConfig(),
				Hasher:  hasher,
				Signer:  signer,
				Users:   users,
				Tenants: tenantFinder(),
			})

			session, err := svc.Login(context.Background(), auth.LoginParams{TenantSlug: tt.slug, Email: testEmail, Password: tt.password})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Login() err = %v, want: %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}

			if session.AccessToken != "access-token" || session.RefreshToken != "refresh-token" {
				t.Errorf("session = %+v", session)
			}

			want := jwt.Claims{UserID: "u1", TenantID: tenantID, Role: identity.RoleRecruiter}
			if audiences[jwt.AudienceAccess] != want {
				t.Errorf("access claims = %+v, want: %+v", audiences[jwt.AudienceAccess], want)
			}
		})
	}
}

func TestService_Refresh(t *testing.T) {
	t.Parallel()

	signer := &jwt.StubSigner{
		VerifyFunc: func(token, audience string) (*jwt.Claims, error) {
			if token != "refresh" || audience != jwt.AudienceRefresh {
				return nil, errors.New("bad token")
			}
			return &jwt.Claims{UserID: "u1", TenantID: tenantID, Role: identity.RoleCandidate}, nil
		},
		SignFunc: func(claims jwt.Claims, audience string, _ time.Duration) (string, error) {
			return audience + ":" + claims.Role, nil
		},
	}
	users := &user.StubService{
		FindFunc: func(_ context.Context, _, userID string) (*user.User, error) {
			return &user.User{Model: model.Model{ID: userID}, TenantID: tenantID, Role: identity.RoleRecruiter}, nil
		},
	}

	svc := auth.NewService(&auth.StubRepo{}, &auth.Provider{Cfg: testConfig(), Signer: signer, Users: users})

	token, err := svc.Refresh(context.Background(), "refresh")
	if err != nil {
		t.Fatal(err)
	}
	if token != "access:recruiter" {
		t.Errorf("token = %q, want the current role in a new access token", token)
	}

	if _, err := svc.Refresh(context.Background(), "access"); !errors.Is(err, auth.ErrInvalidToken) {
		t.Errorf("Refresh(invalid) err = %v, want: %v", err, auth.ErrInvalidToken)
	}
}

func TestService_ResetPassword(t *testing.T) {
	t.Parallel()

	var gotHash string
	repo := &auth.StubRepo{
		ChangePasswordFunc: func(_ context.Context, _, passwordHash string) error {
			gotHash = passwordHash
			return nil
		},
	}
	hasher := &hash.StubHasher{
		HashFunc: func(plain string) (string, error) { return "hashed:" + plain, nil },
	}

	svc := auth.NewService(repo, &auth.Provider{Cfg: testConfig(), Hasher: hasher})
	if err := svc.ResetPassword(context.Background(), "u1", "new-password"); err != nil {
		t.Fatal(err)
	}

	if gotHash != "hashed:new-password" {
		t.Errorf("stored hash = %q", gotHash)
	}
}
