package tenant_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ferdiebergado/hireloop/internal/identity"
	"github.com/ferdiebergado/hireloop/internal/model"
	"github.com/ferdiebergado/hireloop/internal/platform/db"
	"github.com/ferdiebergado/hireloop/internal/platform/hash"
	"github.com/ferdiebergado/hireloop/internal/tenant"
	"github.com/ferdiebergado/hireloop/internal/user"
)

const tenantID = "8a3c8c50-4a8e-4b1c-9a55-3c5a9d3c1f10"

func TestService_Signup(t *testing.T) {
	t.Parallel()

	hasher := &hash.StubHasher{
		HashFunc: func(plain string) (string, error) { return "hashed:" + plain, nil },
	}

	t.Run("creates tenant with branding and admin", func(t *testing.T) {
		t.Parallel()

		var (
			branding tenant.Branding
			created  user.CreateParams
			verified string
		)

		repo := &tenant.StubRepo{
			CreateFunc: func(_ context.Context, name, slug string) (tenant.Tenant, error) {
				return tenant.Tenant{ID: tenantID, Name: name, Slug: slug}, nil
			},
			CreateBrandingFunc: func(_ context.Context, b tenant.Branding) error {
				branding = b
				return nil
			},
		}
		users := &user.StubService{
			CreateFunc: func(_ context.Context, params user.CreateParams) (user.User, error) {
				created = params
				return user.User{Model: model.Model{ID: "admin-1"}, TenantID: params.TenantID, Email: params.Email, Role: params.Role}, nil
			},
		}
		verifier := &tenant.StubVerifier{
			SendVerificationFunc: func(u user.User) { verified = u.ID },
		}

		svc := tenant.NewService(repo, users, hasher, db.PassthroughTxManager{}, verifier)
		res, err := svc.Signup(context.Background(), tenant.SignupParams{
			Name:          " Acme Corp ",
			Slug:          "acme",
			AdminEmail:    "owner@acme.test",
			AdminPassword: "s3cret-pass",
		})
		if err != nil {
			t.Fatal(err)
		}

		if res.Tenant.Name != "Acme Corp" {
			t.Errorf("res.Tenant.Name = %q, want: %q", res.Tenant.Name, "Acme Corp")
		}

		if branding.TenantID != tenantID || branding.DisplayName != "Acme Corp" || branding.PrimaryColor != tenant.DefaultPrimaryColor {
			t.Errorf("branding = %+v", branding)
		}

		if created.Role != identity.RoleAdmin || created.PasswordHash != "hashed:s3cret-pass" || created.TenantID != tenantID {
			t.Errorf("admin params = %+v", created)
		}

		if verified != "admin-1" {
			t.Errorf("verification sent to %q, want: %q", verified, "admin-1")
		}
	})

	t.Run("duplicate slug aborts before creating the admin", func(t *testing.T) {
		t.Parallel()

		repo := &tenant.StubRepo{
			CreateFunc: func(_ context.Context, _, _ string) (tenant.Tenant, error) {
				return tenant.Tenant{}, tenant.ErrDuplicateSlug
			},
		}

		svc := tenant.NewService(repo, &user.StubService{}, hasher, db.PassthroughTxManager{}, &tenant.StubVerifier{})
		_, err := svc.Signup(context.Background(), tenant.SignupParams{Name: "Acme", Slug: "acme", AdminPassword: "x"})
		if !errors.Is(err, tenant.ErrDuplicateSlug) {
			t.Errorf("Signup() err = %v, want: %v", err, tenant.ErrDuplicateSlug)
		}
	})
}

func TestService_UpdateBranding(t *testing.T) {
	t.Parallel()

	var got tenant.BrandingParams
	repo := &tenant.StubRepo{
		UpdateBrandingFunc: func(_ context.Context, _ string, params tenant.BrandingParams) (*tenant.Branding, error) {
			got = params
			return &tenant.Branding{TenantID: tenantID}, nil
		},
	}

	svc := tenant.NewService(repo, nil, nil, db.PassthroughTxManager{}, nil)
	_, err := svc.UpdateBranding(context.Background(), tenantID, tenant.BrandingParams{
		DisplayName:  "Acme",
		PrimaryColor: "#a1b2c3",
		CustomDomain: "Jobs.Acme.Test.",
	})
	if err != nil {
		t.Fatal(err)
	}

	want := tenant.BrandingParams{
		DisplayName:    "Acme",
		PrimaryColor:   "#A1B2C3",
		SecondaryColor: tenant.DefaultSecondaryColor,
		CustomDomain:   "jobs.acme.test",
	}
	if got != want {
		t.Errorf("params = %+v, want: %+v", got, want)
	}
}
