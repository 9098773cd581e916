//go:build integration

package tenant_test

import (
	"errors"
	"testing"

	"github.com/ferdiebergado/hireloop/internal/platform/db"
	"github.com/ferdiebergado/hireloop/internal/tenant"
)

func TestIntegrationRepository_Branding(t *testing.T) {
	t.Parallel()

	conn, tx := db.Setup(t)
	txCtx := db.NewContextWithTx(t.Context(), tx)
	repo := tenant.NewRepository(conn)

	acme, err := repo.Create(txCtx, "Acme", "acme-it")
	if err != nil {
		t.Fatalf("failed to create tenant: %v", err)
	}

	globex, err := repo.Create(txCtx, "Globex", "globex-it")
	if err != nil {
		t.Fatalf("failed to create tenant: %v", err)
	}

	for _, tn := range []tenant.Tenant{acme, globex} {
		b := tenant.Branding{TenantID: tn.ID, DisplayName: tn.Name, PrimaryColor: tenant.DefaultPrimaryColor, SecondaryColor: tenant.DefaultSecondaryColor}
		if err := repo.CreateBranding(txCtx, b); err != nil {
			t.Fatalf("failed to create branding: %v", err)
		}
	}

	params := tenant.BrandingParams{DisplayName: "Acme Careers", PrimaryColor: "#000000", SecondaryColor: "#FFFFFF", CustomDomain: "jobs.acme.test"}
	updated, err := repo.UpdateBranding(txCtx, acme.ID, params)
	if err != nil {
		t.Fatalf("failed to update branding: %v", err)
	}

	if updated.TenantSlug != "acme-it" || updated.CustomDomain == nil || *updated.CustomDomain != "jobs.acme.test" {
		t.Errorf("updated = %+v", updated)
	}

	found, err := repo.FindBranding(txCtx, "acme-it")
	if err != nil {
		t.Fatal(err)
	}
	if found.DisplayName != "Acme Careers" {
		t.Errorf("found.DisplayName = %q, want: %q", found.DisplayName, "Acme Careers")
	}

	params.DisplayName = "Globex"
	if _, err := repo.UpdateBranding(txCtx, globex.ID, params); !errors.Is(err, tenant.ErrDomainTaken) {
		t.Errorf("repo.UpdateBranding(taken domain) err = %v, want: %v", err, tenant.ErrDomainTaken)
	}
}

func TestIntegrationRepository_CreateDuplicate(t *testing.T) {
	t.Parallel()

	conn, tx := db.Setup(t)
	txCtx := db.NewContextWithTx(t.Context(), tx)
	repo := tenant.NewRepository(conn)

	if _, err := repo.Create(txCtx, "Acme", "acme-it"); err != nil {
		t.Fatalf("failed to create tenant: %v", err)
	}

	if _, err := repo.Create(txCtx, "Acme 2", "acme-it"); !errors.Is(err, tenant.ErrDuplicateSlug) {
		t.Errorf("repo.Create(duplicate) err = %v, want: %v", err, tenant.ErrDuplicateSlug)
	}
}
