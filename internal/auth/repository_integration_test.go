//go:build integration

package auth_test

import (
	"errors"
	"testing"

	"github.com/ferdiebergado/hireloop/internal/auth"
	"github.com/ferdiebergado/hireloop/internal/platform/db"
	"github.com/ferdiebergado/hireloop/internal/user"
)

const querySeedUser = `
INSERT INTO tenants (id, name, slug) VALUES ('8a3c8c50-4a8e-4b1c-9a55-3c5a9d3c1f10', 'Acme', 'acme-auth');
INSERT INTO users (id, tenant_id, email, password_hash, role)
VALUES ('f47ac10b-58cc-4372-a567-0e02b2c3d479', '8a3c8c50-4a8e-4b1c-9a55-3c5a9d3c1f10', 'alice@example.com', 'old-hash', 'candidate');
`

const seededUserID = "f47ac10b-58cc-4372-a567-0e02b2c3d479"

func TestIntegrationRepository_Verify(t *testing.T) {
	t.Parallel()

	conn, tx := db.Setup(t)
	if _, err := tx.Exec(querySeedUser); err != nil {
		t.Fatal(err)
	}

	txCtx := db.NewContextWithTx(t.Context(), tx)
	repo := auth.NewRepository(conn)

	if err := repo.Verify(txCtx, seededUserID); err != nil {
		t.Fatalf("repo.Verify() = %v", err)
	}

	if err := repo.Verify(txCtx, seededUserID); !errors.Is(err, user.ErrNotFound) {
		t.Errorf("repo.Verify(already verified) = %v, want: %v", err, user.ErrNotFound)
	}
}

func TestIntegrationRepository_ChangePassword(t *testing.T) {
	t.Parallel()

	conn, tx := db.Setup(t)
	if _, err := tx.Exec(querySeedUser); err != nil {
		t.Fatal(err)
	}

	txCtx := db.NewContextWithTx(t.Context(), tx)
	repo := auth.NewRepository(conn)

	if err := repo.ChangePassword(txCtx, seededUserID, "new-hash"); err != nil {
		t.Fatalf("repo.ChangePassword() = %v", err)
	}

	var got string
	if err := tx.QueryRowContext(t.Context(), "SELECT password_hash FROM users WHERE id = $1", seededUserID).Scan(&got); err != nil {
		t.Fatal(err)
	}
	if got != "new-hash" {
		t.Errorf("password_hash = %q, want: %q", got, "new-hash")
	}
}
