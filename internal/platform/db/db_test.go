package db_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/ferdiebergado/hireloop/internal/platform/db"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	errOther := errors.New("connection reset")

	tests := []struct {
		name           string
		err            error
		want           error
		wantConstraint string
	}{
		{"Unique violation", &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_tenant_id_email_key"}, db.ErrUniqueViolation, "users_tenant_id_email_key"},
		{"Wrapped foreign key violation", fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}), db.ErrForeignKeyViolation, ""},
		{"Check violation", &pgconn.PgError{Code: pgerrcode.CheckViolation, ConstraintName: "jobs_salary_check"}, db.ErrCheckViolation, "jobs_salary_check"},
		{"Other postgres error", &pgconn.PgError{Code: pgerrcode.SerializationFailure}, nil, ""},
		{"Non postgres error", errOther, nil, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := db.Classify(tc.err)
			if !errors.Is(got, tc.err) && got != tc.err {
				t.Errorf("db.Classify(%v) lost the original error: %v", tc.err, got)
			}

			if tc.want != nil && !errors.Is(got, tc.want) {
				t.Errorf("db.Classify(%v) = %v, want: %v", tc.err, got, tc.want)
			}

			if tc.want == nil && got != tc.err {
				t.Errorf("db.Classify(%v) = %v, want unchanged", tc.err, got)
			}

			if gotConstraint := db.Constraint(got); gotConstraint != tc.wantConstraint {
				t.Errorf("db.Constraint() = %q, want: %q", gotConstraint, tc.wantConstraint)
			}
		})
	}
}

func TestExecutorFromContext(t *testing.T) {
	t.Parallel()

	fallback := &sql.DB{}

	if got := db.ExecutorFromContext(context.Background(), fallback); got != fallback {
		t.Errorf("db.ExecutorFromContext() = %v, want: fallback", got)
	}

	tx := &sql.Tx{}
	ctx := db.NewContextWithTx(context.Background(), tx)
	if got := db.ExecutorFromContext(ctx, fallback); got != tx {
		t.Errorf("db.ExecutorFromContext() = %v, want: tx", got)
	}
}

func TestPassthroughTxManager_RunInTx(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("boom")
	var called bool
	err := db.PassthroughTxManager{}.RunInTx(context.Background(), func(_ context.Context) error {
		called = true
		return wantErr
	})

	if !called {
		t.Error("fn was not called")
	}

	if !errors.Is(err, wantErr) {
		t.Errorf("RunInTx() = %v, want: %v", err, wantErr)
	}
}

func TestContainsPattern(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"engineer", "%engineer%"},
		{"100%", `%100\%%`},
		{"snake_case", `%snake\_case%`},
		{`C:\dir`, `%C:\\dir%`},
		{"", "%%"},
	}

	for _, tt := range tests {
		if got := db.ContainsPattern(tt.in); got != tt.want {
			t.Errorf("ContainsPattern(%q) = %q, want: %q", tt.in, got, tt.want)
		}
	}
}
