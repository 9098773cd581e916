package identity_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ferdiebergado/hireloop/internal/identity"
)

func TestFromContext(t *testing.T) {
	t.Parallel()

	if _, err := identity.FromContext(context.Background()); !errors.Is(err, identity.ErrNoPrincipal) {
		t.Errorf("FromContext(empty) err = %v, want: %v", err, identity.ErrNoPrincipal)
	}

	want := identity.Principal{UserID: "u1", TenantID: "t1", Role: identity.RoleRecruiter}
	got, err := identity.FromContext(identity.ContextWith(context.Background(), want))
	if err != nil {
		t.Fatal(err)
	}

	if got.UserID != want.UserID || got.TenantID != want.TenantID || got.Role != want.Role {
		t.Errorf("FromContext() = %+v, want: %+v", got, want)
	}
}

func TestPrincipal_IsStaff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		role string
		want bool
	}{
		{identity.RoleAdmin, true},
		{identity.RoleRecruiter, true},
		{identity.RoleAPI, true},
		{identity.RoleCandidate, false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			t.Parallel()

			p := identity.Principal{Role: tt.role}
			if got := p.IsStaff(); got != tt.want {
				t.Errorf("IsStaff() = %v, want: %v", got, tt.want)
			}
		})
	}
}
