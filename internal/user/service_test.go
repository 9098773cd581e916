package user_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ferdiebergado/hireloop/internal/identity"
	"github.com/ferdiebergado/hireloop/internal/model"
	"github.com/ferdiebergado/hireloop/internal/user"
)

func TestService_Create(t *testing.T) {
	t.Parallel()

	var got user.CreateParams
	repo := &user.StubRepo{
		CreateFunc: func(_ context.Context, params user.CreateParams) (user.User, error) {
			got = params
			return user.User{Model: model.Model{ID: "1"}, Email: params.Email}, nil
		},
	}

	svc := user.NewService(repo)
	u, err := svc.Create(context.Background(), user.CreateParams{
		TenantID: tenantID,
		Email:    "  Jane.Doe@Example.COM ",
		Role:     identity.RoleRecruiter,
	})
	if err != nil {
		t.Fatal(err)
	}

	const want = "jane.doe@example.com"
	if got.Email != want || u.Email != want {
		t.Errorf("email = %q, want: %q", got.Email, want)
	}
}

func TestService_FindByEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		repoErr error
		wantErr error
	}{
		{"found", nil, nil},
		{"not found", user.ErrNotFound, user.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := &user.StubRepo{
				FindByEmailFunc: func(_ context.Context, _, email string) (*user.User, error) {
					if tt.repoErr != nil {
						return nil, tt.repoErr
					}
					return &user.User{Email: email}, nil
				},
			}

			svc := user.NewService(repo)
			u, err := svc.FindByEmail(context.Background(), tenantID, "A@B.COM")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("FindByEmail() err = %v, want: %v", err, tt.wantErr)
			}

			if tt.wantErr == nil && u.Email != "a@b.com" {
				t.Errorf("u.Email = %q, want: %q", u.Email, "a@b.com")
			}
		})
	}
}
