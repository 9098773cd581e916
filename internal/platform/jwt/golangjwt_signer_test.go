package jwt_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/ferdiebergado/hireloop/internal/config"
	"github.com/ferdiebergado/hireloop/internal/platform/jwt"
)

func newSigner(t *testing.T, key, issuer string) *jwt.GolangJWTSigner {
	t.Helper()

	signer, err := jwt.NewGolangJWTSigner(&config.JWT{JTILength: 8, Issuer: issuer}, key)
	if err != nil {
		t.Fatal(err)
	}
	return signer
}

func TestGolangJWTSigner_SignAndVerify(t *testing.T) {
	t.Parallel()

	signer := newSigner(t, "0123456789abcdef0123456789abcdef", "hireloop")
	want := jwt.Claims{UserID: "user-1", TenantID: "tenant-1", Role: "recruiter"}

	token, err := signer.Sign(want, jwt.AudienceAccess, 5*time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	if token == "" {
		t.Fatal("token is empty")
	}

	got, err := signer.Verify(token, jwt.AudienceAccess)
	if err != nil {
		t.Fatalf("signer.Verify() = %v", err)
	}

	if !reflect.DeepEqual(*got, want) {
		t.Errorf("signer.Verify() = %+v, want: %+v", *got, want)
	}
}

func TestGolangJWTSigner_VerifyRejects(t *testing.T) {
	t.Parallel()

	const key = "0123456789abcdef0123456789abcdef"
	signer := newSigner(t, key, "hireloop")
	claims := jwt.Claims{UserID: "user-1", TenantID: "tenant-1", Role: "admin"}

	valid, err := signer.Sign(claims, jwt.AudienceVerify, time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	expired, err := signer.Sign(claims, jwt.AudienceAccess, -time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	foreign, err := newSigner(t, "another-key-another-key-another-k", "hireloop").Sign(claims, jwt.AudienceAccess, time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	otherIssuer, err := newSigner(t, key, "someone-else").Sign(claims, jwt.AudienceAccess, time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name, token, audience string
	}{
		{"Wrong audience", valid, jwt.AudienceAccess},
		{"Expired", expired, jwt.AudienceAccess},
		{"Signed with another key", foreign, jwt.AudienceAccess},
		{"Other issuer", otherIssuer, jwt.AudienceAccess},
		{"Garbage", "not.a.token", jwt.AudienceAccess},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if _, err := signer.Verify(tc.token, tc.audience); err == nil {
				t.Errorf("signer.Verify(%q) = nil error, want: error", tc.name)
			}
		})
	}
}

func TestNewGolangJWTSigner_EmptyKey(t *testing.T) {
	t.Parallel()

	if _, err := jwt.NewGolangJWTSigner(&config.JWT{}, ""); err == nil {
		t.Error("jwt.NewGolangJWTSigner(empty key) = nil error, want: error")
	}
}
