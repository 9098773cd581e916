package jwt

import (
	"time"
)

// Audiences separate tokens by purpose so that, for example, an email verification
// token cannot be used as an access token.
const (
	AudienceAccess  = "access"
	AudienceRefresh = "refresh"
	AudienceVerify  = "verify"
	AudienceReset   = "reset"
)

// Claims represents the JWT claims that are processed for authentication.
type Claims struct {
	UserID   string
	TenantID string
	Role     string
}

// Signer defines methods for signing and verifying JWT tokens.
type Signer interface {
	Sign(claims Claims, audience string, ttl time.Duration) (token string, err error)
	Verify(tokenString, audience string) (*Claims, error)
}
