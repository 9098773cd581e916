package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/ferdiebergado/hireloop/internal/config"
	"github.com/ferdiebergado/hireloop/internal/pkg/security"
	"github.com/golang-jwt/jwt/v5"
)

// CustomClaims represents JWT with custom claims.
type CustomClaims struct {
	jwt.RegisteredClaims
	TenantID string `json:"tid,omitempty"`
	Role     string `json:"role,omitempty"`
}

// GolangJWTSigner implements the Signer interface using the golang-jwt library.
type GolangJWTSigner struct {
	method jwt.SigningMethod
	key    []byte
	jtiLen uint32
	issuer string
	now    func() time.Time
}

var _ Signer = (*GolangJWTSigner)(nil)

// NewGolangJWTSigner creates a new HS256 signer with the provided JWT config and signing key.
func NewGolangJWTSigner(cfg *config.JWT, key string) (*GolangJWTSigner, error) {
	if key == "" {
		return nil, errors.New("jwt signing key is empty")
	}

	return &GolangJWTSigner{
		method: jwt.SigningMethodHS256,
		key:    []byte(key),
		jtiLen: cfg.JTILength,
		issuer: cfg.Issuer,
		now:    time.Now,
	}, nil
}

// Sign generates a signed token for claims, valid for ttl and only for audience.
func (s *GolangJWTSigner) Sign(claims Claims, audience string, ttl time.Duration) (string, error) {
	jti, err := security.GenerateRandomBytesURLEncoded(s.jtiLen)
	if err != nil {
		return "", fmt.Errorf("generate jti with length %d: %w", s.jtiLen, err)
	}

	now := s.now()
	customClaims := &CustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{audience},
			Subject:   claims.UserID,
			ID:        jti,
		},
		TenantID: claims.TenantID,
		Role:     claims.Role,
	}

	token := jwt.NewWithClaims(s.method, customClaims)
	signedToken, err := token.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signedToken, nil
}

// Verify parses and validates tokenString, requiring the given audience and this signer's issuer.
func (s *GolangJWTSigner) Verify(tokenString, audience string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(_ *jwt.Token) (any, error) {
		return s.key, nil
	},
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithAudience(audience),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("parse with claims: %w", err)
	}

	customClaims, ok := token.Claims.(*CustomClaims)
	if !ok {
		return nil, fmt.Errorf("unknown claims type: %T", token.Claims)
	}

	if customClaims.Subject == "" {
		return nil, errors.New("token has no subject")
	}

	return &Claims{
		UserID:   customClaims.Subject,
		TenantID: customClaims.TenantID,
		Role:     customClaims.Role,
	}, nil
}
