package token

import (
	"errors"
	"fmt"
	"time"

	"catalog-manager/core/clock"

	"github.com/golang-jwt/jwt/v5"
)

// Claims holds the typed access token payload.
type Claims struct {
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// HasRole reports whether the token grants role.
func (c *Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Signer issues and verifies HS256 access tokens.
type Signer struct {
	key      []byte
	issuer   string
	audience string
	clock    clock.Clock
}

func NewSigner(cfg Config, keys Keys, clk clock.Clock) *Signer {
	return &Signer{
		key:      keys.Signing,
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		clock:    clk,
	}
}

// Sign fills issuer and audience and signs the claims.
func (s *Signer) Sign(claims Claims) (string, error) {
	claims.Issuer = s.issuer
	claims.Audience = jwt.ClaimStrings{s.audience}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// Parse verifies signature, algorithm, issuer, audience and time claims.
func (s *Signer) Parse(raw string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// NumericDate converts t for use in registered claims.
func NumericDate(t time.Time) *jwt.NumericDate {
	return jwt.NewNumericDate(t)
}

// IsExpired reports whether err is the expiry failure from Parse.
func IsExpired(err error) bool {
	return errors.Is(err, jwt.ErrTokenExpired)
}
