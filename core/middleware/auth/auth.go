package auth

import (
	"strings"

	"catalog-manager/core/apperr"
	"catalog-manager/core/token"

	"github.com/gofiber/fiber/v2"
)

const claimsKey = "auth_claims"

var (
	ErrMissingToken = apperr.NewUnauthorized("Auth.Token.Missing", "A bearer access token is required.")
	ErrInvalidToken = apperr.NewUnauthorized("Auth.Token.Invalid", "The access token is invalid or expired.")
	ErrForbidden    = apperr.NewForbidden("Auth.Role.Forbidden", "You do not have permission to perform this action.")
)

// Verifier parses and validates a raw access token.
type Verifier interface {
	Parse(raw string) (*token.Claims, error)
}

// VerifierFunc adapts an ordinary function to Verifier.
type VerifierFunc func(raw string) (*token.Claims, error)

func (f VerifierFunc) Parse(raw string) (*token.Claims, error) {
	return f(raw)
}

// Config configures the bearer middleware.
type Config struct {
	Verifier Verifier
}

// New returns a middleware that rejects requests without a valid bearer token
// and stores the verified claims on the context.
func New(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, ok := bearer(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return apperr.Respond(c, ErrMissingToken)
		}
		claims, err := cfg.Verifier.Parse(raw)
		if err != nil {
			return apperr.Respond(c, ErrInvalidToken)
		}
		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// RequireRole allows the request through when the verified claims carry any of roles.
// It must run after New.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFrom(c)
		if !ok {
			return apperr.Respond(c, ErrMissingToken)
		}
		for _, r := range roles {
			if claims.HasRole(r) {
				return c.Next()
			}
		}
		return apperr.Respond(c, ErrForbidden)
	}
}

// ClaimsFrom returns the claims stored by New.
func ClaimsFrom(c *fiber.Ctx) (*token.Claims, bool) {
	claims, ok := c.Locals(claimsKey).(*token.Claims)
	return claims, ok
}

func bearer(header string) (string, bool) {
	scheme, raw, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	raw = strings.TrimSpace(raw)
	return raw, raw != ""
}
