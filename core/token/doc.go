// Package token signs and verifies access tokens.
//
// Access tokens are HS256 JWTs carrying the user id as subject, the display
// name, email and roles. Parse only accepts HS256 and checks issuer, audience
// and expiry against the injected clock.
//
// Refresh tokens are not JWTs; their lifecycle lives in feature/auth.
package token
