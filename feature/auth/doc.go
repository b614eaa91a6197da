// Package auth implements accounts, sign in and refresh token rotation.
//
// Login issues a short lived HS256 access token and an opaque refresh token.
// Only an HMAC-SHA256 hash of the refresh token, keyed with a server side
// pepper, is stored. A refresh token is single use: exchanging it revokes it
// and issues a new pair in one transaction, with roles read fresh from the
// database. A guarded conditional update decides concurrent exchanges of the
// same token, so at most one succeeds. Every rejected exchange reports the
// same Token.RefreshToken.Invalid error.
//
// # HTTP Endpoints
//
//   - POST /api/v1/auth/register : create a Customer account
//   - POST /api/v1/auth/login    : email and password for a token pair
//   - POST /api/v1/auth/refresh  : rotate a refresh token
//   - POST /api/v1/auth/logout   : revoke a refresh token
package auth
