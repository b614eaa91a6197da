package auth

import "catalog-manager/core/apperr"

var (
	ErrRefreshTokenInvalid = apperr.NewValidation("Token.RefreshToken.Invalid", "Invalid or expired refresh token.")
	ErrEmailExists         = apperr.NewConflict("Auth.Email.Exists", "An account with email '%s' already exists.")
	ErrInvalidCredentials  = apperr.NewUnauthorized("Auth.Credentials.Invalid", "Email or password is incorrect.")
)
