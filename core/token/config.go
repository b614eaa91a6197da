package token

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"
)

// minSigningKeyBytes is the HS256 key floor.
const minSigningKeyBytes = 32

// Config holds the token issuing settings. Key material is base64 encoded.
type Config struct {
	// Issuer is written to and required in the iss claim.
	Issuer string `mapstructure:"issuer" default:"catalog-manager"`
	// Audience is written to and required in the aud claim.
	Audience string `mapstructure:"audience" default:"catalog-manager"`
	// SigningKeyB64 is the HMAC key for access tokens.
	SigningKeyB64 string `mapstructure:"signing_key_b64" default:""`
	// RefreshTokenPepperB64 is the HMAC key used to hash refresh tokens at rest.
	RefreshTokenPepperB64 string `mapstructure:"refresh_token_pepper_b64" default:""`
	// AccessTokenMinutes is the access token lifetime.
	AccessTokenMinutes int `mapstructure:"access_token_minutes" default:"10"`
	// RefreshTokenDays is the refresh token lifetime.
	RefreshTokenDays int `mapstructure:"refresh_token_days" default:"14"`
}

// Keys is the decoded key material.
type Keys struct {
	Signing []byte
	Pepper  []byte
}

// Keys decodes and checks the configured key material.
func (c Config) Keys() (Keys, error) {
	signing, err := decodeKey("signing_key_b64", c.SigningKeyB64)
	if err != nil {
		return Keys{}, err
	}
	if len(signing) < minSigningKeyBytes {
		return Keys{}, fmt.Errorf("auth: signing_key_b64 must decode to at least %d bytes", minSigningKeyBytes)
	}
	pepper, err := decodeKey("refresh_token_pepper_b64", c.RefreshTokenPepperB64)
	if err != nil {
		return Keys{}, err
	}
	return Keys{Signing: signing, Pepper: pepper}, nil
}

// AccessTTL returns the access token lifetime.
func (c Config) AccessTTL() time.Duration {
	return time.Duration(c.AccessTokenMinutes) * time.Minute
}

// RefreshTTL returns the refresh token lifetime.
func (c Config) RefreshTTL() time.Duration {
	return time.Duration(c.RefreshTokenDays) * 24 * time.Hour
}

func decodeKey(name, value string) ([]byte, error) {
	if value == "" {
		return nil, fmt.Errorf("auth: %s is not set", name)
	}
	b, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("auth: %s is not valid base64: %w", name, err)
	}
	if len(b) == 0 {
		return nil, errors.New("auth: " + name + " decodes to an empty key")
	}
	return b, nil
}
