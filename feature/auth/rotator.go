package auth

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"catalog-manager/core/clock"
	"catalog-manager/core/metrics"
	"catalog-manager/core/token"
	"catalog-manager/feature/auth/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const refreshTokenBytes = 64

// TokenPair is an access token with the refresh token that renews it.
type TokenPair struct {
	AccessToken      string    `json:"access_token"`
	RefreshToken     string    `json:"refresh_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

// Rotator issues token pairs and rotates refresh tokens. Every refresh token
// can be exchanged once; the exchange revokes it and issues a new pair in
// the same transaction.
type Rotator struct {
	db         *gorm.DB
	signer     *token.Signer
	pepper     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	clock      clock.Clock
	logger     *zap.Logger
}

func NewRotator(db *gorm.DB, signer *token.Signer, pepper []byte, cfg token.Config, clk clock.Clock, logger *zap.Logger) *Rotator {
	return &Rotator{
		db:         db,
		signer:     signer,
		pepper:     pepper,
		accessTTL:  cfg.AccessTTL(),
		refreshTTL: cfg.RefreshTTL(),
		clock:      clk,
		logger:     logger,
	}
}

// GenerateToken issues a fresh pair for user carrying roles.
func (r *Rotator) GenerateToken(ctx context.Context, user models.User, roles []string) (*TokenPair, error) {
	return r.issue(r.db.WithContext(ctx), user, roles, r.clock.Now())
}

// Refresh exchanges a raw refresh token for a new pair. Any failure, whether
// the token is unknown, revoked, expired or lost a concurrent exchange, is
// reported as ErrRefreshTokenInvalid.
func (r *Rotator) Refresh(ctx context.Context, raw string) (*TokenPair, error) {
	now := r.clock.Now()

	var pair *TokenPair
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if raw == "" {
			return ErrRefreshTokenInvalid
		}

		var rec models.RefreshToken
		err := tx.Where("token_hash = ?", r.hash(raw)).Take(&rec).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRefreshTokenInvalid
		}
		if err != nil {
			return fmt.Errorf("failed to load refresh token: %w", err)
		}
		if !rec.IsActive(now) {
			return ErrRefreshTokenInvalid
		}

		// The revoked_at guard makes the exchange single use even when two
		// requests read the token as active.
		res := tx.Model(&models.RefreshToken{}).
			Where("id = ? AND revoked_at IS NULL", rec.ID).
			Update("revoked_at", now)
		if res.Error != nil {
			return fmt.Errorf("failed to revoke refresh token: %w", res.Error)
		}
		if res.RowsAffected != 1 {
			return ErrRefreshTokenInvalid
		}

		var user models.User
		err = tx.Preload("Roles").Where("id = ?", rec.UserID).Take(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRefreshTokenInvalid
		}
		if err != nil {
			return fmt.Errorf("failed to load token owner: %w", err)
		}

		pair, err = r.issue(tx, user, user.RoleNames(), now)
		return err
	})
	if err != nil {
		metrics.TokenRefreshes.WithLabelValues("rejected").Inc()
		if !errors.Is(err, ErrRefreshTokenInvalid) {
			r.logger.Error("Refresh token rotation failed", zap.Error(err))
		}
		return nil, ErrRefreshTokenInvalid
	}

	metrics.TokenRefreshes.WithLabelValues("success").Inc()
	return pair, nil
}

// Revoke marks a refresh token as used. Unknown or already inactive tokens
// are ignored.
func (r *Rotator) Revoke(ctx context.Context, raw string) error {
	if raw == "" {
		return nil
	}
	err := r.db.WithContext(ctx).
		Model(&models.RefreshToken{}).
		Where("token_hash = ? AND revoked_at IS NULL", r.hash(raw)).
		Update("revoked_at", r.clock.Now()).Error
	if err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

// ParseAccessToken verifies an access token and returns its claims.
func (r *Rotator) ParseAccessToken(raw string) (*token.Claims, error) {
	return r.signer.Parse(raw)
}

func (r *Rotator) issue(db *gorm.DB, user models.User, roles []string, now time.Time) (*TokenPair, error) {
	accessExp := now.Add(r.accessTTL)
	refreshExp := now.Add(r.refreshTTL)

	access, err := r.signer.Sign(token.Claims{
		Name:  strings.TrimSpace(user.FirstName + " " + user.LastName),
		Email: user.Email,
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  token.NumericDate(now),
			NotBefore: token.NumericDate(now),
			ExpiresAt: token.NumericDate(accessExp),
		},
	})
	if err != nil {
		return nil, err
	}

	raw, err := newRawToken()
	if err != nil {
		return nil, err
	}
	rec := models.RefreshToken{
		UserID:    user.ID,
		TokenHash: r.hash(raw),
		CreatedAt: now,
		ExpiresAt: refreshExp,
	}
	if err := db.Create(&rec).Error; err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:      access,
		RefreshToken:     raw,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// hash is the at-rest form of a raw refresh token.
func (r *Rotator) hash(raw string) string {
	mac := hmac.New(sha256.New, r.pepper)
	mac.Write([]byte(raw))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func newRawToken() (string, error) {
	b := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
