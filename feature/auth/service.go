package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"catalog-manager/core/apperr"
	"catalog-manager/feature/auth/models"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RegisterRequest is the sign up payload.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Roles     []string  `json:"roles"`
}

// Service manages accounts and sign in.
type Service struct {
	db       *gorm.DB
	rotator  *Rotator
	logger   *zap.Logger
	validate *validator.Validate
}

func NewService(db *gorm.DB, rotator *Rotator, logger *zap.Logger) *Service {
	return &Service{db: db, rotator: rotator, logger: logger, validate: validator.New()}
}

// Register creates a customer account.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	return s.CreateUser(ctx, req, models.RoleCustomer)
}

// CreateUser creates an account holding roles. Missing roles are created.
func (s *Service) CreateUser(ctx context.Context, req RegisterRequest, roles ...string) (*UserResponse, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	if err := apperr.Validate(s.validate, "Auth", req); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: string(hash),
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.User{}).Where("email = ?", req.Email).Count(&n).Error; err != nil {
			return fmt.Errorf("failed to check email: %w", err)
		}
		if n > 0 {
			return ErrEmailExists.Withf(req.Email)
		}

		for _, name := range roles {
			role, err := ensureRole(tx, name)
			if err != nil {
				return err
			}
			user.Roles = append(user.Roles, *role)
		}
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("User created", zap.String("id", user.ID.String()), zap.Strings("roles", user.RoleNames()))
	return toUserResponse(user), nil
}

// Login checks the credentials and issues a token pair.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*TokenPair, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := apperr.Validate(s.validate, "Auth", req); err != nil {
		return nil, err
	}

	var user models.User
	err := s.db.WithContext(ctx).Preload("Roles").Where("email = ?", req.Email).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return s.rotator.GenerateToken(ctx, user, user.RoleNames())
}

// Refresh rotates a refresh token.
func (s *Service) Refresh(ctx context.Context, req RefreshRequest) (*TokenPair, error) {
	return s.rotator.Refresh(ctx, strings.TrimSpace(req.RefreshToken))
}

// Logout revokes a refresh token.
func (s *Service) Logout(ctx context.Context, req RefreshRequest) error {
	return s.rotator.Revoke(ctx, strings.TrimSpace(req.RefreshToken))
}

func ensureRole(tx *gorm.DB, name string) (*models.Role, error) {
	var role models.Role
	if err := tx.Where(models.Role{Name: name}).FirstOrCreate(&role).Error; err != nil {
		return nil, fmt.Errorf("failed to load role %s: %w", name, err)
	}
	return &role, nil
}

func toUserResponse(u models.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Roles:     u.RoleNames(),
	}
}
