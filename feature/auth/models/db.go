package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin    = "Admin"
	RoleCustomer = "Customer"
)

// User is an account that can sign in.
type User struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	FirstName    string    `gorm:"size:100;not null" json:"first_name"`
	LastName     string    `gorm:"size:100;not null" json:"last_name"`
	Email        string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"size:100;not null" json:"-"`
	Roles        []Role    `gorm:"many2many:user_roles" json:"roles,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// RoleNames returns the names of the loaded roles.
func (u User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

type Role struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:50;not null;uniqueIndex" json:"name"`
}

func (Role) TableName() string { return "roles" }

// RefreshToken is the stored half of a refresh token. Only the keyed hash of
// the raw value is kept.
type RefreshToken struct {
	ID        uuid.UUID  `gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID  `gorm:"type:char(36);not null;index"`
	TokenHash string     `gorm:"size:128;not null;uniqueIndex"`
	CreatedAt time.Time  `gorm:"not null"`
	ExpiresAt time.Time  `gorm:"not null"`
	RevokedAt *time.Time
}

func (RefreshToken) TableName() string { return "refresh_tokens" }

func (t *RefreshToken) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// IsExpired reports whether the token is past its expiry at now.
func (t RefreshToken) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// IsActive reports whether the token can still be exchanged at now.
func (t RefreshToken) IsActive(now time.Time) bool {
	return t.RevokedAt == nil && !t.IsExpired(now)
}

// All returns the auth models.
func All() []any {
	return []any{&Role{}, &User{}, &RefreshToken{}}
}
