package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID  `json:"id" db:"user_id"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	FullName     string     `json:"full_name" db:"full_name"`
	Role         string     `json:"role" db:"role"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt    *time.Time `json:"-" db:"deleted_at"`
}

type CreateUserInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required,min=2"`
	Role     string `json:"role" validate:"omitempty,oneof=admin bid_creator bid_reviewer bid_viewer client"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AssignRoleInput struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
	Role   string    `json:"role" validate:"required,oneof=admin bid_creator bid_reviewer bid_viewer client"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleCreator  UserRole = "bid_creator"
	RoleReviewer UserRole = "bid_reviewer"
	RoleViewer   UserRole = "bid_viewer"
	RoleClient   UserRole = "client"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleCreator, RoleReviewer, RoleViewer, RoleClient:
		return true
	default:
		return false
	}
}

// HasRole reports whether the user satisfies the required role. Admin
// satisfies every requirement; the remaining roles are flat, not hierarchical.
func (u *User) HasRole(required UserRole) bool {
	if u.Role == string(RoleAdmin) {
		return true
	}
	return u.Role == string(required)
}

func (u *User) HasAnyRole(roles ...UserRole) bool {
	for _, r := range roles {
		if u.HasRole(r) {
			return true
		}
	}
	return false
}

func (u *User) IsAdmin() bool {
	return u.Role == string(RoleAdmin)
}
