package models

import "time"

// UserRole defines the type for user roles
type UserRole string

const (
	UserRoleMember  UserRole = "member"
	UserRoleTrainer UserRole = "trainer"
	UserRoleAdmin   UserRole = "admin"
)

// IsValidUserRole checks if the provided role string is a valid UserRole.
func IsValidUserRole(role string) bool {
	switch UserRole(role) {
	case UserRoleMember, UserRoleTrainer, UserRoleAdmin:
		return true
	default:
		return false
	}
}

// User represents a platform account. Email is the identity key used by every
// role check; role is the single authority for access control.
type User struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name" binding:"required"`
	Email     string    `json:"email" db:"email" binding:"required,email"`
	PhotoURL  *string   `json:"photoURL,omitempty" db:"photo_url"`
	Role      string    `json:"role" db:"role"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// UpdateProfileRequest carries the mutable profile fields.
type UpdateProfileRequest struct {
	Name     *string `json:"name"`
	PhotoURL *string `json:"photoURL"`
}
