package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserRole enumerates supported staff roles.
type UserRole string

const (
	UserRoleAdmin       UserRole = "admin"
	UserRoleGiftOfficer UserRole = "gift_officer"
	UserRoleViewer      UserRole = "viewer"
)

// Valid reports whether the role is one of the known values.
func (r UserRole) Valid() bool {
	switch r {
	case UserRoleAdmin, UserRoleGiftOfficer, UserRoleViewer:
		return true
	}
	return false
}

// CanManageUsers reports whether the role may create, update, or
// deactivate user accounts and manage events.
func (r UserRole) CanManageUsers() bool {
	return r == UserRoleAdmin
}

// CanManageGiving reports whether the role may write donor, gift,
// pledge, and registration records. Viewers are read-only.
func (r UserRole) CanManageGiving() bool {
	return r == UserRoleAdmin || r == UserRoleGiftOfficer
}

// User represents a staff account within the platform.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	Role         UserRole
	IsActive     bool
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
