package models

import (
	"time"
)

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleClient  UserRole = "CLIENT"
	RoleWaiter  UserRole = "WAITER"
	RoleKitchen UserRole = "KITCHEN"
)

// ValidRoles lists every accepted role token, for validation messages
func ValidRoles() []UserRole {
	return []UserRole{RoleAdmin, RoleClient, RoleWaiter, RoleKitchen}
}

// IsValidRole reports whether s is a recognized role token
func IsValidRole(s string) bool {
	switch UserRole(s) {
	case RoleAdmin, RoleClient, RoleWaiter, RoleKitchen:
		return true
	}
	return false
}

type User struct {
	ID           uint     `json:"id" gorm:"primaryKey"`
	Name         string   `json:"name" gorm:"not null"`
	LastName     string   `json:"last_name" gorm:"not null"`
	PhoneNumber  string   `json:"phone_number" gorm:"not null"`
	Email        string   `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string   `json:"-" gorm:"not null"`
	Role         UserRole `json:"role" gorm:"not null"`
	// Accounts start inactive until the verification email is confirmed
	IsActive  bool      `json:"is_active" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName renders the user as "First Last" for order serialization
func (u *User) FullName() string {
	return u.Name + " " + u.LastName
}
