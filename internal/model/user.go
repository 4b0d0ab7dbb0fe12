// Package model defines the data structures shared by the service,
// repository and handler layers. Models carry JSON tags only; column mapping
// lives in the repository implementations.
package model

import "time"

// UserRole decides which parts of the app a user can reach.
type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleMentor  UserRole = "mentor"
	RoleAdmin   UserRole = "admin"
)

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleStudent, RoleMentor, RoleAdmin:
		return true
	}
	return false
}

// User represents a registered account.
//
// WHY `json:"-"` ON PasswordHash?
// The "-" tag tells encoding/json to skip the field entirely. Handlers can
// return a *User directly without ever leaking the bcrypt hash to the client.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
