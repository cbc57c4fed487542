package models

import (
	"time"
)

// User represents a registered member
type User struct {
	ID        int64     `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Pseudo    string    `json:"pseudo" db:"pseudo"`
	Role      string    `json:"role" db:"role"`
	Bio       string    `json:"bio,omitempty" db:"bio"`
	Active    bool      `json:"active" db:"active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ValidRoles defines allowed user roles
var ValidRoles = map[string]bool{
	RoleUser:  true,
	RoleAdmin: true,
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
