package domain

import (
	"strings"
	"time"
)

// Role is the closed set of access levels a user can hold. It is fixed at
// registration and never self-escalatable afterwards.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// Privileged reports whether r may see all expenses and act on them.
func (r Role) Privileged() bool {
	return r == RoleManager || r == RoleAdmin
}

// CoerceRole maps an arbitrary requested role to a valid one. Anything
// outside the known set silently becomes employee.
func CoerceRole(s string) Role {
	if r := Role(s); r.Valid() {
		return r
	}
	return RoleEmployee
}

// DefaultDepartment is assigned when registration omits a department.
const DefaultDepartment = "General"

// User models an account in the system.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Department   string    `json:"department"`
	CreatedAt    time.Time `json:"created_at"`
}

// NormalizeEmail lowercases and trims an email so uniqueness is
// case-insensitive.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
