package domain

import (
	"fmt"
	"time"
)

// Role is the closed set of staff roles. Policy checks switch on it
// exhaustively, so adding a role forces every policy site to be revisited.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleDoctor       Role = "doctor"
	RoleReceptionist Role = "receptionist"
)

// ParseRole converts a stored role string into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleDoctor, RoleReceptionist:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RoleReceptionist:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// User is a staff account in the local user table.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// Identity is the session-scoped result of authentication. It is produced
// once at login and carried by the caller for the lifetime of the
// interaction; it is never persisted outside the user table.
type Identity struct {
	UserID   int64
	Username string
	Role     Role
}
