package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Login failures are deliberately distinct so the handler can return the
// three separate 401 messages the front end shows.
var (
	ErrNotFound        = errors.New("account not found")
	ErrAccountInactive = errors.New("account inactive")
	ErrInvalidPassword = errors.New("invalid password")
)

// Role determines what surface a user sees. Client-scoped roles carry a
// back-reference to their client.
type Role string

const (
	RoleSuperAdmin  Role = "Super Admin"
	RoleTeam        Role = "Team"
	RoleClientAdmin Role = "Client Admin"
	RoleClientTeam  Role = "Client Team"
)

// IsClientScoped reports whether the role is restricted to one client.
func (r Role) IsClientScoped() bool {
	return r == RoleClientAdmin || r == RoleClientTeam
}

type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	ClientID     *uuid.UUID
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}
