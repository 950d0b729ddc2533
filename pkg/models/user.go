package models

import (
	"fmt"
	"time"
)

// Role is the closed set of user roles. The only capability that hangs
// off it is whether privileged report columns are visible.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleReviewer Role = "reviewer"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleEmployee, RoleManager, RoleReviewer:
		return Role(s), nil
	}
	return "", fmt.Errorf("invalid role %q", s)
}

// SeesAnnotations reports whether the role may see manager notes, broad
// areas of work and reviewer notes. Unknown roles fail closed.
func (r Role) SeesAnnotations() bool {
	return r == RoleManager || r == RoleReviewer
}

type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

type User struct {
	ID       int64      `json:"id"`
	UserID   string     `json:"user_id"`
	Email    string     `json:"email"`
	Password string     `json:"-"`
	Role     Role       `json:"role"`
	Status   UserStatus `json:"status"`
}

// Invitation is a pending registration offer. The code is a UUID handed
// out by mail and consumed exactly once.
type Invitation struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	UserID    string    `json:"user_id"`
	Role      Role      `json:"role"`
	Code      string    `json:"invitation_code"`
	CreatedAt time.Time `json:"created_at"`
}
