package model

import (
	"fmt"
	"time"
)

// Role is the closed set of account types. Parsing happens once at the
// signup/authorization boundary so the rest of the code can switch on it
// exhaustively.
type Role string

const (
	RoleStudent   Role = "student"
	RoleProfessor Role = "professor"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleStudent:
		return RoleStudent, nil
	case RoleProfessor:
		return RoleProfessor, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Not exposed
	Role           Role      `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
}
