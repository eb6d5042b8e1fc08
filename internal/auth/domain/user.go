package domain

import (
	"slices"
	"time"
)

// Role is an account role. A user may hold several, but each session is
// bound to exactly one active role.
type Role string

const (
	RoleAthlete Role = "athlete"
	RoleCoach   Role = "coach"
)

// ValidRole reports whether s names a known role.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleAthlete, RoleCoach:
		return true
	}
	return false
}

// User is an account record. PasswordHash never crosses the API
// boundary.
type User struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	Roles            []Role    `json:"roles"`
	ActiveRole       Role      `json:"role"`
	ProfileCompleted bool      `json:"profileCompleted"`
	PasswordHash     string    `json:"-"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// HasRole reports whether the account holds the given role.
func (u *User) HasRole(role Role) bool {
	return slices.Contains(u.Roles, role)
}
