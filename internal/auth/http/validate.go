package http

import (
	"net/mail"
	"strings"
	"unicode"

	"github.com/athleteone/athleteone/internal/auth/domain"
)

// fieldErrors collects per-field validation messages, keyed by the JSON
// field name.
type fieldErrors map[string]string

func (fe fieldErrors) ok() bool { return len(fe) == 0 }

// message flattens the field errors into a single client-facing string,
// fields in a stable order.
func (fe fieldErrors) message() string {
	order := []string{"email", "password", "name", "role"}
	var parts []string
	for _, f := range order {
		if msg, found := fe[f]; found {
			parts = append(parts, msg)
		}
	}
	return strings.Join(parts, "; ")
}

func validateEmail(fe fieldErrors, email string) {
	if email == "" {
		fe["email"] = "Email is required"
		return
	}
	if _, err := mail.ParseAddress(email); err != nil {
		fe["email"] = "Please enter a valid email address"
	}
}

// validateLoginPassword only checks presence. Strength rules apply to
// new passwords, not to existing ones.
func validateLoginPassword(fe fieldErrors, password string) {
	if password == "" {
		fe["password"] = "Password is required"
	}
}

func validateNewPassword(fe fieldErrors, password string) {
	if password == "" {
		fe["password"] = "Password is required"
		return
	}
	if len(password) < 8 {
		fe["password"] = "Password must be at least 8 characters long"
		return
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit || !hasSpecial {
		fe["password"] = "Password must contain uppercase, lowercase, number and special character"
	}
}

func validateName(fe fieldErrors, name string) {
	trimmed := strings.TrimSpace(name)
	switch {
	case trimmed == "":
		fe["name"] = "Name is required"
	case len(trimmed) < 2:
		fe["name"] = "Name must be at least 2 characters long"
	case len(trimmed) > 100:
		fe["name"] = "Name must be less than 100 characters"
	}
}

func validateRole(fe fieldErrors, role string) {
	if role == "" {
		fe["role"] = "Role is required"
		return
	}
	if !domain.ValidRole(role) {
		fe["role"] = "Role must be either athlete or coach"
	}
}
