package domain

import "time"

// Session is an issued session token plus the identity it proves. The
// token itself is the sole credential; the server stores no session
// state.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	Role      Role      `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the session is past its expiry at the given
// instant.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
