package authsdk

import "time"

// Role is an account role as served by the API.
type Role string

const (
	RoleAthlete Role = "athlete"
	RoleCoach   Role = "coach"
)

// User is the account shape served by the API.
type User struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	Roles            []Role    `json:"roles"`
	ActiveRole       Role      `json:"role"`
	ProfileCompleted bool      `json:"profileCompleted"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// HasRole reports whether the account holds the given role.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Session is an issued token plus the identity it proves.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	Role      Role      `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the session is past its expiry.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// LoginCredentials is the login request body.
type LoginCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupData is the signup request body.
type SignupData struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
}

// AuthResult is the login/signup success payload.
type AuthResult struct {
	User    *User    `json:"user"`
	Session *Session `json:"session"`
}

// OpportunityPage is one page of listings.
type OpportunityPage struct {
	Items      []Opportunity `json:"items"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"totalPages"`
}

// Opportunity is a posted listing.
type Opportunity struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Sport        string    `json:"sport"`
	Level        string    `json:"level"`
	Location     string    `json:"location"`
	Description  string    `json:"description"`
	Requirements []string  `json:"requirements"`
	PostedBy     string    `json:"postedBy"`
	PostedAt     time.Time `json:"postedAt"`
	Deadline     time.Time `json:"deadline"`
}
