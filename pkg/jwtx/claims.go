package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is how long an issued session token stays valid.
const DefaultSessionTTL = 7 * 24 * time.Hour

// Claims is the session token payload. UserID and Role are the only
// application claims; everything else rides in RegisteredClaims.
type Claims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`

	jwt.RegisteredClaims
}

// NewClaims builds the claim set for a fresh session token.
func NewClaims(issuer, userID, role string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}
