package jwtx

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Signer mints signed session tokens.
type Signer interface {
	// Sign issues a token for the given user and role, valid for ttl.
	Sign(userID, role string, ttl time.Duration) (token string, expiresAt time.Time, err error)
}

// HS256Signer signs tokens with a shared HMAC-SHA256 secret.
type HS256Signer struct {
	issuer string
	secret []byte
	now    func() time.Time
}

// NewHS256Signer creates a signer. The secret must be kept private; any
// holder of it can mint valid sessions.
func NewHS256Signer(issuer string, secret []byte) *HS256Signer {
	return &HS256Signer{
		issuer: issuer,
		secret: secret,
		now:    time.Now,
	}
}

func (s *HS256Signer) Sign(userID, role string, ttl time.Duration) (string, time.Time, error) {
	now := s.now().UTC()
	claims := NewClaims(s.issuer, userID, role, ttl, now)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("jwtx: sign: %w", err)
	}
	return token, claims.ExpiresAt.Time, nil
}
