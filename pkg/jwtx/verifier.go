package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier checks session tokens and extracts their claims.
type Verifier interface {
	// Verify parses and fully validates a token, including expiry.
	Verify(token string) (*Claims, error)

	// VerifyAllowExpired parses and validates a token but tolerates
	// expiry up to the given grace window past ExpiresAt. The signature
	// and issuer are always enforced. Used for session refresh, where
	// an expired-but-authentic token is acceptable proof of identity.
	VerifyAllowExpired(token string, grace time.Duration) (*Claims, error)
}

// HS256Verifier validates tokens signed with a shared HMAC-SHA256 secret.
type HS256Verifier struct {
	issuer string
	secret []byte
	now    func() time.Time
}

func NewHS256Verifier(issuer string, secret []byte) *HS256Verifier {
	return &HS256Verifier{
		issuer: issuer,
		secret: secret,
		now:    time.Now,
	}
}

func (v *HS256Verifier) Verify(token string) (*Claims, error) {
	claims, err := v.parse(token)
	if err != nil {
		return nil, err
	}
	if claims.ExpiresAt != nil && v.now().After(claims.ExpiresAt.Time) {
		return nil, ErrExpired
	}
	return claims, nil
}

func (v *HS256Verifier) VerifyAllowExpired(token string, grace time.Duration) (*Claims, error) {
	claims, err := v.parse(token)
	if err != nil {
		return nil, err
	}
	if claims.ExpiresAt != nil && v.now().After(claims.ExpiresAt.Time.Add(grace)) {
		return nil, ErrExpired
	}
	return claims, nil
}

// parse validates the signature and issuer but not expiry, so the two
// Verify variants can apply their own expiry policy.
func (v *HS256Verifier) parse(token string) (*Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(t *jwt.Token) (any, error) { return v.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenMalformed):
		return nil, ErrMalformed
	default:
		return nil, ErrMalformed
	}

	if claims.Issuer != v.issuer {
		return nil, ErrIssuer
	}
	return &claims, nil
}
