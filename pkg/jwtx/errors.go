package jwtx

import "errors"

var (
	// ErrExpired means the token signature was valid but the token has
	// passed its expiry time.
	ErrExpired = errors.New("jwtx: token expired")

	// ErrInvalidSig means the token signature did not verify.
	ErrInvalidSig = errors.New("jwtx: invalid signature")

	// ErrIssuer means the token was signed by us but carries the wrong
	// issuer claim.
	ErrIssuer = errors.New("jwtx: unexpected issuer")

	// ErrMalformed means the token could not be parsed at all.
	ErrMalformed = errors.New("jwtx: malformed token")
)
