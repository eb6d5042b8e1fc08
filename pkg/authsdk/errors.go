package authsdk

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// Sentinel errors for the failure modes callers branch on. APIError
// wraps the matching sentinel, so errors.Is works on responses.
var (
	ErrInvalidCredentials = errors.New("authsdk: invalid credentials")
	ErrEmailTaken         = errors.New("authsdk: email already registered")
	ErrTokenRequired      = errors.New("authsdk: access token required")
	ErrTokenInvalid       = errors.New("authsdk: invalid or expired token")
	ErrForbidden          = errors.New("authsdk: forbidden")
	ErrNotFound           = errors.New("authsdk: not found")
	ErrValidation         = errors.New("authsdk: validation failed")
	ErrRateLimited        = errors.New("authsdk: rate limited")
	ErrServer             = errors.New("authsdk: server error")
)

// IsTimeout reports whether err is a client-side timeout: the request
// never completed, so the server may or may not have acted on it.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// IsNetwork reports whether err is a transport failure rather than an
// API response. Every *APIError came from the server; everything else
// returned by a Client method wraps a transport or decoding problem.
func IsNetwork(err error) bool {
	var apiErr *APIError
	return err != nil && !errors.As(err, &apiErr)
}

// APIError is a non-2xx API response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("authsdk: api error %d: %s", e.Status, e.Message)
}

// Is maps status codes onto the sentinel errors. 401 is ambiguous on
// the wire, so the message disambiguates credentials from tokens.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrValidation:
		return e.Status == http.StatusBadRequest
	case ErrInvalidCredentials:
		return e.Status == http.StatusUnauthorized && e.Message == "Invalid email or password"
	case ErrTokenRequired:
		return e.Status == http.StatusUnauthorized && e.Message == "Access token required"
	case ErrTokenInvalid:
		return e.Status == http.StatusForbidden && e.Message == "Invalid or expired token"
	case ErrForbidden:
		return e.Status == http.StatusForbidden
	case ErrNotFound:
		return e.Status == http.StatusNotFound ||
			(e.Status == http.StatusUnauthorized && e.Message == "User not found")
	case ErrEmailTaken:
		return e.Status == http.StatusConflict
	case ErrRateLimited:
		return e.Status == http.StatusTooManyRequests
	case ErrServer:
		return e.Status >= http.StatusInternalServerError
	}
	return false
}
