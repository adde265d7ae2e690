package auth

import "errors"

var (
	// Token verification failures. Callers outside this package should only
	// ever see them wrapped in ErrUnauthenticated.
	ErrMalformedToken   = errors.New("token is malformed")
	ErrInvalidSignature = errors.New("token signature is invalid")
	ErrTokenExpired     = errors.New("token has expired")

	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("caller does not own this resource")

	ErrPasswordTooLong = errors.New("password exceeds 72 bytes")
	ErrEmptySecret     = errors.New("token signing secret must not be empty")
)
