package auth

import (
	"fmt"
	"strings"
)

const bearerScheme = "bearer"

// Resolver turns an Authorization header into a caller identity.
type Resolver struct {
	verifier TokenVerifier
}

// NewResolver creates a Resolver that delegates token checks to verifier.
func NewResolver(verifier TokenVerifier) *Resolver {
	return &Resolver{verifier: verifier}
}

// Resolve extracts the bearer token from header and verifies it.
//
// Every failure matches ErrUnauthenticated. When the token itself was
// rejected the error also matches the specific reason (ErrTokenExpired,
// ErrInvalidSignature, ErrMalformedToken) so it can be logged; that reason
// must not be echoed to the client.
func (r *Resolver) Resolve(header string) (Identity, error) {
	token, ok := BearerToken(header)
	if !ok {
		return Identity{}, ErrUnauthenticated
	}

	identity, err := r.verifier.Verify(token)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}
	return identity, nil
}

// BearerToken returns the token from an "Authorization: Bearer <token>"
// header value. The scheme is matched case-insensitively.
func BearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return "", false
	}

	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}
	return token, true
}
