package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the caller identity carried by an access token.
type Identity struct {
	UserID uint64
	Email  string
}

// Claims is the JWT payload. The subject holds the decimal user id.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenIssuer mints access tokens.
type TokenIssuer interface {
	Issue(identity Identity) (string, error)
}

// TokenVerifier checks access tokens and returns the identity they carry.
type TokenVerifier interface {
	Verify(token string) (Identity, error)
}

// TokenService issues and verifies HS256 access tokens. It holds no mutable
// state after construction and is safe for concurrent use.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	leeway time.Duration
	now    func() time.Time
}

// TokenOption customizes a TokenService.
type TokenOption func(*TokenService)

// WithClock overrides the wall clock used for iat/exp.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) {
		s.now = now
	}
}

// WithLeeway allows for clock skew when checking exp.
func WithLeeway(leeway time.Duration) TokenOption {
	return func(s *TokenService) {
		s.leeway = leeway
	}
}

// NewTokenService creates a TokenService signing with secret. Tokens issued by
// Issue expire after ttl.
func NewTokenService(secret string, ttl time.Duration, opts ...TokenOption) (*TokenService, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s", ttl)
	}

	s := &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// TTL returns the lifetime of tokens produced by Issue.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for identity using the configured ttl.
func (s *TokenService) Issue(identity Identity) (string, error) {
	return s.IssueWithTTL(identity, s.ttl)
}

// IssueWithTTL signs a token for identity that expires after ttl.
func (s *TokenService) IssueWithTTL(identity Identity, ttl time.Duration) (string, error) {
	now := s.now().UTC()

	claims := Claims{
		Email: identity.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(identity.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of token and returns its identity.
// The returned error is one of ErrMalformedToken, ErrInvalidSignature or
// ErrTokenExpired.
//
// A token is rejected from the instant exp is reached (now >= exp), one
// second earlier than a strict now > exp reading; the leeway extends that
// window.
func (s *TokenService) Verify(token string) (Identity, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(s.leeway),
		jwt.WithTimeFunc(s.now),
	)

	claims := &Claims{}
	_, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		return Identity{}, classifyTokenError(err)
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || userID == 0 {
		return Identity{}, ErrMalformedToken
	}

	return Identity{UserID: userID, Email: claims.Email}, nil
}

func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return ErrMalformedToken
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	default:
		return ErrMalformedToken
	}
}
