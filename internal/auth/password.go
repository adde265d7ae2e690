package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/constants"
)

// PasswordHasher hashes and verifies user passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, stored string) bool
}

// BcryptHasher is a PasswordHasher backed by bcrypt. The salt is generated
// per hash and stored inside the encoded value.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a hasher with the given cost. Out-of-range costs fall
// back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash returns the bcrypt encoding of password.
func (h *BcryptHasher) Hash(password string) (string, error) {
	if len(password) > constants.MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether password matches the stored bcrypt hash. Malformed
// hashes never match.
func (h *BcryptHasher) Verify(password, stored string) bool {
	if stored == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}
