package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrHashingFailure is returned when the hashing primitive itself fails
// (malformed stored hash, oversized input), as opposed to a plain mismatch.
var ErrHashingFailure = errors.New("auth: hashing failure")

// Hasher provides one-way password hashing and verification.
type Hasher interface {
	Hash(password string) (string, error)
	// Verify reports whether password matches hash. A false with a nil
	// error is a mismatch; a non-nil error wraps ErrHashingFailure.
	Verify(password, hash string) (bool, error)
}

// BcryptHasher implements Hasher with bcrypt. Each call salts
// independently, so hashing the same input twice yields different outputs.
// The mismatch comparison is constant-time inside bcrypt.
type BcryptHasher struct {
	Cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost == 0 {
		cost = 12
	}
	return &BcryptHasher{Cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHashingFailure, err)
	}
	return string(bytes), nil
}

func (h *BcryptHasher) Verify(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", ErrHashingFailure, err)
	}
}
