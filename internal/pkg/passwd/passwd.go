// Package passwd hashes and verifies member and anonymous-author passwords.
package passwd

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const DefaultCost = 10

// MaxLength is the longest password bcrypt accepts, in bytes.
const MaxLength = 72

var ErrTooLong = fmt.Errorf("password must be at most %d bytes", MaxLength)

type Hasher struct {
	cost int
}

func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns a salted bcrypt digest. Two calls with the same input never
// return the same value, so stored hashes must not be compared directly.
func (h *Hasher) Hash(plain string) (string, error) {
	if len(plain) > MaxLength {
		return "", ErrTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrTooLong
		}
		return "", fmt.Errorf("hash password failed: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether plain matches hash. A mismatch is (false, nil); an
// error means the stored hash is malformed. A password longer than MaxLength
// can never have been hashed, so it is a mismatch.
func (h *Hasher) Verify(plain, hash string) (bool, error) {
	if len(plain) > MaxLength {
		return false, nil
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("verify password failed: %w", err)
	}
}
