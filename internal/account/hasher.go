// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quillhub Contributors

package account

import (
	"errors"

	"github.com/samber/oops"
	"golang.org/x/crypto/bcrypt"

	"github.com/quillhub/quillhub/internal/apperr"
)

// EncodedHashLength is the fixed length of a bcrypt-encoded hash. The
// encoding is self-describing: algorithm, work factor, and salt are all
// embedded, so no separate salt storage exists.
const EncodedHashLength = 60

// PasswordHasher provides one-way salted hashing and comparison.
type PasswordHasher interface {
	// Hash produces a self-describing encoded hash of the password.
	Hash(password string) (string, error)

	// Compare recomputes with the parameters embedded in encoded and
	// reports equality. Returns (false, nil) on a plain mismatch and an
	// error only for malformed input.
	Compare(password, encoded string) (bool, error)
}

// BcryptHasher implements PasswordHasher with a configurable work factor.
// Deployed environments use a deliberately slow cost; development and test
// use the bcrypt minimum so suites stay responsive.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a hasher with the given cost, clamped to the
// range bcrypt accepts.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash produces a bcrypt hash of the password.
func (h *BcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", apperr.Validation("password cannot be empty", "Provide a password.")
	}

	encoded, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", oops.Code("HASH_FAILED").
			With("operation", "bcrypt generate").
			Wrap(err)
	}
	return string(encoded), nil
}

// Compare checks the password against the encoded hash.
func (h *BcryptHasher) Compare(password, encoded string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, oops.Code("HASH_COMPARE_FAILED").
		With("operation", "bcrypt compare").
		Wrap(err)
}

// Compile-time interface check.
var _ PasswordHasher = (*BcryptHasher)(nil)
