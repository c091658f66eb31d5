// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quillhub Contributors

package account

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/quillhub/quillhub/internal/apperr"
)

// Field constraints.
const (
	MinUsernameLength = 3
	MaxUsernameLength = 30
	MaxEmailLength    = 254
	MinPasswordLength = 8
)

// usernameRegex matches usernames that start with a letter and contain only
// letters, numbers, and underscores.
var usernameRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

// User is a registered account. Username and email are unique under
// case-insensitive comparison at all times.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateUserParams is the signup payload.
type CreateUserParams struct {
	Username string
	Email    string
	Password string
}

// UpdateUserParams is the partial-update payload. Nil fields are left
// untouched and unvalidated; the payload is restricted to exactly these
// three fields.
type UpdateUserParams struct {
	Username *string
	Email    *string
	Password *string
}

// ValidateUsername checks length and charset.
func ValidateUsername(username string) error {
	if username == "" {
		return apperr.Validation("username cannot be empty", "Provide a username.")
	}
	if len(username) < MinUsernameLength {
		return apperr.Validation("username is too short", "Use at least 3 characters.")
	}
	if len(username) > MaxUsernameLength {
		return apperr.Validation("username is too long", "Use at most 30 characters.")
	}
	if !usernameRegex.MatchString(username) {
		return apperr.Validation(
			"username contains invalid characters",
			"Start with a letter and use only letters, numbers, and underscores.",
		)
	}
	return nil
}

// ValidateEmail checks length and basic shape. Deliverability is the mail
// boundary's problem, not ours.
func ValidateEmail(email string) error {
	if email == "" {
		return apperr.Validation("email cannot be empty", "Provide an email address.")
	}
	if len(email) > MaxEmailLength {
		return apperr.Validation("email is too long", "Use at most 254 characters.")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return apperr.Validation("email is not valid", "Provide a valid email address.")
	}
	return nil
}

// ValidatePassword checks the plaintext before hashing.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return apperr.Validation("password is too short", "Use at least 8 characters.")
	}
	return nil
}

// UserRepository manages user persistence. Lookups are case-insensitive
// exact matches; zero rows is a NotFoundError. Create and Update must remap
// a storage-level uniqueness violation to a ValidationError — it is the
// backstop behind the directory's non-atomic pre-checks.
type UserRepository interface {
	Create(ctx context.Context, user *User) error

	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	GetByUsername(ctx context.Context, username string) (*User, error)

	GetByEmail(ctx context.Context, email string) (*User, error)

	Update(ctx context.Context, user *User) error
}
