// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quillhub Contributors

package account

import (
	"context"
	"log/slog"

	"github.com/quillhub/quillhub/internal/apperr"
)

// Both authentication failure paths produce this exact message and action,
// so an external observer cannot distinguish "no such email" from "wrong
// password".
const (
	authFailedMessage = "Invalid email or password."
	authFailedAction  = "Check your credentials and try again."
)

// dummyPasswordHash is compared against when no user matches the email, so
// the miss costs the same as a mismatch. It is not a credential; the
// comparison result is discarded.
//
//nolint:gosec // G101: intentionally fake hash for timing uniformity, not a credential.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Authenticator composes the user directory and credential hasher into a
// login operation.
type Authenticator struct {
	users  UserRepository
	hasher PasswordHasher
	logger *slog.Logger
}

// NewAuthenticator creates an Authenticator.
func NewAuthenticator(users UserRepository, hasher PasswordHasher, logger *slog.Logger) *Authenticator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Authenticator{users: users, hasher: hasher, logger: logger}
}

// Authenticate looks up the user by email and compares the password
// against the stored hash. Unknown email and wrong password are externally
// identical UnauthorizedErrors; any non-authentication failure (storage
// unavailable, malformed hash) propagates unchanged.
func (a *Authenticator) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			_, _ = a.hasher.Compare(password, dummyPasswordHash) //nolint:errcheck // result discarded
			return nil, apperr.Unauthorized(authFailedMessage, authFailedAction)
		}
		return nil, err
	}

	match, err := a.hasher.Compare(password, user.PasswordHash)
	if err != nil {
		if _, ok := apperr.As(err); ok {
			return nil, err
		}
		return nil, apperr.Service(err)
	}
	if !match {
		return nil, apperr.Unauthorized(authFailedMessage, authFailedAction)
	}

	return user, nil
}
