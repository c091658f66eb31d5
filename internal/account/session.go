// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quillhub Contributors

package account

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/samber/oops"
)

// Session token configuration.
const (
	SessionTokenBytes  = 48                  // 48 bytes = 96 hex chars
	SessionTokenLength = 96                  //
	SessionValidity    = 30 * 24 * time.Hour // sliding 30-day window
)

// Session is a bearer-token session. Rows are never deleted: renewal
// extends ExpiresAt and expiration backdates it, preserving an audit trail.
type Session struct {
	ID        uuid.UUID
	Token     string
	UserID    uuid.UUID
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GenerateSessionToken creates 48 bytes of cryptographically strong
// randomness hex-encoded to a 96-character bearer token.
func GenerateSessionToken() (string, error) {
	b := make([]byte, SessionTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", oops.Code("SESSION_TOKEN_GENERATE_FAILED").
			With("operation", "crypto/rand.Read").
			With("requested_bytes", SessionTokenBytes).
			Wrap(err)
	}
	return hex.EncodeToString(b), nil
}

// SessionRepository manages session persistence.
type SessionRepository interface {
	// Create stores a new session.
	Create(ctx context.Context, session *Session) error

	// GetValidByToken retrieves a session matching the exact token whose
	// expiry is strictly in the future. A token that never existed and one
	// that has expired both yield NotFoundError.
	GetValidByToken(ctx context.Context, token string) (*Session, error)

	// Renew sets the session expiry to expiresAt without changing the
	// token and returns the updated row.
	Renew(ctx context.Context, id uuid.UUID, expiresAt time.Time) (*Session, error)

	// Expire backdates the session expiry by one year instead of deleting
	// the row, and returns the updated row.
	Expire(ctx context.Context, id uuid.UUID) (*Session, error)
}
