// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quillhub Contributors

package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/samber/oops"

	"github.com/quillhub/quillhub/internal/account"
	"github.com/quillhub/quillhub/internal/apperr"
	"github.com/quillhub/quillhub/internal/store"
)

// sessionNotFound is the uniform zero-rows failure for session lookups.
func sessionNotFound() error {
	return apperr.NotFound("session not found", "Log in again to continue.")
}

// SessionRepository implements account.SessionRepository using PostgreSQL.
type SessionRepository struct {
	db store.Querier
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(db store.Querier) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create stores a new session.
func (r *SessionRepository) Create(ctx context.Context, session *account.Session) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO sessions (id, token, user_id, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		session.ID.String(),
		session.Token,
		session.UserID.String(),
		session.ExpiresAt,
		session.CreatedAt,
		session.UpdatedAt,
	)
	if err != nil {
		return serviceErr(err, "SESSION_CREATE_FAILED", "insert session")
	}
	return nil
}

// GetValidByToken retrieves a session by exact token with an expiry
// strictly in the future. Unknown and expired tokens are the same miss.
func (r *SessionRepository) GetValidByToken(ctx context.Context, token string) (*account.Session, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, token, user_id, expires_at, created_at, updated_at
		FROM sessions
		WHERE token = $1 AND expires_at > now()
	`, token)

	session, err := scanSession(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sessionNotFound()
	}
	if err != nil {
		return nil, serviceErr(err, "SESSION_GET_BY_TOKEN_FAILED", "get session by token")
	}
	return session, nil
}

// Renew sets the expiry without touching the token and returns the updated
// row.
func (r *SessionRepository) Renew(ctx context.Context, id uuid.UUID, expiresAt time.Time) (*account.Session, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE sessions SET expires_at = $2, updated_at = $3
		WHERE id = $1
		RETURNING id, token, user_id, expires_at, created_at, updated_at
	`, id.String(), expiresAt, time.Now())

	session, err := scanSession(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sessionNotFound()
	}
	if err != nil {
		return nil, serviceErr(err, "SESSION_RENEW_FAILED", "renew session")
	}
	return session, nil
}

// Expire backdates the expiry by one year instead of deleting, keeping the
// row for audit.
func (r *SessionRepository) Expire(ctx context.Context, id uuid.UUID) (*account.Session, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE sessions SET expires_at = expires_at - interval '1 year', updated_at = $2
		WHERE id = $1
		RETURNING id, token, user_id, expires_at, created_at, updated_at
	`, id.String(), time.Now())

	session, err := scanSession(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sessionNotFound()
	}
	if err != nil {
		return nil, serviceErr(err, "SESSION_EXPIRE_FAILED", "expire session")
	}
	return session, nil
}

// scanSession scans a single row into a Session.
// Callers are responsible for handling pgx.ErrNoRows.
func scanSession(row pgx.Row) (*account.Session, error) {
	var (
		idStr     string
		userIDStr string
		s         account.Session
	)

	err := row.Scan(&idStr, &s.Token, &userIDStr, &s.ExpiresAt, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		// Propagate pgx.ErrNoRows unchanged for callers to classify.
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // callers map to NotFound
		}
		return nil, oops.Code("SESSION_SCAN_FAILED").
			With("operation", "scan session").
			Wrap(err)
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("SESSION_INVALID_ID").
			With("operation", "parse session id").
			With("id", idStr).
			Wrap(err)
	}
	s.ID = id

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, oops.Code("SESSION_INVALID_USER_ID").
			With("operation", "parse session user id").
			With("user_id", userIDStr).
			Wrap(err)
	}
	s.UserID = userID

	return &s, nil
}

// Compile-time interface check.
var _ account.SessionRepository = (*SessionRepository)(nil)
