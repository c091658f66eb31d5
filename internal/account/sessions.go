// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quillhub Contributors

package account

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/quillhub/quillhub/internal/apperr"
)

// Uniform rejection for token validation. A token that never existed and a
// token that has expired are deliberately indistinguishable to the caller.
const (
	sessionInvalidMessage = "Invalid or expired session."
	sessionInvalidAction  = "Log in again to continue."
)

// Sessions manages the bearer-token session lifecycle.
type Sessions struct {
	sessions SessionRepository
	logger   *slog.Logger
}

// NewSessions creates a Sessions manager.
func NewSessions(sessions SessionRepository, logger *slog.Logger) *Sessions {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sessions{sessions: sessions, logger: logger}
}

// Create issues a new session for the user with a fresh 96-character token
// and a 30-day validity window.
func (s *Sessions) Create(ctx context.Context, userID uuid.UUID) (*Session, error) {
	token, err := GenerateSessionToken()
	if err != nil {
		return nil, apperr.Service(err)
	}

	now := time.Now()
	session := &Session{
		ID:        uuid.New(),
		Token:     token,
		UserID:    userID,
		ExpiresAt: now.Add(SessionValidity),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "session created",
		"session_id", session.ID.String(),
		"user_id", userID.String())
	return session, nil
}

// FindValidByToken returns the session matching token with an expiry
// strictly in the future. Every miss is the same UnauthorizedError,
// preventing history leakage.
func (s *Sessions) FindValidByToken(ctx context.Context, token string) (*Session, error) {
	session, err := s.sessions.GetValidByToken(ctx, token)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return nil, apperr.Unauthorized(sessionInvalidMessage, sessionInvalidAction)
		}
		return nil, err
	}
	return session, nil
}

// Renew extends the session expiry to now plus the validity window without
// changing the token. Called on every authenticated access, it implements a
// sliding-window session.
func (s *Sessions) Renew(ctx context.Context, id uuid.UUID) (*Session, error) {
	return s.sessions.Renew(ctx, id, time.Now().Add(SessionValidity))
}

// ExpireByID backdates the session expiry by one year. The row stays for
// audit; FindValidByToken simply stops matching it, and there is no
// transition back to valid.
func (s *Sessions) ExpireByID(ctx context.Context, id uuid.UUID) (*Session, error) {
	session, err := s.sessions.Expire(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "session expired",
		"session_id", id.String())
	return session, nil
}
