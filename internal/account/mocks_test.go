// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quillhub Contributors

package account_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/quillhub/quillhub/internal/account"
	"github.com/quillhub/quillhub/internal/apperr"
)

// mockUserRepo is a function-field fake for account.UserRepository.
// Unset fields panic, making unexpected calls loud.
type mockUserRepo struct {
	createFn        func(ctx context.Context, user *account.User) error
	getByIDFn       func(ctx context.Context, id uuid.UUID) (*account.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*account.User, error)
	getByEmailFn    func(ctx context.Context, email string) (*account.User, error)
	updateFn        func(ctx context.Context, user *account.User) error
}

func (m *mockUserRepo) Create(ctx context.Context, user *account.User) error {
	return m.createFn(ctx, user)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*account.User, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*account.User, error) {
	return m.getByUsernameFn(ctx, username)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*account.User, error) {
	return m.getByEmailFn(ctx, email)
}

func (m *mockUserRepo) Update(ctx context.Context, user *account.User) error {
	return m.updateFn(ctx, user)
}

// mockSessionRepo is a function-field fake for account.SessionRepository.
type mockSessionRepo struct {
	createFn          func(ctx context.Context, session *account.Session) error
	getValidByTokenFn func(ctx context.Context, token string) (*account.Session, error)
	renewFn           func(ctx context.Context, id uuid.UUID, expiresAt time.Time) (*account.Session, error)
	expireFn          func(ctx context.Context, id uuid.UUID) (*account.Session, error)
}

func (m *mockSessionRepo) Create(ctx context.Context, session *account.Session) error {
	return m.createFn(ctx, session)
}

func (m *mockSessionRepo) GetValidByToken(ctx context.Context, token string) (*account.Session, error) {
	return m.getValidByTokenFn(ctx, token)
}

func (m *mockSessionRepo) Renew(ctx context.Context, id uuid.UUID, expiresAt time.Time) (*account.Session, error) {
	return m.renewFn(ctx, id, expiresAt)
}

func (m *mockSessionRepo) Expire(ctx context.Context, id uuid.UUID) (*account.Session, error) {
	return m.expireFn(ctx, id)
}

// mockHasher is a function-field fake for account.PasswordHasher.
type mockHasher struct {
	hashFn    func(password string) (string, error)
	compareFn func(password, encoded string) (bool, error)
}

func (m *mockHasher) Hash(password string) (string, error) {
	return m.hashFn(password)
}

func (m *mockHasher) Compare(password, encoded string) (bool, error) {
	return m.compareFn(password, encoded)
}

// userMissing mirrors the repository's zero-rows failure.
func userMissing() error {
	return apperr.NotFound("user not found", "Check the identifier and try again.")
}

// sessionMissing mirrors the session repository's zero-rows failure.
func sessionMissing() error {
	return apperr.NotFound("session not found", "Log in again to continue.")
}

// notFoundUserRepo returns a repo whose lookups all miss.
func notFoundUserRepo() *mockUserRepo {
	return &mockUserRepo{
		getByUsernameFn: func(context.Context, string) (*account.User, error) {
			return nil, userMissing()
		},
		getByEmailFn: func(context.Context, string) (*account.User, error) {
			return nil, userMissing()
		},
	}
}
