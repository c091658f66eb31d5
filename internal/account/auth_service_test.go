// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quillhub Contributors

package account_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/quillhub/quillhub/internal/account"
	"github.com/quillhub/quillhub/internal/apperr"
)

func TestAuthenticator_Authenticate(t *testing.T) {
	hasher := account.NewBcryptHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("secret123")
	require.NoError(t, err)

	user := &account.User{ID: uuid.New(), Email: "alice@example.com", PasswordHash: hash}
	repo := &mockUserRepo{
		getByEmailFn: func(_ context.Context, email string) (*account.User, error) {
			require.Equal(t, "alice@example.com", email)
			return user, nil
		},
	}

	auth := account.NewAuthenticator(repo, hasher, nil)

	got, err := auth.Authenticate(context.Background(), "alice@example.com", "secret123")
	require.NoError(t, err)
	assert.Same(t, user, got)
}

func TestAuthenticator_UniformRejection(t *testing.T) {
	hasher := account.NewBcryptHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("secret123")
	require.NoError(t, err)

	user := &account.User{ID: uuid.New(), Email: "alice@example.com", PasswordHash: hash}
	repo := &mockUserRepo{
		getByEmailFn: func(_ context.Context, email string) (*account.User, error) {
			if email == "alice@example.com" {
				return user, nil
			}
			return nil, userMissing()
		},
	}

	auth := account.NewAuthenticator(repo, hasher, nil)

	_, unknownErr := auth.Authenticate(context.Background(), "nobody@example.com", "secret123")
	_, wrongErr := auth.Authenticate(context.Background(), "alice@example.com", "wrong-password")

	unknown, ok := apperr.As(unknownErr)
	require.True(t, ok)
	wrong, ok := apperr.As(wrongErr)
	require.True(t, ok)

	// An unknown email and a wrong password must be indistinguishable.
	assert.Equal(t, apperr.KindUnauthorized, unknown.Kind)
	assert.Equal(t, unknown.Kind, wrong.Kind)
	assert.Equal(t, unknown.Message, wrong.Message)
	assert.Equal(t, unknown.Action, wrong.Action)
	assert.Equal(t, unknown.Status, wrong.Status)
}

func TestAuthenticator_UnknownEmailStillHashes(t *testing.T) {
	repo := &mockUserRepo{
		getByEmailFn: func(context.Context, string) (*account.User, error) {
			return nil, userMissing()
		},
	}

	compared := false
	hasher := &mockHasher{
		compareFn: func(_, encoded string) (bool, error) {
			compared = true
			assert.NotEmpty(t, encoded)
			return false, nil
		},
	}

	auth := account.NewAuthenticator(repo, hasher, nil)

	_, err := auth.Authenticate(context.Background(), "nobody@example.com", "secret123")
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))

	// The miss path still performs a hash comparison so it costs the same
	// as a mismatch.
	assert.True(t, compared)
}

func TestAuthenticator_StorageFailurePropagates(t *testing.T) {
	svcErr := apperr.Service(errors.New("connection refused"))
	repo := &mockUserRepo{
		getByEmailFn: func(context.Context, string) (*account.User, error) {
			return nil, svcErr
		},
	}

	auth := account.NewAuthenticator(repo, &mockHasher{}, nil)

	_, err := auth.Authenticate(context.Background(), "alice@example.com", "secret123")
	assert.Equal(t, svcErr, err)
}

func TestAuthenticator_CompareFailureWidened(t *testing.T) {
	user := &account.User{ID: uuid.New(), Email: "alice@example.com", PasswordHash: "corrupt"}
	repo := &mockUserRepo{
		getByEmailFn: func(context.Context, string) (*account.User, error) {
			return user, nil
		},
	}
	hasher := &mockHasher{
		compareFn: func(string, string) (bool, error) {
			return false, errors.New("malformed hash")
		},
	}

	auth := account.NewAuthenticator(repo, hasher, nil)

	_, err := auth.Authenticate(context.Background(), "alice@example.com", "secret123")
	require.Error(t, err)
	assert.Equal(t, apperr.KindService, apperr.KindOf(err))
}
