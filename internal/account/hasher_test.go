// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quillhub Contributors

package account_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/quillhub/quillhub/internal/account"
	"github.com/quillhub/quillhub/internal/apperr"
)

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	hasher := account.NewBcryptHasher(bcrypt.MinCost)

	encoded, err := hasher.Hash("secret123")
	require.NoError(t, err)

	// Self-describing encoding: algorithm, work factor, and salt embedded.
	assert.True(t, strings.HasPrefix(encoded, "$2a$"))
	assert.Len(t, encoded, account.EncodedHashLength)
	assert.NotEqual(t, "secret123", encoded)

	match, err := hasher.Compare("secret123", encoded)
	require.NoError(t, err)
	assert.True(t, match)

	match, err = hasher.Compare("not-the-password", encoded)
	require.NoError(t, err)
	assert.False(t, match)
}

func TestBcryptHasher_SaltedOutputsDiffer(t *testing.T) {
	hasher := account.NewBcryptHasher(bcrypt.MinCost)

	first, err := hasher.Hash("correct horse battery")
	require.NoError(t, err)
	second, err := hasher.Hash("correct horse battery")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	for _, encoded := range []string{first, second} {
		match, err := hasher.Compare("correct horse battery", encoded)
		require.NoError(t, err)
		assert.True(t, match)
	}
}

func TestBcryptHasher_EmptyPassword(t *testing.T) {
	hasher := account.NewBcryptHasher(bcrypt.MinCost)

	_, err := hasher.Hash("")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestBcryptHasher_MalformedEncoded(t *testing.T) {
	hasher := account.NewBcryptHasher(bcrypt.MinCost)

	match, err := hasher.Compare("whatever", "not-an-encoded-hash")
	require.Error(t, err)
	assert.False(t, match)
}

func TestNewBcryptHasher_ClampsCost(t *testing.T) {
	hasher := account.NewBcryptHasher(-5)

	encoded, err := hasher.Hash("secret123")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(encoded))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}
