// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quillhub Contributors

package account_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quillhub/quillhub/internal/account"
	"github.com/quillhub/quillhub/internal/apperr"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{name: "valid simple", username: "alice", wantErr: false},
		{name: "valid with digits and underscore", username: "alice_42", wantErr: false},
		{name: "valid minimum length", username: "abc", wantErr: false},
		{name: "valid maximum length", username: strings.Repeat("a", account.MaxUsernameLength), wantErr: false},
		{name: "empty", username: "", wantErr: true},
		{name: "too short", username: "ab", wantErr: true},
		{name: "too long", username: strings.Repeat("a", account.MaxUsernameLength+1), wantErr: true},
		{name: "starts with digit", username: "1alice", wantErr: true},
		{name: "starts with underscore", username: "_alice", wantErr: true},
		{name: "contains hyphen", username: "ali-ce", wantErr: true},
		{name: "contains space", username: "ali ce", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := account.ValidateUsername(tt.username)
			if tt.wantErr {
				assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "valid", email: "alice@example.com", wantErr: false},
		{name: "valid short", email: "a@b", wantErr: false},
		{name: "empty", email: "", wantErr: true},
		{name: "missing at sign", email: "alice.example.com", wantErr: true},
		{name: "at sign first", email: "@example.com", wantErr: true},
		{name: "at sign last", email: "alice@", wantErr: true},
		{name: "too long", email: strings.Repeat("a", account.MaxEmailLength) + "@x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := account.ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "valid minimum length", password: "12345678", wantErr: false},
		{name: "valid long", password: "correct horse battery staple", wantErr: false},
		{name: "empty", password: "", wantErr: true},
		{name: "too short", password: "1234567", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := account.ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
