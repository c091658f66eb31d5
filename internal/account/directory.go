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

// Per-field uniqueness failures. Dedicated existence probes (rather than
// relying on the constraint violation alone) let each field be reported
// separately.
var (
	errUsernameTaken = apperr.Validation("username already taken", "Pick a different username.")
	errEmailTaken    = apperr.Validation("email already taken", "Use a different email address.")
)

// Directory is the uniqueness-enforced user store.
type Directory struct {
	users  UserRepository
	hasher PasswordHasher
	logger *slog.Logger
}

// NewDirectory creates a Directory.
func NewDirectory(users UserRepository, hasher PasswordHasher, logger *slog.Logger) *Directory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Directory{users: users, hasher: hasher, logger: logger}
}

// FindByID retrieves a user by identifier.
func (d *Directory) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return d.users.GetByID(ctx, id)
}

// FindByUsername retrieves a user by username, case-insensitively.
func (d *Directory) FindByUsername(ctx context.Context, username string) (*User, error) {
	return d.users.GetByUsername(ctx, username)
}

// FindByEmail retrieves a user by email, case-insensitively.
func (d *Directory) FindByEmail(ctx context.Context, email string) (*User, error) {
	return d.users.GetByEmail(ctx, email)
}

// Create validates the payload, probes username then email uniqueness,
// hashes the password, and persists the new user.
//
// The probe and the insert are separate round-trips; a concurrent duplicate
// can pass both probes and collide at the storage layer, where the
// repository remaps the constraint violation to the same ValidationError.
func (d *Directory) Create(ctx context.Context, p CreateUserParams) (*User, error) {
	if err := ValidateUsername(p.Username); err != nil {
		return nil, err
	}
	if err := ValidateEmail(p.Email); err != nil {
		return nil, err
	}
	if err := ValidatePassword(p.Password); err != nil {
		return nil, err
	}

	if err := d.ensureUsernameFree(ctx, p.Username, uuid.Nil); err != nil {
		return nil, err
	}
	if err := d.ensureEmailFree(ctx, p.Email, uuid.Nil); err != nil {
		return nil, err
	}

	hash, err := d.hashPassword(p.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &User{
		ID:           uuid.New(),
		Username:     p.Username,
		Email:        p.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := d.users.Create(ctx, user); err != nil {
		return nil, err
	}

	d.logger.InfoContext(ctx, "user created", "user_id", user.ID.String())
	return user, nil
}

// Update loads the current row, re-validates uniqueness only for fields
// present in the partial payload, re-hashes the password if present, merges
// over the current row, and persists. Absent fields are untouched.
func (d *Directory) Update(ctx context.Context, id uuid.UUID, p UpdateUserParams) (*User, error) {
	current, err := d.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := *current

	if p.Username != nil {
		if err := ValidateUsername(*p.Username); err != nil {
			return nil, err
		}
		if err := d.ensureUsernameFree(ctx, *p.Username, id); err != nil {
			return nil, err
		}
		merged.Username = *p.Username
	}

	if p.Email != nil {
		if err := ValidateEmail(*p.Email); err != nil {
			return nil, err
		}
		if err := d.ensureEmailFree(ctx, *p.Email, id); err != nil {
			return nil, err
		}
		merged.Email = *p.Email
	}

	if p.Password != nil {
		if err := ValidatePassword(*p.Password); err != nil {
			return nil, err
		}
		hash, err := d.hashPassword(*p.Password)
		if err != nil {
			return nil, err
		}
		merged.PasswordHash = hash
	}

	merged.UpdatedAt = time.Now()

	if err := d.users.Update(ctx, &merged); err != nil {
		return nil, err
	}
	return &merged, nil
}

// ensureUsernameFree probes for an existing holder of username. A probe hit
// that resolves to selfID is not a conflict: resubmitting your own current
// value succeeds.
func (d *Directory) ensureUsernameFree(ctx context.Context, username string, selfID uuid.UUID) error {
	existing, err := d.users.GetByUsername(ctx, username)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return nil
		}
		return err
	}
	if existing.ID == selfID {
		return nil
	}
	return errUsernameTaken
}

func (d *Directory) ensureEmailFree(ctx context.Context, email string, selfID uuid.UUID) error {
	existing, err := d.users.GetByEmail(ctx, email)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return nil
		}
		return err
	}
	if existing.ID == selfID {
		return nil
	}
	return errEmailTaken
}

// hashPassword returns the encoded hash, widening non-taxonomy hasher
// failures to ServiceError.
func (d *Directory) hashPassword(password string) (string, error) {
	hash, err := d.hasher.Hash(password)
	if err != nil {
		if _, ok := apperr.As(err); ok {
			return "", err
		}
		return "", apperr.Service(err)
	}
	return hash, nil
}
