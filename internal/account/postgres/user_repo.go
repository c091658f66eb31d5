// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quillhub Contributors

// Package postgres implements the account repositories over PostgreSQL.
package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"

	"github.com/quillhub/quillhub/internal/account"
	"github.com/quillhub/quillhub/internal/apperr"
	"github.com/quillhub/quillhub/internal/store"
)

// userNotFound is the uniform zero-rows failure for user lookups.
func userNotFound() error {
	return apperr.NotFound("user not found", "Check the identifier and try again.")
}

// UserRepository implements account.UserRepository using PostgreSQL.
type UserRepository struct {
	db store.Querier
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db store.Querier) *UserRepository {
	return &UserRepository{db: db}
}

// Create stores a new user. A uniqueness violation from the database — the
// backstop behind the directory's non-atomic pre-checks — is remapped to a
// per-field ValidationError, never surfaced as an internal failure.
func (r *UserRepository) Create(ctx context.Context, user *account.User) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (id, username, email, password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		user.ID.String(),
		user.Username,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if verr := duplicateFieldError(err); verr != nil {
			return verr
		}
		return serviceErr(err, "USER_CREATE_FAILED", "insert user")
	}
	return nil
}

// GetByID retrieves a user by identifier.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*account.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, username, email, password, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id.String())

	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, userNotFound()
	}
	if err != nil {
		return nil, serviceErr(err, "USER_GET_BY_ID_FAILED", "get user by id")
	}
	return user, nil
}

// GetByUsername retrieves a user by username (case-insensitive).
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*account.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, username, email, password, created_at, updated_at
		FROM users
		WHERE LOWER(username) = LOWER($1)
	`, username)

	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, userNotFound()
	}
	if err != nil {
		return nil, serviceErr(err, "USER_GET_BY_USERNAME_FAILED", "get user by username")
	}
	return user, nil
}

// GetByEmail retrieves a user by email (case-insensitive).
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*account.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, username, email, password, created_at, updated_at
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`, email)

	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, userNotFound()
	}
	if err != nil {
		return nil, serviceErr(err, "USER_GET_BY_EMAIL_FAILED", "get user by email")
	}
	return user, nil
}

// Update persists an already-merged user row. Uniqueness violations are
// remapped the same way as on Create.
func (r *UserRepository) Update(ctx context.Context, user *account.User) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users SET
			username = $2,
			email = $3,
			password = $4,
			updated_at = $5
		WHERE id = $1
	`,
		user.ID.String(),
		user.Username,
		user.Email,
		user.PasswordHash,
		user.UpdatedAt,
	)
	if err != nil {
		if verr := duplicateFieldError(err); verr != nil {
			return verr
		}
		return serviceErr(err, "USER_UPDATE_FAILED", "update user")
	}
	if tag.RowsAffected() == 0 {
		return userNotFound()
	}
	return nil
}

// scanUser scans a single row into a User.
// Callers are responsible for handling pgx.ErrNoRows.
func scanUser(row pgx.Row) (*account.User, error) {
	var (
		idStr string
		u     account.User
	)

	err := row.Scan(&idStr, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		// Propagate pgx.ErrNoRows unchanged for callers to classify.
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // callers map to NotFound
		}
		return nil, oops.Code("USER_SCAN_FAILED").
			With("operation", "scan user").
			Wrap(err)
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("USER_INVALID_ID").
			With("operation", "parse user id").
			With("id", idStr).
			Wrap(err)
	}
	u.ID = id

	return &u, nil
}

// duplicateFieldError maps a unique-violation cause to the per-field
// ValidationError for the colliding column, or nil when err is something
// else.
func duplicateFieldError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return nil
	}
	switch pgErr.ConstraintName {
	case "users_username_lower_idx":
		return apperr.Validation("username already taken", "Pick a different username.")
	case "users_email_lower_idx":
		return apperr.Validation("email already taken", "Use a different email address.")
	default:
		return apperr.Validation("value already taken", "Use a different value.")
	}
}

// serviceErr widens an unrecognized driver failure into ServiceError with
// the cause annotated internally. Errors already carrying a taxonomy kind
// (e.g. connection failures from the store) pass through unchanged.
func serviceErr(err error, code, operation string) error {
	if _, ok := apperr.As(err); ok {
		return err
	}
	return apperr.Service(oops.Code(code).
		With("operation", operation).
		Wrap(err))
}

// Compile-time interface check.
var _ account.UserRepository = (*UserRepository)(nil)
