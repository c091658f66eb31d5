// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quillhub Contributors

package store

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"

	"github.com/quillhub/quillhub/internal/apperr"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// LedgerTable is the tracking table recording applied migration names.
const LedgerTable = "pgmigrations"

const createLedgerSQL = `
	CREATE TABLE IF NOT EXISTS pgmigrations (
		name varchar(255) PRIMARY KEY,
		run_on timestamptz NOT NULL DEFAULT now()
	)`

// Migrator applies ordered schema migrations tracked in the pgmigrations
// ledger. Each migration runs in its own transaction; a failure aborts the
// remaining run but leaves previously committed migrations applied.
type Migrator struct {
	db     *DB
	fsys   fs.FS
	dir    string
	logger *slog.Logger
}

// NewMigrator creates a Migrator over the embedded migration files.
func NewMigrator(db *DB, logger *slog.Logger) *Migrator {
	return NewMigratorFS(db, migrationsFS, "migrations", logger)
}

// NewMigratorFS creates a Migrator reading .sql files from dir within fsys.
// Migration identifiers are file names without the .sql extension; their
// zero-padded numeric prefixes make lexical order the application order.
func NewMigratorFS(db *DB, fsys fs.FS, dir string, logger *slog.Logger) *Migrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Migrator{db: db, fsys: fsys, dir: dir, logger: logger}
}

// Pending lists, in application order, the migrations not yet recorded in
// the ledger. It never mutates the schema: a missing ledger table means
// nothing has been applied.
func (m *Migrator) Pending(ctx context.Context) ([]string, error) {
	conn, err := m.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer m.db.release(ctx, conn)

	applied, err := m.appliedSet(ctx, conn)
	if err != nil {
		return nil, err
	}
	return m.pendingNames(applied)
}

// Applied lists the migrations recorded in the ledger, in application order.
func (m *Migrator) Applied(ctx context.Context) ([]string, error) {
	conn, err := m.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer m.db.release(ctx, conn)

	applied, err := m.appliedSet(ctx, conn)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(applied))
	for name := range applied {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Apply runs all pending migrations in ascending order, recording each in
// the ledger within the same transaction that applied it. Returns the names
// applied by this invocation, including those committed before a failure.
func (m *Migrator) Apply(ctx context.Context) ([]string, error) {
	conn, err := m.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer m.db.release(ctx, conn)

	if _, err := conn.Exec(ctx, createLedgerSQL); err != nil {
		return nil, apperr.Service(oops.Code("MIGRATION_LEDGER_FAILED").
			With("operation", "ensure ledger table").
			Wrap(err))
	}

	applied, err := m.appliedSet(ctx, conn)
	if err != nil {
		return nil, err
	}

	pending, err := m.pendingNames(applied)
	if err != nil {
		return nil, err
	}

	var done []string
	for _, name := range pending {
		if err := m.applyOne(ctx, conn, name); err != nil {
			return done, err
		}
		done = append(done, name)
		migrationsApplied.Inc()
		m.logger.InfoContext(ctx, "migration applied", "name", name)
	}
	return done, nil
}

// applyOne executes a single migration and its ledger insert in one
// transaction.
func (m *Migrator) applyOne(ctx context.Context, conn Conn, name string) error {
	sqlBytes, err := fs.ReadFile(m.fsys, path.Join(m.dir, name+".sql"))
	if err != nil {
		return apperr.Service(oops.Code("MIGRATION_READ_FAILED").
			With("name", name).
			Wrap(err))
	}

	tx, err := conn.Begin(ctx)
	if err != nil {
		return apperr.Service(oops.Code("MIGRATION_BEGIN_FAILED").
			With("name", name).
			Wrap(err))
	}

	if _, err := tx.Exec(ctx, string(sqlBytes)); err != nil {
		_ = tx.Rollback(ctx) //nolint:errcheck // the execution error takes precedence
		return apperr.Service(oops.Code("MIGRATION_APPLY_FAILED").
			With("name", name).
			Wrap(err))
	}

	if _, err := tx.Exec(ctx, `INSERT INTO pgmigrations (name) VALUES ($1)`, name); err != nil {
		_ = tx.Rollback(ctx) //nolint:errcheck // the insert error takes precedence
		return apperr.Service(oops.Code("MIGRATION_RECORD_FAILED").
			With("name", name).
			Wrap(err))
	}

	if err := tx.Commit(ctx); err != nil {
		return apperr.Service(oops.Code("MIGRATION_COMMIT_FAILED").
			With("name", name).
			Wrap(err))
	}
	return nil
}

// appliedSet reads the ledger. An absent ledger table is an empty set, not
// an error, so dry runs work against a virgin database.
func (m *Migrator) appliedSet(ctx context.Context, q Querier) (map[string]struct{}, error) {
	rows, err := q.Query(ctx, `SELECT name FROM pgmigrations`)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UndefinedTable {
			return map[string]struct{}{}, nil
		}
		return nil, apperr.Service(oops.Code("MIGRATION_LEDGER_READ_FAILED").
			With("operation", "read ledger").
			Wrap(err))
	}
	defer rows.Close()

	applied := make(map[string]struct{})
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, apperr.Service(oops.Code("MIGRATION_LEDGER_SCAN_FAILED").Wrap(err))
		}
		applied[name] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Service(oops.Code("MIGRATION_LEDGER_ROWS_FAILED").Wrap(err))
	}
	return applied, nil
}

// pendingNames resolves the ordered difference between available migration
// files and the applied set.
func (m *Migrator) pendingNames(applied map[string]struct{}) ([]string, error) {
	entries, err := fs.ReadDir(m.fsys, m.dir)
	if err != nil {
		return nil, apperr.Service(oops.Code("MIGRATION_LIST_FAILED").
			With("operation", "read migrations dir").
			With("dir", m.dir).
			Wrap(err))
	}

	var pending []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}
		id := strings.TrimSuffix(name, ".sql")
		if _, ok := applied[id]; ok {
			continue
		}
		pending = append(pending, id)
	}
	sort.Strings(pending)
	return pending, nil
}
