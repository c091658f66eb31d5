// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quillhub Contributors

// Package store provides connection-per-operation access to PostgreSQL.
//
// Every logical operation acquires a fresh connection, runs its statement,
// and releases the connection on every exit path. There is no pooling and no
// cross-call reuse; correctness under concurrent writes relies on
// database-level constraints, not in-process coordination.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"

	"github.com/quillhub/quillhub/internal/apperr"
	"github.com/quillhub/quillhub/internal/config"
)

// Querier is the statement-execution surface exposed to repositories.
// Satisfied by *DB, by a live Conn, and by pgxmock in tests.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Conn is a caller-owned database connection, handed out by Acquire for
// multi-statement and transactional control. The caller must Close it.
type Conn interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
	Close(ctx context.Context) error
}

// ConnectFunc opens a single fresh connection.
type ConnectFunc func(ctx context.Context) (Conn, error)

// DB executes statements one connection per operation.
type DB struct {
	connect ConnectFunc
	logger  *slog.Logger
}

// Open builds a DB from process configuration. The transport-security
// policy is resolved once here: explicit trust material when configured,
// otherwise TLS tracks the deployment mode.
func Open(cfg *config.Config, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.Default()
	}

	connCfg, err := connConfig(&cfg.Database, cfg.IsProduction())
	if err != nil {
		return nil, err
	}

	return &DB{
		connect: func(ctx context.Context) (Conn, error) {
			return pgx.ConnectConfig(ctx, connCfg)
		},
		logger: logger,
	}, nil
}

// New builds a DB over an explicit connector. Used by tests to substitute
// pgxmock connections; Open wires the real one.
func New(connect ConnectFunc) *DB {
	return &DB{connect: connect, logger: slog.Default()}
}

// connConfig translates configuration into a single-attempt pgx config.
func connConfig(db *config.Database, production bool) (*pgx.ConnConfig, error) {
	// sslmode=disable keeps pgx from generating TLS fallbacks; the policy
	// below is authoritative.
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		db.Host, db.Port, db.User, db.Password, db.Name,
	)

	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, apperr.Service(oops.Code("DB_CONFIG_INVALID").
			With("operation", "parse connection config").
			Wrap(err))
	}

	tlsCfg, err := tlsPolicy(db.Host, db.RootCert, production)
	if err != nil {
		return nil, err
	}
	cfg.TLSConfig = tlsCfg

	return cfg, nil
}

// Acquire opens a fresh caller-owned connection. Connection failures are
// reported as ServiceError with the cause kept internal.
func (db *DB) Acquire(ctx context.Context) (Conn, error) {
	conn, err := db.connect(ctx)
	if err != nil {
		connectFailures.Inc()
		return nil, apperr.Service(oops.Code("DB_CONNECT_FAILED").
			With("operation", "acquire connection").
			Wrap(err))
	}
	return conn, nil
}

// Exec runs a statement on a fresh connection, releasing it before return.
func (db *DB) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	start := time.Now()
	conn, err := db.Acquire(ctx)
	if err != nil {
		return pgconn.CommandTag{}, err
	}
	defer db.release(ctx, conn)

	tag, err := conn.Exec(ctx, sql, arguments...)
	observeQuery(start, err)
	if err != nil {
		return pgconn.CommandTag{}, err
	}
	return tag, nil
}

// Query runs a query on a fresh connection. The connection stays bound to
// the returned rows and is released when they are closed or exhausted.
func (db *DB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	start := time.Now()
	conn, err := db.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := conn.Query(ctx, sql, args...)
	observeQuery(start, err)
	if err != nil {
		db.release(ctx, conn)
		return nil, err
	}
	return &connRows{Rows: rows, db: db, conn: conn, ctx: ctx}, nil
}

// QueryRow runs a single-row query on a fresh connection. The connection is
// released when Scan completes.
func (db *DB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	start := time.Now()
	conn, err := db.Acquire(ctx)
	if err != nil {
		return errRow{err: err}
	}
	return &connRow{row: conn.QueryRow(ctx, sql, args...), db: db, conn: conn, ctx: ctx, start: start}
}

func (db *DB) release(ctx context.Context, conn Conn) {
	if err := conn.Close(ctx); err != nil {
		db.logger.WarnContext(ctx, "closing database connection", "error", err)
	}
}

// connRows ties a result set to the connection that produced it.
type connRows struct {
	pgx.Rows
	db     *DB
	conn   Conn
	ctx    context.Context
	closed bool
}

func (r *connRows) Close() {
	r.Rows.Close()
	if !r.closed {
		r.closed = true
		r.db.release(r.ctx, r.conn)
	}
}

// Next releases the connection once the result set is exhausted, so callers
// that iterate to completion do not hold it until their deferred Close.
func (r *connRows) Next() bool {
	if r.Rows.Next() {
		return true
	}
	r.Close()
	return false
}

// connRow defers both query execution and release to Scan, mirroring pgx.
type connRow struct {
	row   pgx.Row
	db    *DB
	conn  Conn
	ctx   context.Context
	start time.Time
}

func (r *connRow) Scan(dest ...any) error {
	defer r.db.release(r.ctx, r.conn)
	err := r.row.Scan(dest...)
	observeQuery(r.start, err)
	return err
}

// errRow reports a connection failure through the Row interface.
type errRow struct {
	err error
}

func (r errRow) Scan(...any) error {
	return r.err
}

// Compile-time interface checks.
var (
	_ Querier = (*DB)(nil)
	_ pgx.Row = (*connRow)(nil)
	_ pgx.Row = errRow{}
)
