// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quillhub Contributors

package store

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics for data access and migrations.
var (
	// queryDuration tracks end-to-end latency of single operations,
	// including connection setup.
	queryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "quillhub_db_query_duration_seconds",
		Help:    "Histogram of database operation latency in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// queryErrors counts failed statement executions. Zero-row lookups are
	// not failures.
	queryErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quillhub_db_query_errors_total",
		Help: "Total number of failed database operations",
	})

	// connectFailures counts failed connection acquisitions.
	connectFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quillhub_db_connect_failures_total",
		Help: "Total number of failed database connection attempts",
	})

	// migrationsApplied counts successfully applied migrations.
	migrationsApplied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quillhub_db_migrations_applied_total",
		Help: "Total number of schema migrations applied",
	})
)

func observeQuery(start time.Time, err error) {
	queryDuration.Observe(time.Since(start).Seconds())
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		queryErrors.Inc()
	}
}
