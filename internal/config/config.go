// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quillhub Contributors

// Package config loads process configuration from the environment.
//
// Configuration is parsed exactly once at process start and passed by
// reference into each component; nothing reads the environment afterwards.
package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/samber/oops"
)

// Deployment environments.
const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
	EnvTest        = "test"
)

// bcrypt work factors by environment. Production is deliberately slow;
// development and test use the bcrypt minimum to keep suites responsive.
const (
	productionBcryptCost = 12
	minimalBcryptCost    = 4
)

// Database holds connection settings for PostgreSQL.
type Database struct {
	Host     string `env:"PGHOST" envDefault:"localhost"`
	Port     uint16 `env:"PGPORT" envDefault:"5432"`
	User     string `env:"PGUSER" envDefault:"postgres"`
	Password string `env:"PGPASSWORD"`
	Name     string `env:"PGDATABASE" envDefault:"quillhub"`

	// RootCert is an optional path to PEM trust-anchor material for the
	// database connection. When set it takes precedence over the
	// environment-keyed TLS default.
	RootCert string `env:"PGROOTCERT"`
}

// Config is the full process configuration.
type Config struct {
	Environment string   `env:"QUILLHUB_ENV" envDefault:"development"`
	LogFormat   string   `env:"QUILLHUB_LOG_FORMAT" envDefault:"json"`
	Database    Database `envPrefix:""`

	// BcryptCost overrides the environment-keyed default when non-zero.
	BcryptCost int `env:"QUILLHUB_BCRYPT_COST"`
}

// Load parses configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, oops.Code("CONFIG_PARSE_FAILED").Wrap(err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Environment {
	case EnvProduction, EnvDevelopment, EnvTest:
		return nil
	default:
		return oops.Code("CONFIG_INVALID").
			With("environment", c.Environment).
			Errorf("environment must be one of %s, %s, %s", EnvProduction, EnvDevelopment, EnvTest)
	}
}

// IsProduction reports whether the process runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// EffectiveBcryptCost resolves the credential hashing work factor: an
// explicit override wins, otherwise production gets the slow cost and
// development/test the minimal one.
func (c *Config) EffectiveBcryptCost() int {
	if c.BcryptCost > 0 {
		return c.BcryptCost
	}
	if c.IsProduction() {
		return productionBcryptCost
	}
	return minimalBcryptCost
}
