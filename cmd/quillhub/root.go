package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/quillhub/quillhub/internal/config"
	"github.com/quillhub/quillhub/internal/logging"
	"github.com/quillhub/quillhub/internal/store"
)

// NewRootCmd creates the root command for the Quillhub CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quillhub",
		Short: "Quillhub - backend operations",
		Long: `Quillhub backend operations: schema migrations and
deployment status against the configured PostgreSQL database.`,
	}

	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewStatusCmd())

	return cmd
}

// openStore loads configuration, wires the default logger, and opens the
// data access layer.
func openStore() (*store.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logging.SetDefault("quillhub", version, cfg.LogFormat)

	return store.Open(cfg, slog.Default())
}
