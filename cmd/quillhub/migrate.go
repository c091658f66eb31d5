package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/quillhub/quillhub/internal/store"
)

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Long: `Apply all pending schema migrations, each in its own transaction,
recording progress in the pgmigrations ledger. With --dry-run, list the
pending migrations without touching the schema.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrate(cmd, dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "list pending migrations without applying them")

	return cmd
}

func runMigrate(cmd *cobra.Command, dryRun bool) error {
	db, err := openStore()
	if err != nil {
		return err
	}

	migrator := store.NewMigrator(db, slog.Default())
	ctx := cmd.Context()

	if dryRun {
		pending, err := migrator.Pending(ctx)
		if err != nil {
			return err
		}
		if len(pending) == 0 {
			cmd.Println("No pending migrations")
			return nil
		}
		for _, name := range pending {
			cmd.Println(name)
		}
		return nil
	}

	applied, err := migrator.Apply(ctx)
	for _, name := range applied {
		cmd.Printf("applied %s\n", name)
	}
	if err != nil {
		return err
	}

	if len(applied) == 0 {
		cmd.Println("Nothing to apply")
	}
	return nil
}
