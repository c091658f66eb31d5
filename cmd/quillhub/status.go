package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/quillhub/quillhub/internal/store"
)

// NewStatusCmd creates the status subcommand.
func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show applied and pending migrations",
		RunE:  runStatus,
	}
}

func runStatus(cmd *cobra.Command, _ []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}

	migrator := store.NewMigrator(db, slog.Default())
	ctx := cmd.Context()

	applied, err := migrator.Applied(ctx)
	if err != nil {
		return err
	}
	pending, err := migrator.Pending(ctx)
	if err != nil {
		return err
	}

	cmd.Printf("Applied (%d):\n", len(applied))
	for _, name := range applied {
		cmd.Printf("  %s\n", name)
	}
	cmd.Printf("Pending (%d):\n", len(pending))
	for _, name := range pending {
		cmd.Printf("  %s\n", name)
	}
	return nil
}
