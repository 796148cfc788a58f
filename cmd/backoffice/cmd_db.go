package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/backoffice/database/seeders"
	"github.com/shashiranjanraj/backoffice/internal/server"
)

// withBackend connects the configured store for the duration of fn.
func withBackend(ctx context.Context, fn func(*server.Backend) error) error {
	backend, err := server.Connect(ctx)
	if err != nil {
		return err
	}
	defer backend.Close(context.Background())
	return fn(backend)
}

// backoffice migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run pending migrations (SQL) or ensure indexes (Mongo)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBackend(cmd.Context(), func(b *server.Backend) error {
			fmt.Fprintln(cmd.OutOrStdout(), "Running migrations…")
			return b.Migrate(cmd.Context(), cmd.OutOrStdout())
		})
	},
}

// backoffice migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Rollback the last batch of SQL migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBackend(cmd.Context(), func(b *server.Backend) error {
			runner, err := b.Migrator(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Rolling back last batch…")
			_, err = runner.Rollback()
			return err
		})
	},
}

// backoffice migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each SQL migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBackend(cmd.Context(), func(b *server.Backend) error {
			runner, err := b.Migrator(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			rows, err := runner.Status()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "MIGRATION\tSTATUS\tBATCH")
			for _, s := range rows {
				state, batch := "Pending", "-"
				if s.Ran {
					state, batch = "Ran", fmt.Sprint(s.Batch)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", s.Name, state, batch)
			}
			return w.Flush()
		})
	},
}

// backoffice seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert sample users, categories and products",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBackend(cmd.Context(), func(b *server.Backend) error {
			if err := b.Migrate(cmd.Context(), cmd.OutOrStdout()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Running seeders…")
			return seeders.RunAll(cmd.Context(), b.Store, cmd.OutOrStdout())
		})
	},
}
