package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"streamhub-backend/internal/infrastructure/database"
)

func newMigrateCommand(ctx *commandContext) *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database schema migrations",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closeFn, err := ctx.openStores(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()
			if s.Pool == nil {
				return errNoDatabase
			}

			if err := database.MigratePool(cmd.Context(), s.Pool); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
			return nil
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show applied and pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closeFn, err := ctx.openStores(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()
			if s.Pool == nil {
				return errNoDatabase
			}

			return database.StatusPool(cmd.Context(), s.Pool)
		},
	})

	return migrateCmd
}
