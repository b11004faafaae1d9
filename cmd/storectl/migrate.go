package main

import (
	"fmt"

	"storefront/internal/adapters/out/postgres"

	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update all database tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			defer e.Close()

			if err = postgres.Migrate(e.db.WithContext(cmd.Context())); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Migrated %d tables.\n", len(postgres.Tables()))
			return nil
		},
	}
}
