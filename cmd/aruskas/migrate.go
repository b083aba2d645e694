package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tirtawidya/aruskas/internal/cli"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Bring the database schema up to date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.Migrate(cmd.Context()); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Println(cli.FormatSuccess("database schema is up to date"))
			return nil
		},
	}
}
