package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ndewijer/InvestBoard-Backend/internal/app"
	"github.com/ndewijer/InvestBoard-Backend/internal/config"
	"github.com/ndewijer/InvestBoard-Backend/internal/database"
)

func migrateCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending SQLite schema migrations",
		Long: `Apply the embedded goose migrations to the SQLite durable cache.

Examples:
  investctl migrate
  investctl migrate --db ./data/investboard.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				cfg, err := config.Load()
				if err != nil {
					return fmt.Errorf("failed to load configuration: %w", err)
				}
				dbPath = cfg.Database.Path
			}

			db, err := app.OpenDatabase(cmd.Context(), dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			version, err := database.SchemaVersion(cmd.Context(), db)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Migrated %s to schema version %d\n", dbPath, version)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "database path (defaults to DB_PATH)")

	return cmd
}
