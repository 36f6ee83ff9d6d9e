package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/tenant-admin/internal/infrastructure/postgres"
	"github.com/jhoicas/tenant-admin/pkg/config"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations (STORE_BACKEND=postgres)",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all up migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrations(postgres.MigrateUp)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Revert all migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrations(postgres.MigrateDown)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
}

func runMigrations(direction string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Store.Backend != config.StorePostgres {
		return fmt.Errorf("migrate requires STORE_BACKEND=postgres (got %q)", cfg.Store.Backend)
	}
	if err := postgres.Migrate(cfg.Store.MigrationsPath, cfg.DB, direction); err != nil {
		return err
	}
	log.Info().Str("direction", direction).Str("source", cfg.Store.MigrationsPath).Msg("migraciones aplicadas")
	return nil
}
