package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/jhoicas/tenant-admin/pkg/config"
)

// Direcciones de migración.
const (
	MigrateUp   = "up"
	MigrateDown = "down"
)

// Migrate aplica (up) o revierte (down) todas las migraciones de sourceURL.
// Sin cambios pendientes no es error.
func Migrate(sourceURL string, cfg config.DBConfig, direction string) error {
	m, err := migrate.New(sourceURL, migrationURL(cfg))
	if err != nil {
		return fmt.Errorf("init migrator failed: %w", err)
	}
	defer func() {
		_, _ = m.Close()
	}()

	switch direction {
	case MigrateUp:
		err = m.Up()
	case MigrateDown:
		err = m.Down()
	default:
		return fmt.Errorf("dirección de migración desconocida %q", direction)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate %s failed: %w", direction, err)
	}
	return nil
}

// migrationURL el driver de migrate solo acepta los esquemas postgres:// y postgresql://.
func migrationURL(cfg config.DBConfig) string {
	dsn := cfg.ConnectionString()
	if rest, ok := strings.CutPrefix(dsn, "postgresql://"); ok {
		return "postgres://" + rest
	}
	return dsn
}
