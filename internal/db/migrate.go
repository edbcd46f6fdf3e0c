package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// newMigrator owns conn; closing the migrator closes it.
func newMigrator(conn *sql.DB) (*migrate.Migrate, error) {
	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return nil, fmt.Errorf("migration source: %w", err)
	}
	driver, err := migratemysql.WithInstance(conn, &migratemysql.Config{})
	if err != nil {
		return nil, fmt.Errorf("migration driver: %w", err)
	}
	return migrate.NewWithInstance("iofs", src, "mysql", driver)
}

// MigrateUp applies pending migrations on a dedicated connection.
func MigrateUp(dsn string) error {
	return runMigration(dsn, "up", func(m *migrate.Migrate) error { return m.Up() })
}

// MigrateDown rolls back the given number of steps.
func MigrateDown(dsn string, steps int) error {
	if steps <= 0 {
		steps = 1
	}
	return runMigration(dsn, "down", func(m *migrate.Migrate) error { return m.Steps(-steps) })
}

func runMigration(dsn, direction string, fn func(m *migrate.Migrate) error) error {
	conn, err := sql.Open("mysql", dsn)
	if err != nil {
		return err
	}
	m, err := newMigrator(conn)
	if err != nil {
		_ = conn.Close()
		return err
	}
	defer func() { _, _ = m.Close() }()

	if err := fn(m); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info().Str("direction", direction).Msg("migrations: no change")
			return nil
		}
		return err
	}
	version, dirty, _ := m.Version()
	log.Info().Str("direction", direction).Uint("version", version).Bool("dirty", dirty).Msg("migrations applied")
	return nil
}
