package database

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/roomate/household_ledger/migrations"
)

// RunPostgresMigrations applies the embedded postgres migrations over a temporary
// database/sql connection using the pgx stdlib driver.
func RunPostgresMigrations(databaseURL string) error {
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("open migration database: %w", err)
	}
	defer migrationDB.Close()

	if err := migrationDB.Ping(); err != nil {
		return fmt.Errorf("ping migration database: %w", err)
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create postgres driver: %w", err)
	}
	return runMigrations(migrations.Postgres, "postgres", driver, true)
}

// RunSQLiteMigrations applies the embedded sqlite migrations to db. The caller keeps
// ownership of db.
func RunSQLiteMigrations(db *sql.DB) error {
	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("create sqlite driver: %w", err)
	}
	// Closing the migrate instance would close db as well.
	return runMigrations(migrations.SQLite, "sqlite", driver, false)
}

func runMigrations(fsys fs.FS, dir string, driver database.Driver, closeAfter bool) error {
	source, err := iofs.New(fsys, dir)
	if err != nil {
		return fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, dir, driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	if closeAfter {
		defer m.Close()
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}

	version, dirty, verr := m.Version()
	if verr == nil {
		slog.Info("Database migrations applied", slog.String("driver", dir), slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
	}
	return nil
}
