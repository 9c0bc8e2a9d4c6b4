package cache

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite cache schema.
func InitSqliteSchema(db *sql.DB) error {
	statements := []string{
		`
	CREATE TABLE IF NOT EXISTS geocode_cache (
        address TEXT PRIMARY KEY,
        lat REAL NOT NULL,
        lng REAL NOT NULL,
        display_name TEXT NOT NULL DEFAULT ''
    );
	`,
		`
	CREATE TABLE IF NOT EXISTS leg_cache (
        origin TEXT NOT NULL,
        destination TEXT NOT NULL,
        distance_miles REAL NOT NULL,
        duration_hours REAL NOT NULL,
        polyline TEXT NOT NULL DEFAULT '',
        PRIMARY KEY (origin, destination)
    );
	`,
		`
	CREATE INDEX IF NOT EXISTS idx_leg_cache_destination_origin
    ON leg_cache(destination, origin);
	`,
	}

	return initSchema(db, statements)
}

// Initialize the Postgres cache schema for shared deployments.
func InitPostgresSchema(db *sql.DB) error {
	statements := []string{
		`
	CREATE TABLE IF NOT EXISTS geocode_cache (
        address TEXT PRIMARY KEY,
        lat DOUBLE PRECISION NOT NULL,
        lng DOUBLE PRECISION NOT NULL,
        display_name TEXT NOT NULL DEFAULT ''
    );
	`,
		`
	CREATE TABLE IF NOT EXISTS leg_cache (
        origin TEXT NOT NULL,
        destination TEXT NOT NULL,
        distance_miles DOUBLE PRECISION NOT NULL,
        duration_hours DOUBLE PRECISION NOT NULL,
        polyline TEXT NOT NULL DEFAULT '',
        PRIMARY KEY (origin, destination)
    );
	`,
		`
	CREATE INDEX IF NOT EXISTS idx_leg_cache_destination_origin
    ON leg_cache(destination, origin);
	`,
	}

	return initSchema(db, statements)
}

func initSchema(db *sql.DB, statements []string) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
