package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres database schema. Used by the dbtool binary
// for deployments backed by Postgres instead of the embedded SQLite
// file.
func InitPostgresSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init pg schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init pg schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createRoutesQuery := `
	CREATE TABLE IF NOT EXISTS saved_routes (
        route_id TEXT PRIMARY KEY,
        bus_id TEXT NOT NULL,
        bus_number TEXT NOT NULL,
        route_index INTEGER NOT NULL,
        source_name TEXT NOT NULL,
        dest_name TEXT NOT NULL,
        source_lat DOUBLE PRECISION NOT NULL,
        source_lng DOUBLE PRECISION NOT NULL,
        dest_lat DOUBLE PRECISION NOT NULL,
        dest_lng DOUBLE PRECISION NOT NULL,
        waypoints JSONB NOT NULL,
        distance_km DOUBLE PRECISION NOT NULL,
        duration_min DOUBLE PRECISION NOT NULL,
        gemini_score DOUBLE PRECISION NOT NULL,
        traffic_score DOUBLE PRECISION NOT NULL,
        reasoning TEXT NOT NULL,
        peak_hour TEXT NOT NULL,
        expected_passengers_daily INTEGER NOT NULL,
        created_at TIMESTAMPTZ NOT NULL
    );
	`

	createSchedulesQuery := `
	CREATE TABLE IF NOT EXISTS schedules (
        schedule_id TEXT PRIMARY KEY,
        route_id TEXT NOT NULL REFERENCES saved_routes(route_id),
        bus_number TEXT NOT NULL,
        peak_hour TEXT NOT NULL,
        frequency_min INTEGER NOT NULL,
        buses_needed INTEGER NOT NULL,
        first_departure TEXT NOT NULL,
        last_departure TEXT NOT NULL,
        total_trips INTEGER NOT NULL,
        departure_times JSONB NOT NULL,
        created_at TIMESTAMPTZ NOT NULL
    );
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
        address TEXT PRIMARY KEY,
        lat DOUBLE PRECISION NOT NULL,
        lng DOUBLE PRECISION NOT NULL
    );
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_schedules_route_id
    ON schedules(route_id);
	`

	statements := []string{
		createRoutesQuery,
		createSchedulesQuery,
		createGeocodeCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init pg schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init pg schema: commit tx: %w", err)
	}

	return nil
}
