package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
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
        source_lat REAL NOT NULL,
        source_lng REAL NOT NULL,
        dest_lat REAL NOT NULL,
        dest_lng REAL NOT NULL,
        waypoints TEXT NOT NULL,
        distance_km REAL NOT NULL,
        duration_min REAL NOT NULL,
        gemini_score REAL NOT NULL,
        traffic_score REAL NOT NULL,
        reasoning TEXT NOT NULL,
        peak_hour TEXT NOT NULL,
        expected_passengers_daily INTEGER NOT NULL,
        created_at TEXT NOT NULL
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
        departure_times TEXT NOT NULL,
        created_at TEXT NOT NULL
    );
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
        address TEXT PRIMARY KEY,
        lat REAL NOT NULL,
        lng REAL NOT NULL
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
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
