package cache

import (
	"bus-planning-service/internal/domain"
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

func newTestSqliteCache(t *testing.T) *SqliteGeocodeCache {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	schema := `
	CREATE TABLE geocode_cache (
        address TEXT PRIMARY KEY,
        lat REAL NOT NULL,
        lng REAL NOT NULL
    );
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("create table: %v", err)
	}

	return NewSqliteGeocodeCache(db)
}

func TestSqliteGeocodeCacheRoundTrip(t *testing.T) {
	c := newTestSqliteCache(t)
	ctx := context.Background()

	stored := map[string]domain.Coordinates{
		"MP Nagar":  {Lat: 23.23, Lng: 77.43},
		"Bairagarh": {Lat: 23.27, Lng: 77.33},
	}
	if err := c.PutMany(ctx, stored); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := c.GetMany(ctx, []string{"MP Nagar", "Bairagarh", "Unknown Stop", "MP Nagar"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("hits = %d, want 2", len(got))
	}
	if got["Bairagarh"] != stored["Bairagarh"] {
		t.Errorf("Bairagarh = %+v, want %+v", got["Bairagarh"], stored["Bairagarh"])
	}
}

func TestSqliteGeocodeCacheReplace(t *testing.T) {
	c := newTestSqliteCache(t)
	ctx := context.Background()

	if err := c.PutMany(ctx, map[string]domain.Coordinates{"Habibganj": {Lat: 1, Lng: 2}}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := c.PutMany(ctx, map[string]domain.Coordinates{"Habibganj": {Lat: 23.22, Lng: 77.44}}); err != nil {
		t.Fatalf("replace: %v", err)
	}

	got, err := c.GetMany(ctx, []string{"Habibganj"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got["Habibganj"].Lat != 23.22 {
		t.Errorf("Habibganj = %+v, want the replaced value", got["Habibganj"])
	}
}
