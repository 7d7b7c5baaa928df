package repositories

import (
	"bus-planning-service/internal/domain"
	"bus-planning-service/internal/ports"
	"context"
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func newTestRepo(t *testing.T) *SqliteRouteRepository {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := InitSchema(db); err != nil {
		t.Fatalf("init schema: %v", err)
	}

	return NewSqliteRouteRepository(db)
}

func sampleRoute(id string, created time.Time) ports.SavedRoute {
	return ports.SavedRoute{
		RouteID:    id,
		BusID:      "bus-1",
		BusNumber:  "Bus 1",
		RouteIndex: 1,
		SourceName: "MP Nagar",
		DestName:   "New Market",
		Source:     domain.Coordinates{Lat: 23.23, Lng: 77.43},
		Destination: domain.Coordinates{
			Lat: 23.25, Lng: 77.40,
		},
		Waypoints:     []domain.Coordinates{{Lat: 23.23, Lng: 77.43}, {Lat: 23.24, Lng: 77.42}},
		DistanceKm:    12.5,
		DurationMin:   45,
		GeminiScore:   8.5,
		TrafficScore:  6.0,
		Reasoning:     "balanced arterial route",
		PeakPeriod:    domain.PeakMorning,
		ExpectedDaily: 500,
		CreatedAt:     created,
	}
}

func TestSaveAndListRoutes(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	created := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	if err := repo.SaveRoute(ctx, sampleRoute("route-1", created)); err != nil {
		t.Fatalf("save route: %v", err)
	}
	if err := repo.SaveRoute(ctx, sampleRoute("route-2", created.Add(time.Hour))); err != nil {
		t.Fatalf("save route: %v", err)
	}

	routes, err := repo.ListRoutes(ctx)
	if err != nil {
		t.Fatalf("list routes: %v", err)
	}
	if len(routes) != 2 {
		t.Fatalf("routes = %d, want 2", len(routes))
	}

	// Newest first.
	if routes[0].RouteID != "route-2" {
		t.Errorf("first route = %q, want route-2", routes[0].RouteID)
	}

	got := routes[1]
	if got.BusNumber != "Bus 1" || got.RouteIndex != 1 {
		t.Errorf("route fields = %q/%d, want Bus 1/1", got.BusNumber, got.RouteIndex)
	}
	if len(got.Waypoints) != 2 || got.Waypoints[1].Lng != 77.42 {
		t.Errorf("waypoints = %+v", got.Waypoints)
	}
	if got.PeakPeriod != domain.PeakMorning {
		t.Errorf("peak period = %q, want morning", got.PeakPeriod)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("created at = %v, want %v", got.CreatedAt, created)
	}
}

func TestSaveRouteDuplicateID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	created := time.Now().UTC()

	if err := repo.SaveRoute(ctx, sampleRoute("route-1", created)); err != nil {
		t.Fatalf("save route: %v", err)
	}
	if err := repo.SaveRoute(ctx, sampleRoute("route-1", created)); err == nil {
		t.Error("expected error saving a duplicate route id")
	}
}

func TestSaveAndListSchedules(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	created := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	if err := repo.SaveRoute(ctx, sampleRoute("route-1", created)); err != nil {
		t.Fatalf("save route: %v", err)
	}

	schedule := ports.SavedSchedule{
		ScheduleID:     "sched-1",
		RouteID:        "route-1",
		BusNumber:      "Bus 1",
		PeakPeriod:     domain.PeakMorning,
		FrequencyMin:   100,
		BusesNeeded:    1,
		FirstDeparture: "06:00",
		LastDeparture:  "19:20",
		TotalTrips:     9,
		DepartureTimes: []string{"06:00", "07:40", "09:20"},
		CreatedAt:      created,
	}
	if err := repo.SaveSchedule(ctx, schedule); err != nil {
		t.Fatalf("save schedule: %v", err)
	}

	schedules, err := repo.ListSchedules(ctx)
	if err != nil {
		t.Fatalf("list schedules: %v", err)
	}
	if len(schedules) != 1 {
		t.Fatalf("schedules = %d, want 1", len(schedules))
	}

	got := schedules[0]
	if got.RouteID != "route-1" || got.FrequencyMin != 100 {
		t.Errorf("schedule fields = %q/%d, want route-1/100", got.RouteID, got.FrequencyMin)
	}
	if len(got.DepartureTimes) != 3 || got.DepartureTimes[1] != "07:40" {
		t.Errorf("departure times = %+v", got.DepartureTimes)
	}
}

func TestListEmptyRepository(t *testing.T) {
	repo := newTestRepo(t)

	routes, err := repo.ListRoutes(context.Background())
	if err != nil {
		t.Fatalf("list routes: %v", err)
	}
	if len(routes) != 0 {
		t.Errorf("routes = %d, want 0", len(routes))
	}
}
