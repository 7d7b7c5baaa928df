package repositories

import (
	"bus-planning-service/internal/domain"
	"bus-planning-service/internal/platform/obs"
	"bus-planning-service/internal/ports"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// SqliteRouteRepository persists committed routes and their generated
// schedules. Waypoint paths and departure lists are stored as JSON text
// columns; the row is the unit of retrieval, nothing queries inside
// them.
type SqliteRouteRepository struct {
	DB *sql.DB
}

func NewSqliteRouteRepository(db *sql.DB) *SqliteRouteRepository {
	return &SqliteRouteRepository{DB: db}
}

func (s *SqliteRouteRepository) SaveRoute(ctx context.Context, route ports.SavedRoute) (err error) {
	defer obs.Time(ctx, "repo.SaveRoute")(&err)

	if s.DB == nil {
		return errors.New("route repository: db is nil")
	}

	waypoints, err := json.Marshal(route.Waypoints)
	if err != nil {
		return fmt.Errorf("save route: encode waypoints: %w", err)
	}

	q := `
	INSERT INTO saved_routes (
        route_id, bus_id, bus_number, route_index,
        source_name, dest_name,
        source_lat, source_lng, dest_lat, dest_lng,
        waypoints, distance_km, duration_min,
        gemini_score, traffic_score, reasoning,
        peak_hour, expected_passengers_daily, created_at
    )
    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`

	_, err = s.DB.ExecContext(ctx, q,
		route.RouteID, route.BusID, route.BusNumber, route.RouteIndex,
		route.SourceName, route.DestName,
		route.Source.Lat, route.Source.Lng, route.Destination.Lat, route.Destination.Lng,
		string(waypoints), route.DistanceKm, route.DurationMin,
		route.GeminiScore, route.TrafficScore, route.Reasoning,
		string(route.PeakPeriod), route.ExpectedDaily, route.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save route %s: %w", route.RouteID, err)
	}

	return nil
}

func (s *SqliteRouteRepository) SaveSchedule(ctx context.Context, schedule ports.SavedSchedule) (err error) {
	defer obs.Time(ctx, "repo.SaveSchedule")(&err)

	if s.DB == nil {
		return errors.New("route repository: db is nil")
	}

	departures, err := json.Marshal(schedule.DepartureTimes)
	if err != nil {
		return fmt.Errorf("save schedule: encode departure times: %w", err)
	}

	q := `
	INSERT INTO schedules (
        schedule_id, route_id, bus_number, peak_hour,
        frequency_min, buses_needed,
        first_departure, last_departure, total_trips,
        departure_times, created_at
    )
    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`

	_, err = s.DB.ExecContext(ctx, q,
		schedule.ScheduleID, schedule.RouteID, schedule.BusNumber, string(schedule.PeakPeriod),
		schedule.FrequencyMin, schedule.BusesNeeded,
		schedule.FirstDeparture, schedule.LastDeparture, schedule.TotalTrips,
		string(departures), schedule.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save schedule %s: %w", schedule.ScheduleID, err)
	}

	return nil
}

func (s *SqliteRouteRepository) ListRoutes(ctx context.Context) (_ []ports.SavedRoute, err error) {
	defer obs.Time(ctx, "repo.ListRoutes")(&err)

	if s.DB == nil {
		return nil, errors.New("route repository: db is nil")
	}

	q := `
	SELECT
        route_id, bus_id, bus_number, route_index,
        source_name, dest_name,
        source_lat, source_lng, dest_lat, dest_lng,
        waypoints, distance_km, duration_min,
        gemini_score, traffic_score, reasoning,
        peak_hour, expected_passengers_daily, created_at
    FROM saved_routes
    ORDER BY created_at DESC;
	`

	rows, err := s.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list routes: query saved_routes table: %w", err)
	}
	defer rows.Close()

	var out []ports.SavedRoute
	for rows.Next() {
		var r ports.SavedRoute
		var waypoints, peak, created string
		if err := rows.Scan(
			&r.RouteID, &r.BusID, &r.BusNumber, &r.RouteIndex,
			&r.SourceName, &r.DestName,
			&r.Source.Lat, &r.Source.Lng, &r.Destination.Lat, &r.Destination.Lng,
			&waypoints, &r.DistanceKm, &r.DurationMin,
			&r.GeminiScore, &r.TrafficScore, &r.Reasoning,
			&peak, &r.ExpectedDaily, &created,
		); err != nil {
			return nil, fmt.Errorf("list routes: scan rows: %w", err)
		}

		if err := json.Unmarshal([]byte(waypoints), &r.Waypoints); err != nil {
			return nil, fmt.Errorf("list routes: decode waypoints for %s: %w", r.RouteID, err)
		}
		r.PeakPeriod = domain.PeakPeriod(peak)
		if r.CreatedAt, err = time.Parse(time.RFC3339, created); err != nil {
			return nil, fmt.Errorf("list routes: parse created_at for %s: %w", r.RouteID, err)
		}

		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list routes: row iteration: %w", err)
	}

	return out, nil
}

func (s *SqliteRouteRepository) ListSchedules(ctx context.Context) (_ []ports.SavedSchedule, err error) {
	defer obs.Time(ctx, "repo.ListSchedules")(&err)

	if s.DB == nil {
		return nil, errors.New("route repository: db is nil")
	}

	q := `
	SELECT
        schedule_id, route_id, bus_number, peak_hour,
        frequency_min, buses_needed,
        first_departure, last_departure, total_trips,
        departure_times, created_at
    FROM schedules
    ORDER BY created_at DESC;
	`

	rows, err := s.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list schedules: query schedules table: %w", err)
	}
	defer rows.Close()

	var out []ports.SavedSchedule
	for rows.Next() {
		var sc ports.SavedSchedule
		var departures, peak, created string
		if err := rows.Scan(
			&sc.ScheduleID, &sc.RouteID, &sc.BusNumber, &peak,
			&sc.FrequencyMin, &sc.BusesNeeded,
			&sc.FirstDeparture, &sc.LastDeparture, &sc.TotalTrips,
			&departures, &created,
		); err != nil {
			return nil, fmt.Errorf("list schedules: scan rows: %w", err)
		}

		if err := json.Unmarshal([]byte(departures), &sc.DepartureTimes); err != nil {
			return nil, fmt.Errorf("list schedules: decode departures for %s: %w", sc.ScheduleID, err)
		}
		sc.PeakPeriod = domain.PeakPeriod(peak)
		if sc.CreatedAt, err = time.Parse(time.RFC3339, created); err != nil {
			return nil, fmt.Errorf("list schedules: parse created_at for %s: %w", sc.ScheduleID, err)
		}

		out = append(out, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list schedules: row iteration: %w", err)
	}

	return out, nil
}

var _ ports.RouteRepository = (*SqliteRouteRepository)(nil)
