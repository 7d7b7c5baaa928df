package ports

import (
	"bus-planning-service/internal/domain"
	"context"
	"time"
)

// SavedRoute is the persistence payload for one committed selection.
type SavedRoute struct {
	RouteID       string
	BusID         string
	BusNumber     string
	RouteIndex    int
	SourceName    string
	DestName      string
	Source        domain.Coordinates
	Destination   domain.Coordinates
	Waypoints     []domain.Coordinates
	DistanceKm    float64
	DurationMin   float64
	GeminiScore   float64
	TrafficScore  float64
	Reasoning     string
	PeakPeriod    domain.PeakPeriod
	ExpectedDaily int
	CreatedAt     time.Time
}

// SavedSchedule is the generated departure cadence persisted alongside a
// route when demand was supplied.
type SavedSchedule struct {
	ScheduleID     string
	RouteID        string
	BusNumber      string
	PeakPeriod     domain.PeakPeriod
	FrequencyMin   int
	BusesNeeded    int
	FirstDeparture string
	LastDeparture  string
	TotalTrips     int
	DepartureTimes []string
	CreatedAt      time.Time
}

// Port: a boundary for persisting and listing committed routes.
type RouteRepository interface {
	SaveRoute(ctx context.Context, route SavedRoute) error
	SaveSchedule(ctx context.Context, schedule SavedSchedule) error
	ListRoutes(ctx context.Context) ([]SavedRoute, error)
	ListSchedules(ctx context.Context) ([]SavedSchedule, error)
}
