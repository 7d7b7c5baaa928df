package services

import (
	"bus-planning-service/internal/ports"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CommitResult is the acknowledgment returned to the operator after a
// route is persisted.
type CommitResult struct {
	RouteID        string
	Recommendation *FleetRecommendation
	Schedule       *DepartureSchedule
}

// CommitRoute persists one vehicle's selected alternative. When demand
// was supplied the fleet recommendation and departure schedule are
// derived first, so a degenerate input fails the commit before anything
// is written and the operator can retry; other vehicles' saved state is
// never affected.
func CommitRoute(ctx context.Context, in CommitInput, repo ports.RouteRepository) (*CommitResult, error) {
	rec, err := RecommendFleet(in.ExpectedDaily, in.Alternative.DurationMin)
	if err != nil {
		return nil, fmt.Errorf("commit route: %w", err)
	}

	var schedule *DepartureSchedule
	if rec != nil {
		schedule, err = BuildSchedule(rec)
		if err != nil {
			return nil, fmt.Errorf("commit route: %w", err)
		}
	}

	routeID := uuid.NewString()
	now := time.Now().UTC()

	route := ports.SavedRoute{
		RouteID:       routeID,
		BusID:         in.VehicleID,
		BusNumber:     in.Label,
		RouteIndex:    in.RouteIndex,
		SourceName:    in.SourceName,
		DestName:      in.DestName,
		Source:        in.Source,
		Destination:   in.Destination,
		Waypoints:     in.Alternative.Waypoints,
		DistanceKm:    in.Alternative.DistanceKm,
		DurationMin:   in.Alternative.DurationMin,
		GeminiScore:   in.Alternative.GeminiScore,
		TrafficScore:  in.Alternative.TrafficScore,
		Reasoning:     in.Alternative.Reasoning,
		PeakPeriod:    in.PeakPeriod,
		ExpectedDaily: in.ExpectedDaily,
		CreatedAt:     now,
	}

	if err := repo.SaveRoute(ctx, route); err != nil {
		return nil, fmt.Errorf("commit route: save route: %w", err)
	}

	if rec != nil && schedule != nil {
		saved := ports.SavedSchedule{
			ScheduleID:     uuid.NewString(),
			RouteID:        routeID,
			BusNumber:      in.Label,
			PeakPeriod:     in.PeakPeriod,
			FrequencyMin:   rec.FrequencyMinutes,
			BusesNeeded:    rec.VehiclesNeeded,
			FirstDeparture: schedule.FirstDeparture,
			LastDeparture:  schedule.LastDeparture,
			TotalTrips:     schedule.TotalTrips,
			DepartureTimes: schedule.DepartureTimes,
			CreatedAt:      now,
		}
		if err := repo.SaveSchedule(ctx, saved); err != nil {
			return nil, fmt.Errorf("commit route: save schedule for route %s: %w", routeID, err)
		}
	}

	return &CommitResult{
		RouteID:        routeID,
		Recommendation: rec,
		Schedule:       schedule,
	}, nil
}
