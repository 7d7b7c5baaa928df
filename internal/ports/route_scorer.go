package ports

import (
	"bus-planning-service/internal/domain"
	"context"
)

// One (source, destination, peak-period) tuple submitted for scoring.
type ScoreRequest struct {
	Source      domain.Coordinates
	Destination domain.Coordinates
	PeakPeriod  domain.PeakPeriod
}

// Ranked alternatives for one request tuple, echoed with its inputs.
type ScoredRoutes struct {
	Source       domain.Coordinates
	Destination  domain.Coordinates
	PeakPeriod   domain.PeakPeriod
	Alternatives []domain.RouteAlternative
}

// Contract for the external AI route-ranking service.
//
// PlanBatch issues exactly one call for the whole request slice and the
// returned slice is positionally aligned with it. Implementations must
// reject a response whose length differs from the request length.
type RouteScorer interface {
	PlanBatch(ctx context.Context, reqs []ScoreRequest) ([]ScoredRoutes, error)
}
