package scorer

import (
	"bus-planning-service/internal/domain"
	"bus-planning-service/internal/ports"
	"context"
)

// MockScorer answers every request tuple with a fixed set of
// alternatives, echoing the tuple's inputs. An optional Gate channel
// blocks each call until released, for exercising in-flight behavior.
type MockScorer struct {
	Alternatives []domain.RouteAlternative
	Gate         chan struct{}
	Calls        int
}

func (m *MockScorer) PlanBatch(ctx context.Context, reqs []ports.ScoreRequest) ([]ports.ScoredRoutes, error) {
	m.Calls++

	if m.Gate != nil {
		select {
		case <-m.Gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	out := make([]ports.ScoredRoutes, 0, len(reqs))
	for _, r := range reqs {
		alts := make([]domain.RouteAlternative, len(m.Alternatives))
		copy(alts, m.Alternatives)
		out = append(out, ports.ScoredRoutes{
			Source:       r.Source,
			Destination:  r.Destination,
			PeakPeriod:   r.PeakPeriod,
			Alternatives: alts,
		})
	}
	return out, nil
}
