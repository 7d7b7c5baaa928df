package services

import (
	"bus-planning-service/internal/domain"
	"bus-planning-service/internal/ports"
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrNothingToPlan means no vehicle resolved on both ends, so no
	// planning call was made.
	ErrNothingToPlan = errors.New("plan batch: no vehicle could be resolved, nothing to plan")

	// ErrAlignment means the scorer response did not line up with the
	// filtered request and routes could not be attributed safely.
	ErrAlignment = errors.New("plan batch: scorer response does not align with request")
)

// Resolution records the (possibly partial) geocoding outcome for one
// vehicle, keyed by vehicle identifier.
type Resolution struct {
	VehicleID    string
	SourceCoords *domain.Coordinates
	DestCoords   *domain.Coordinates
}

func (r Resolution) complete() bool {
	return r.SourceCoords != nil && r.DestCoords != nil
}

// BatchOutcome is the result of one full planning run.
type BatchOutcome struct {
	Results        []domain.PlanningResult
	Resolutions    []Resolution
	RequestedCount int
	ResolvedCount  int
}

type resolveJob struct {
	index int
	res   Resolution
	err   error
}

// PlanBatch runs the planning pipeline for a snapshot of the vehicle
// batch: resolve every address concurrently, drop vehicles unresolved on
// either end, issue one batched scoring call for the rest, and build a
// PlanningResult per scored vehicle with the first alternative selected.
//
// The scorer response is aligned positionally with the *filtered*
// request order, so results are zipped against the filtered slice and
// re-associated by vehicle identifier, never by index into the original
// batch.
func PlanBatch(
	ctx context.Context,
	vehicles []domain.PlannedVehicle,
	geocoder ports.Geocoder,
	scorer ports.RouteScorer,
) (*BatchOutcome, error) {
	if len(vehicles) == 0 {
		return nil, errors.New("plan batch: vehicle snapshot is empty")
	}

	// Resolve all addresses concurrently and wait for every lookup to
	// settle. A failed resolution excludes that vehicle; it never aborts
	// the batch.
	sem := make(chan struct{}, 5)
	jobs := make(chan resolveJob, len(vehicles))
	var wg sync.WaitGroup

	for i, v := range vehicles {
		wg.Add(1)
		go func(i int, v domain.PlannedVehicle) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			res := Resolution{VehicleID: v.ID}

			src, ok, err := geocoder.Resolve(ctx, v.Source)
			if err != nil {
				jobs <- resolveJob{index: i, err: fmt.Errorf("plan batch: resolve source for %q: %w", v.Label, err)}
				return
			}
			if ok {
				res.SourceCoords = &src
			}

			dst, ok, err := geocoder.Resolve(ctx, v.Destination)
			if err != nil {
				jobs <- resolveJob{index: i, err: fmt.Errorf("plan batch: resolve destination for %q: %w", v.Label, err)}
				return
			}
			if ok {
				res.DestCoords = &dst
			}

			jobs <- resolveJob{index: i, res: res}
		}(i, v)
	}

	wg.Wait()
	close(jobs)

	resolutions := make([]Resolution, len(vehicles))
	for job := range jobs {
		if job.err != nil {
			return nil, job.err
		}
		resolutions[job.index] = job.res
	}

	// Filter in original order; the scorer sees only fully resolved
	// tuples and answers in that same order.
	filtered := make([]domain.PlannedVehicle, 0, len(vehicles))
	reqs := make([]ports.ScoreRequest, 0, len(vehicles))
	for i, v := range vehicles {
		res := resolutions[i]
		if !res.complete() {
			continue
		}
		v.SourceCoords = res.SourceCoords
		v.DestCoords = res.DestCoords
		filtered = append(filtered, v)
		reqs = append(reqs, ports.ScoreRequest{
			Source:      *res.SourceCoords,
			Destination: *res.DestCoords,
			PeakPeriod:  v.PeakPeriod,
		})
	}

	if len(filtered) == 0 {
		return nil, ErrNothingToPlan
	}

	scored, err := scorer.PlanBatch(ctx, reqs)
	if err != nil {
		return nil, fmt.Errorf("plan batch: score routes: %w", err)
	}

	if len(scored) != len(filtered) {
		return nil, fmt.Errorf("%w: sent %d tuples, got %d results", ErrAlignment, len(filtered), len(scored))
	}

	results := make([]domain.PlanningResult, 0, len(filtered))
	for i, v := range filtered {
		results = append(results, domain.PlanningResult{
			VehicleID:     v.ID,
			Label:         v.Label,
			Color:         v.Color,
			Source:        scored[i].Source,
			Destination:   scored[i].Destination,
			PeakPeriod:    scored[i].PeakPeriod,
			Alternatives:  scored[i].Alternatives,
			SelectedIndex: 0,
		})
	}

	return &BatchOutcome{
		Results:        results,
		Resolutions:    resolutions,
		RequestedCount: len(vehicles),
		ResolvedCount:  len(filtered),
	}, nil
}
