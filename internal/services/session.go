package services

import (
	"bus-planning-service/internal/domain"
	"bus-planning-service/internal/ports"
	"bus-planning-service/internal/viz"
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrPlanInFlight rejects a planning submit while one is already running.
var ErrPlanInFlight = errors.New("session: a planning run is already in flight")

// VehiclePatch carries optional field updates for one vehicle. Nil
// fields are left untouched.
type VehiclePatch struct {
	Label              *string
	Source             *string
	Destination        *string
	PeakPeriod         *domain.PeakPeriod
	ExpectedPassengers *int
}

// PlanSummary is what a completed planning run reports back to the
// operator.
type PlanSummary struct {
	Results        []domain.PlanningResult
	RequestedCount int
	ResolvedCount  int
}

// SelectionUpdate reports the state after one selection change.
type SelectionUpdate struct {
	Result         domain.PlanningResult
	Recommendation *FleetRecommendation
	// RecommendationIssue carries a calculator rejection (degenerate
	// inputs) without undoing the selection itself.
	RecommendationIssue string
}

// CommitInput is the snapshot a save operation captures before any
// suspension point, so further browsing cannot tear it.
type CommitInput struct {
	VehicleID     string
	Label         string
	SourceName    string
	DestName      string
	Source        domain.Coordinates
	Destination   domain.Coordinates
	PeakPeriod    domain.PeakPeriod
	RouteIndex    int
	Alternative   domain.RouteAlternative
	ExpectedDaily int
}

// Session owns the single planning run's mutable state: the vehicle
// batch, the PlanningResult array, and the drawn-elements surface. All
// mutations take the session lock, and every redraw happens inside it
// from a consistent snapshot.
type Session struct {
	mu       sync.Mutex
	batch    *domain.Batch
	results  []domain.PlanningResult
	planning bool
	viz      *viz.Synchronizer
}

func NewSession(sync *viz.Synchronizer) *Session {
	return &Session{
		batch: domain.NewBatch(),
		viz:   sync,
	}
}

// Vehicles returns value copies of the current batch entries.
func (s *Session) Vehicles() []domain.PlannedVehicle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.batch.Snapshot()
}

func (s *Session) AddVehicle() (domain.PlannedVehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.batch.Add()
	if err != nil {
		return domain.PlannedVehicle{}, err
	}
	return *v, nil
}

func (s *Session) RemoveVehicle(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.batch.Remove(id)
}

// UpdateVehicle applies a field patch. Editing an address invalidates
// any previously resolved coordinates for that end.
func (s *Session) UpdateVehicle(id string, patch VehiclePatch) (domain.PlannedVehicle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := s.batch.Find(id)
	if v == nil {
		return domain.PlannedVehicle{}, fmt.Errorf("update vehicle: no vehicle with id %q", id)
	}

	if patch.Label != nil {
		v.Label = *patch.Label
	}
	if patch.Source != nil {
		v.Source = *patch.Source
		v.SourceCoords = nil
	}
	if patch.Destination != nil {
		v.Destination = *patch.Destination
		v.DestCoords = nil
	}
	if patch.PeakPeriod != nil {
		if !patch.PeakPeriod.Valid() {
			return domain.PlannedVehicle{}, fmt.Errorf("update vehicle: invalid peak period %q", *patch.PeakPeriod)
		}
		v.PeakPeriod = *patch.PeakPeriod
	}
	if patch.ExpectedPassengers != nil {
		if *patch.ExpectedPassengers < 0 {
			return domain.PlannedVehicle{}, errors.New("update vehicle: expected passengers cannot be negative")
		}
		v.ExpectedPassengers = *patch.ExpectedPassengers
	}

	return *v, nil
}

// Plan runs the batch pipeline. The batch is snapshotted before the
// suspension points and the session lock is released for their
// duration; on success the result array is replaced wholesale and the
// surface redrawn. On failure the prior results and drawing are left
// untouched. A second submit while one is in flight is rejected.
func (s *Session) Plan(ctx context.Context, geocoder ports.Geocoder, scorer ports.RouteScorer) (*PlanSummary, error) {
	s.mu.Lock()
	if s.planning {
		s.mu.Unlock()
		return nil, ErrPlanInFlight
	}
	s.planning = true
	snapshot := s.batch.Snapshot()
	s.mu.Unlock()

	outcome, err := PlanBatch(ctx, snapshot, geocoder, scorer)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.planning = false

	if err != nil {
		return nil, err
	}

	for _, res := range outcome.Resolutions {
		if v := s.batch.Find(res.VehicleID); v != nil {
			v.SourceCoords = res.SourceCoords
			v.DestCoords = res.DestCoords
		}
	}

	s.results = outcome.Results
	s.viz.RedrawAll(s.snapshotLocked())

	return &PlanSummary{
		Results:        s.snapshotLocked(),
		RequestedCount: outcome.RequestedCount,
		ResolvedCount:  outcome.ResolvedCount,
	}, nil
}

// Select changes one vehicle's selected alternative, redraws from the
// new snapshot, and recomputes the fleet recommendation for that
// vehicle's demand against the newly selected duration.
//
// An out-of-range alternative index is clamped rather than corrupting
// state; an out-of-range vehicle index is an error.
func (s *Session) Select(vehicleIndex, altIndex int) (*SelectionUpdate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if vehicleIndex < 0 || vehicleIndex >= len(s.results) {
		return nil, fmt.Errorf("select: vehicle index %d out of range (have %d results)", vehicleIndex, len(s.results))
	}

	r := &s.results[vehicleIndex]
	if len(r.Alternatives) == 0 {
		return nil, fmt.Errorf("select: vehicle %q has no alternatives", r.Label)
	}

	if altIndex < 0 {
		altIndex = 0
	}
	if altIndex >= len(r.Alternatives) {
		altIndex = len(r.Alternatives) - 1
	}
	r.SelectedIndex = altIndex

	s.viz.RedrawAll(s.snapshotLocked())

	update := &SelectionUpdate{Result: copyResult(*r)}

	demand := 0
	if v := s.batch.Find(r.VehicleID); v != nil {
		demand = v.ExpectedPassengers
	}
	if demand > 0 {
		rec, err := RecommendFleet(demand, r.Selected().DurationMin)
		if err != nil {
			update.RecommendationIssue = err.Error()
		} else {
			update.Recommendation = rec
		}
	}

	return update, nil
}

// Results returns a consistent deep-enough copy of the current
// PlanningResult array. Alternatives are immutable and may be shared.
func (s *Session) Results() []domain.PlanningResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// CommitSnapshot captures everything a save needs for one vehicle while
// holding the lock, so the save request itself can run concurrently
// with further browsing.
func (s *Session) CommitSnapshot(vehicleIndex int) (CommitInput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if vehicleIndex < 0 || vehicleIndex >= len(s.results) {
		return CommitInput{}, fmt.Errorf("commit: vehicle index %d out of range (have %d results)", vehicleIndex, len(s.results))
	}

	r := s.results[vehicleIndex]
	selected := r.Selected()
	if selected == nil {
		return CommitInput{}, fmt.Errorf("commit: vehicle %q has no selected alternative", r.Label)
	}

	in := CommitInput{
		VehicleID:   r.VehicleID,
		Label:       r.Label,
		Source:      r.Source,
		Destination: r.Destination,
		PeakPeriod:  r.PeakPeriod,
		RouteIndex:  r.SelectedIndex,
		Alternative: *selected,
	}

	if v := s.batch.Find(r.VehicleID); v != nil {
		in.Label = v.Label
		in.SourceName = v.Source
		in.DestName = v.Destination
		in.ExpectedDaily = v.ExpectedPassengers
	}

	return in, nil
}

func (s *Session) snapshotLocked() []domain.PlanningResult {
	out := make([]domain.PlanningResult, 0, len(s.results))
	for _, r := range s.results {
		out = append(out, copyResult(r))
	}
	return out
}

func copyResult(r domain.PlanningResult) domain.PlanningResult {
	alts := make([]domain.RouteAlternative, len(r.Alternatives))
	copy(alts, r.Alternatives)
	r.Alternatives = alts
	return r
}
