package domain

// RouteAlternative is one ranked candidate path returned by the external
// scorer. It is immutable once received; the console only selects or
// deselects it.
//
// Rank (1 = best) is assigned by the scorer and is display-only. Array
// position within a PlanningResult is the index used for selection and
// redraw addressing, and the two are not guaranteed to agree.
type RouteAlternative struct {
	Index        int
	DistanceKm   float64
	DurationMin  float64
	Waypoints    []Coordinates
	GeminiScore  float64
	TrafficScore float64
	Reasoning    string
	Rank         int
}

// PlanningResult pairs one resolved vehicle with its ranked alternatives
// and the currently selected index.
//
// SelectedIndex defaults to 0: the first array entry, which is not
// necessarily rank 1. Vehicles that failed address resolution produce no
// PlanningResult at all.
type PlanningResult struct {
	VehicleID     string
	Label         string
	Color         string
	Source        Coordinates
	Destination   Coordinates
	PeakPeriod    PeakPeriod
	Alternatives  []RouteAlternative
	SelectedIndex int
}

// Selected returns the currently selected alternative, or nil when the
// result carries no alternatives.
func (p *PlanningResult) Selected() *RouteAlternative {
	if p.SelectedIndex < 0 || p.SelectedIndex >= len(p.Alternatives) {
		return nil
	}
	return &p.Alternatives[p.SelectedIndex]
}
