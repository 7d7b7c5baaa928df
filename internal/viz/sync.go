package viz

import "bus-planning-service/internal/domain"

type strokeStyle struct {
	weight  int
	opacity float64
}

// Per-alternative-index base styling: index 0 boldest, increasingly
// lighter for 1 and 2, independent of which index is selected.
var strokeStyles = []strokeStyle{
	{weight: 6, opacity: 0.8},
	{weight: 5, opacity: 0.6},
	{weight: 4, opacity: 0.5},
}

// Synchronizer keeps the drawing surface consistent with the current
// selection state. Every redraw is a full clear-and-redraw so no stale
// elements can survive a selection change.
type Synchronizer struct {
	surface Surface
	ready   bool
}

func NewSynchronizer(surface Surface) *Synchronizer {
	return &Synchronizer{surface: surface}
}

// Initialize prepares the surface. Until this has run, redraws are
// silent no-ops while selection and calculation keep functioning.
func (s *Synchronizer) Initialize(center domain.Coordinates, zoom int) {
	if s == nil || s.surface == nil {
		return
	}
	s.surface.Initialize(center, zoom)
	s.ready = true
}

// RedrawAll clears the surface and draws every alternative of every
// vehicle from the given snapshot. The selected alternative of each
// vehicle is emphasized (full opacity, heavier weight, top z-order);
// the others sit beneath in reduced emphasis.
func (s *Synchronizer) RedrawAll(results []domain.PlanningResult) {
	if s == nil || !s.ready {
		return
	}

	s.surface.ClearAll()

	for _, r := range results {
		for i := range r.Alternatives {
			style := strokeStyles[len(strokeStyles)-1]
			if i < len(strokeStyles) {
				style = strokeStyles[i]
			}

			weight := style.weight
			opacity := style.opacity
			zIndex := 100 + i

			if i == r.SelectedIndex {
				weight += 2
				opacity = 1.0
				zIndex = 1000
			}

			s.surface.DrawPolyline(r.Alternatives[i].Waypoints, r.Color, weight, opacity, zIndex)
		}
	}
}

// DisposeAll removes every drawn element without tearing down the
// surface itself.
func (s *Synchronizer) DisposeAll() {
	if s == nil || !s.ready {
		return
	}
	s.surface.ClearAll()
}
