package viz

import (
	"bus-planning-service/internal/domain"
	"sync"
)

// Polyline is one drawn element held for the front end to fetch.
type Polyline struct {
	Path    []domain.Coordinates
	Color   string
	Weight  int
	Opacity float64
	ZIndex  int
}

// DisplayList implements Surface as a server-held list of drawn
// elements. The browser map polls it and renders whatever is current,
// which keeps the rendered state a pure function of the last redraw.
//
// Writes arrive under the session lock; reads come from the display
// endpoint, so the list carries its own lock.
type DisplayList struct {
	mu          sync.Mutex
	initialized bool
	center      domain.Coordinates
	zoom        int
	elements    []Polyline
}

func NewDisplayList() *DisplayList {
	return &DisplayList{}
}

func (d *DisplayList) Initialize(center domain.Coordinates, zoom int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.initialized = true
	d.center = center
	d.zoom = zoom
}

func (d *DisplayList) DrawPolyline(path []domain.Coordinates, color string, weight int, opacity float64, zIndex int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.initialized {
		return
	}
	d.elements = append(d.elements, Polyline{
		Path:    path,
		Color:   color,
		Weight:  weight,
		Opacity: opacity,
		ZIndex:  zIndex,
	})
}

func (d *DisplayList) ClearAll() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.elements = nil
}

// Elements returns a copy of the current drawn set.
func (d *DisplayList) Elements() []Polyline {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Polyline, len(d.elements))
	copy(out, d.elements)
	return out
}

// View reports the configured viewport alongside the drawn elements.
func (d *DisplayList) View() (center domain.Coordinates, zoom int, initialized bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.center, d.zoom, d.initialized
}
