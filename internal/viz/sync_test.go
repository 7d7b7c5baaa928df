package viz

import (
	"bus-planning-service/internal/domain"
	"testing"
)

func sampleResults() []domain.PlanningResult {
	alts := []domain.RouteAlternative{
		{Index: 0, Waypoints: []domain.Coordinates{{Lat: 23.2, Lng: 77.4}, {Lat: 23.25, Lng: 77.45}}},
		{Index: 1, Waypoints: []domain.Coordinates{{Lat: 23.2, Lng: 77.4}, {Lat: 23.22, Lng: 77.42}}},
		{Index: 2, Waypoints: []domain.Coordinates{{Lat: 23.2, Lng: 77.4}, {Lat: 23.18, Lng: 77.38}}},
	}

	return []domain.PlanningResult{
		{VehicleID: "v1", Color: "#FF0000", Alternatives: alts, SelectedIndex: 0},
		{VehicleID: "v2", Color: "#00FF00", Alternatives: alts, SelectedIndex: 2},
	}
}

func TestRedrawAllIsIdempotent(t *testing.T) {
	display := NewDisplayList()
	sync := NewSynchronizer(display)
	sync.Initialize(domain.Coordinates{Lat: 23.2599, Lng: 77.4126}, 12)

	results := sampleResults()

	sync.RedrawAll(results)
	sync.RedrawAll(results)
	sync.RedrawAll(results)

	// Full clear before each redraw: element count stays 3 per vehicle.
	if got := len(display.Elements()); got != 6 {
		t.Fatalf("elements = %d, want 6", got)
	}
}

func TestRedrawBeforeInitializeIsNoOp(t *testing.T) {
	display := NewDisplayList()
	sync := NewSynchronizer(display)

	sync.RedrawAll(sampleResults())

	if got := len(display.Elements()); got != 0 {
		t.Errorf("elements before initialize = %d, want 0", got)
	}
	if _, _, initialized := display.View(); initialized {
		t.Error("display reports initialized without Initialize")
	}
}

func TestRedrawEmphasizesSelected(t *testing.T) {
	display := NewDisplayList()
	sync := NewSynchronizer(display)
	sync.Initialize(domain.Coordinates{Lat: 23.2599, Lng: 77.4126}, 12)

	sync.RedrawAll(sampleResults())

	elements := display.Elements()
	if len(elements) != 6 {
		t.Fatalf("elements = %d, want 6", len(elements))
	}

	// Vehicle 1: index 0 selected (base weight 6 -> 8).
	first := elements[0]
	if first.Weight != 8 || first.Opacity != 1.0 || first.ZIndex != 1000 {
		t.Errorf("selected index 0 style = %+v, want weight 8 opacity 1.0 z 1000", first)
	}

	// Vehicle 1: index 1 unselected keeps its base style.
	second := elements[1]
	if second.Weight != 5 || second.Opacity != 0.6 || second.ZIndex != 101 {
		t.Errorf("unselected index 1 style = %+v, want weight 5 opacity 0.6 z 101", second)
	}

	// Vehicle 2: index 2 selected (base weight 4 -> 6).
	sixth := elements[5]
	if sixth.Weight != 6 || sixth.Opacity != 1.0 || sixth.ZIndex != 1000 {
		t.Errorf("selected index 2 style = %+v, want weight 6 opacity 1.0 z 1000", sixth)
	}
}

func TestRedrawStyleFallbackBeyondThree(t *testing.T) {
	display := NewDisplayList()
	sync := NewSynchronizer(display)
	sync.Initialize(domain.Coordinates{Lat: 23.2599, Lng: 77.4126}, 12)

	alts := make([]domain.RouteAlternative, 5)
	for i := range alts {
		alts[i] = domain.RouteAlternative{Index: i, Waypoints: []domain.Coordinates{{Lat: 23.2, Lng: 77.4}}}
	}

	sync.RedrawAll([]domain.PlanningResult{
		{VehicleID: "v1", Color: "#0000FF", Alternatives: alts, SelectedIndex: 0},
	})

	elements := display.Elements()
	if len(elements) != 5 {
		t.Fatalf("elements = %d, want 5", len(elements))
	}

	// Indexes past the style table reuse the last (lightest) style.
	for i := 3; i < 5; i++ {
		if elements[i].Weight != 4 || elements[i].Opacity != 0.5 {
			t.Errorf("element %d style = %+v, want weight 4 opacity 0.5", i, elements[i])
		}
		if elements[i].ZIndex != 100+i {
			t.Errorf("element %d z = %d, want %d", i, elements[i].ZIndex, 100+i)
		}
	}
}

func TestDisposeAllClearsElements(t *testing.T) {
	display := NewDisplayList()
	sync := NewSynchronizer(display)
	sync.Initialize(domain.Coordinates{Lat: 23.2599, Lng: 77.4126}, 12)

	sync.RedrawAll(sampleResults())
	sync.DisposeAll()

	if got := len(display.Elements()); got != 0 {
		t.Errorf("elements after dispose = %d, want 0", got)
	}
	if _, _, initialized := display.View(); !initialized {
		t.Error("dispose tore down the surface")
	}
}
