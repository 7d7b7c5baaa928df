package geocode

import (
	"bus-planning-service/internal/domain"
	"context"
)

// MockGeocoder resolves from a fixed table; addresses absent from the
// table come back unresolved.
type MockGeocoder struct {
	m map[string]domain.Coordinates
}

func NewMockGeocoder(known map[string]domain.Coordinates) *MockGeocoder {
	m := make(map[string]domain.Coordinates, len(known))
	for k, v := range known {
		m[k] = v
	}
	return &MockGeocoder{m: m}
}

func (g *MockGeocoder) Resolve(ctx context.Context, address string) (domain.Coordinates, bool, error) {
	c, ok := g.m[address]
	if !ok {
		return domain.Coordinates{}, false, nil
	}
	return c, true, nil
}
