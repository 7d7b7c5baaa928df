package ports

import (
	"bus-planning-service/internal/domain"
	"context"
)

// Contract for resolving free-text locations within the console's bias region.
//
// An unsuccessful lookup (not found, rate limit, transport failure) is
// reported as ok=false, not as an error, so a single bad address can
// never fail a whole planning batch. The error return is reserved for
// context cancellation and programming mistakes.
type Geocoder interface {
	Resolve(ctx context.Context, address string) (coords domain.Coordinates, ok bool, err error)
}

// GeocodeCache is a boundary for persisting address -> coordinate lookups.
type GeocodeCache interface {
	// Fetch cached coordinates for the given addresses.
	GetMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error)
	// Store address -> coordinate mappings in the cache.
	PutMany(ctx context.Context, results map[string]domain.Coordinates) error
}
