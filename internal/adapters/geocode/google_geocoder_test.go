package geocode

import (
	"bus-planning-service/internal/domain"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

func geocodeOK(lat, lng float64) map[string]any {
	return map[string]any{
		"status": "OK",
		"results": []map[string]any{
			{"geometry": map[string]any{"location": map[string]float64{"lat": lat, "lng": lng}}},
		},
	}
}

// tableCache is an in-memory GeocodeCache for tests.
type tableCache struct {
	mu sync.Mutex
	m  map[string]domain.Coordinates
}

func newTableCache() *tableCache {
	return &tableCache{m: map[string]domain.Coordinates{}}
}

func (c *tableCache) GetMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := map[string]domain.Coordinates{}
	for _, a := range addresses {
		if v, ok := c.m[a]; ok {
			out[a] = v
		}
	}
	return out, nil
}

func (c *tableCache) PutMany(ctx context.Context, results map[string]domain.Coordinates) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, v := range results {
		c.m[k] = v
	}
	return nil
}

func TestResolveBiasesTowardCity(t *testing.T) {
	var gotAddress, gotBounds, gotRegion string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotAddress = q.Get("address")
		gotBounds = q.Get("bounds")
		gotRegion = q.Get("region")
		json.NewEncoder(w).Encode(geocodeOK(23.2332, 77.4343))
	}))
	defer srv.Close()

	g := NewGoogleGeocoder("test-key", nil).WithBaseURL(srv.URL)

	coords, ok, err := g.Resolve(context.Background(), "  MP   Nagar ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected a resolved address")
	}

	if coords.Lat != 23.2332 || coords.Lng != 77.4343 {
		t.Errorf("coords = %+v", coords)
	}
	if gotAddress != "MP Nagar"+cityBiasSuffix {
		t.Errorf("address = %q, want the normalized name with the city suffix", gotAddress)
	}
	if gotBounds != cityBounds {
		t.Errorf("bounds = %q, want %q", gotBounds, cityBounds)
	}
	if gotRegion != biasRegion {
		t.Errorf("region = %q, want %q", gotRegion, biasRegion)
	}
}

func TestResolveSkipsSuffixWhenCityNamed(t *testing.T) {
	var gotAddress string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAddress = r.URL.Query().Get("address")
		json.NewEncoder(w).Encode(geocodeOK(23.25, 77.41))
	}))
	defer srv.Close()

	g := NewGoogleGeocoder("test-key", nil).WithBaseURL(srv.URL)

	if _, _, err := g.Resolve(context.Background(), "New Market, Bhopal"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Count(gotAddress, "Bhopal") != 1 {
		t.Errorf("address = %q, city should appear exactly once", gotAddress)
	}
}

func TestResolveZeroResultsIsUnresolved(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"status": "ZERO_RESULTS", "results": []any{}})
	}))
	defer srv.Close()

	g := NewGoogleGeocoder("test-key", nil).WithBaseURL(srv.URL)

	_, ok, err := g.Resolve(context.Background(), "Atlantis Bus Stand")
	if err != nil {
		t.Fatalf("unresolved address must not be an error, got: %v", err)
	}
	if ok {
		t.Error("expected ok=false for ZERO_RESULTS")
	}
}

func TestResolveEmptyAddress(t *testing.T) {
	g := NewGoogleGeocoder("test-key", nil)

	_, ok, err := g.Resolve(context.Background(), "   ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected ok=false for a blank address")
	}
}

func TestResolveUsesAndFillsCache(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(geocodeOK(23.27, 77.33))
	}))
	defer srv.Close()

	c := newTableCache()
	g := NewGoogleGeocoder("test-key", c).WithBaseURL(srv.URL)

	for i := 0; i < 3; i++ {
		coords, ok, err := g.Resolve(context.Background(), "Bairagarh")
		if err != nil || !ok {
			t.Fatalf("resolve %d: ok=%v err=%v", i, ok, err)
		}
		if coords.Lat != 23.27 {
			t.Errorf("resolve %d coords = %+v", i, coords)
		}
	}

	if calls != 1 {
		t.Errorf("upstream calls = %d, want 1 (cache misses only)", calls)
	}
}

func TestResolveNonRetryableFailureIsUnresolved(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"key invalid"}`, http.StatusForbidden)
	}))
	defer srv.Close()

	g := NewGoogleGeocoder("bad-key", nil).WithBaseURL(srv.URL)

	_, ok, err := g.Resolve(context.Background(), "MP Nagar")
	if err != nil {
		t.Fatalf("transport failure must not surface as an error, got: %v", err)
	}
	if ok {
		t.Error("expected ok=false after an upstream refusal")
	}
}

func TestResolveCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := NewGoogleGeocoder("test-key", nil)

	if _, _, err := g.Resolve(ctx, "MP Nagar"); err == nil {
		t.Fatal("expected an error for a cancelled context")
	}
}
