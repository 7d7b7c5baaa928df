package cache

import (
	"bus-planning-service/internal/domain"
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedisCache(t *testing.T) *RedisGeocodeCache {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisGeocodeCache(client)
}

func TestRedisGeocodeCacheRoundTrip(t *testing.T) {
	c := newTestRedisCache(t)
	ctx := context.Background()

	stored := map[string]domain.Coordinates{
		"MP Nagar":   {Lat: 23.23, Lng: 77.43},
		"New Market": {Lat: 23.25, Lng: 77.40},
	}
	if err := c.PutMany(ctx, stored); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := c.GetMany(ctx, []string{"MP Nagar", "New Market", "Unknown Stop"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("hits = %d, want 2", len(got))
	}
	if got["MP Nagar"] != stored["MP Nagar"] {
		t.Errorf("MP Nagar = %+v, want %+v", got["MP Nagar"], stored["MP Nagar"])
	}
	if _, ok := got["Unknown Stop"]; ok {
		t.Error("unknown address reported as a hit")
	}
}

func TestRedisGeocodeCacheOverwrite(t *testing.T) {
	c := newTestRedisCache(t)
	ctx := context.Background()

	if err := c.PutMany(ctx, map[string]domain.Coordinates{"Habibganj": {Lat: 1, Lng: 2}}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := c.PutMany(ctx, map[string]domain.Coordinates{"Habibganj": {Lat: 23.22, Lng: 77.44}}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	got, err := c.GetMany(ctx, []string{"Habibganj"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got["Habibganj"].Lat != 23.22 {
		t.Errorf("Habibganj = %+v, want the overwritten value", got["Habibganj"])
	}
}

func TestRedisGeocodeCacheSkipsBlankKeys(t *testing.T) {
	c := newTestRedisCache(t)
	ctx := context.Background()

	if err := c.PutMany(ctx, map[string]domain.Coordinates{"  ": {Lat: 1, Lng: 2}}); err == nil {
		t.Error("expected error for a blank address key")
	}

	got, err := c.GetMany(ctx, []string{"", "  "})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("blank addresses produced %d hits", len(got))
	}
}

func TestRedisGeocodeCacheEmptyPut(t *testing.T) {
	c := newTestRedisCache(t)

	if err := c.PutMany(context.Background(), nil); err != nil {
		t.Errorf("empty put should be a no-op, got: %v", err)
	}
}
