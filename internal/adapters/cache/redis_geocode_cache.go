package cache

import (
	"bus-planning-service/internal/domain"
	"bus-planning-service/internal/platform/obs"
	"bus-planning-service/internal/ports"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const geocodeKeyPrefix = "geocode:"

// RedisGeocodeCache stores address -> coordinates mappings as JSON
// values. Entries expire so a stale upstream correction eventually
// propagates.
type RedisGeocodeCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisGeocodeCache(client *redis.Client) *RedisGeocodeCache {
	return &RedisGeocodeCache{
		client: client,
		ttl:    30 * 24 * time.Hour,
	}
}

// Fetch cached coordinates for the given addresses.
func (r *RedisGeocodeCache) GetMany(
	ctx context.Context,
	addresses []string,
) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode.cache.GetMany")(&err)

	if r.client == nil {
		return nil, errors.New("geocode cache: redis client is nil")
	}

	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(addresses))
	keys := make([]string, 0, len(addresses))
	for _, a := range addresses {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		uniq = append(uniq, a)
		keys = append(keys, geocodeKeyPrefix+a)
	}

	if len(uniq) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	vals, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: mget: %w", err)
	}

	out := make(map[string]domain.Coordinates, len(uniq))
	for i, v := range vals {
		if v == nil {
			continue
		}
		s, ok := v.(string)
		if !ok {
			continue
		}
		var c domain.Coordinates
		if err := json.Unmarshal([]byte(s), &c); err != nil {
			return nil, fmt.Errorf("get geocode cache: decode entry %q: %w", uniq[i], err)
		}
		out[uniq[i]] = c
	}

	return out, nil
}

// Store address -> coordinate mappings in the cache.
func (r *RedisGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Coordinates) error {
	if r.client == nil {
		return errors.New("geocode cache: redis client is nil")
	}

	if len(results) == 0 {
		return nil
	}

	pipe := r.client.Pipeline()
	for addr, c := range results {
		if strings.TrimSpace(addr) == "" {
			return fmt.Errorf("insert geocode cache: empty address key")
		}
		b, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("insert geocode cache coord=%q: %w", addr, err)
		}
		pipe.Set(ctx, geocodeKeyPrefix+addr, b, r.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("insert geocode cache: pipeline exec: %w", err)
	}

	return nil
}

var _ ports.GeocodeCache = (*RedisGeocodeCache)(nil)
