package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"hos-trip-planner/internal/domain"
	"hos-trip-planner/internal/ports"
)

const (
	geocodeKeyPrefix = "geocode:"
	legKeyPrefix     = "leg:"
)

// Redis-backed cache mapping address strings to geocoded locations.
// Entries expire after TTL; zero TTL means no expiry.
type RedisGeocodeCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisGeocodeCache(client *redis.Client, ttl time.Duration) *RedisGeocodeCache {
	return &RedisGeocodeCache{Client: client, TTL: ttl}
}

// Fetch cached locations for the given addresses with a single MGET.
func (r *RedisGeocodeCache) GetMany(ctx context.Context, addresses []string) (map[string]domain.Location, error) {
	if r.Client == nil {
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
		return map[string]domain.Location{}, nil
	}

	values, err := r.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: mget: %w", err)
	}

	out := make(map[string]domain.Location, len(uniq))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue // cache miss
		}

		var loc domain.Location
		if err := json.Unmarshal([]byte(raw), &loc); err != nil {
			return nil, fmt.Errorf("get geocode cache: unmarshal %q: %w", uniq[i], err)
		}
		out[uniq[i]] = loc
	}

	return out, nil
}

// Store geocoded locations keyed by address.
func (r *RedisGeocodeCache) PutMany(ctx context.Context, locations map[string]domain.Location) error {
	if r.Client == nil {
		return errors.New("geocode cache: redis client is nil")
	}

	pipe := r.Client.Pipeline()
	for addr, loc := range locations {
		addr = strings.TrimSpace(addr)
		if addr == "" {
			continue
		}

		raw, err := json.Marshal(loc)
		if err != nil {
			return fmt.Errorf("put geocode cache: marshal %q: %w", addr, err)
		}
		pipe.Set(ctx, geocodeKeyPrefix+addr, raw, r.TTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("put geocode cache: pipeline exec: %w", err)
	}

	return nil
}

// Redis-backed cache for routed legs keyed by origin/destination pair.
// Entries expire after TTL; zero TTL means no expiry.
type RedisLegCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisLegCache(client *redis.Client, ttl time.Duration) *RedisLegCache {
	return &RedisLegCache{Client: client, TTL: ttl}
}

// Fetch the cached leg for an origin/destination pair, if present.
func (r *RedisLegCache) Get(ctx context.Context, origin, destination string) (ports.LegResult, bool, error) {
	if r.Client == nil {
		return ports.LegResult{}, false, errors.New("leg cache: redis client is nil")
	}

	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)
	if origin == "" || destination == "" {
		return ports.LegResult{}, false, errors.New("get leg cache: origin and destination must not be empty")
	}

	raw, err := r.Client.Get(ctx, legKeyPrefix+origin+"|"+destination).Result()
	if errors.Is(err, redis.Nil) {
		return ports.LegResult{}, false, nil
	}
	if err != nil {
		return ports.LegResult{}, false, fmt.Errorf("get leg cache: get: %w", err)
	}

	var leg ports.LegResult
	if err := json.Unmarshal([]byte(raw), &leg); err != nil {
		return ports.LegResult{}, false, fmt.Errorf("get leg cache: unmarshal: %w", err)
	}

	return leg, true, nil
}

// Store a routed leg for an origin/destination pair.
func (r *RedisLegCache) Put(ctx context.Context, origin, destination string, leg ports.LegResult) error {
	if r.Client == nil {
		return errors.New("leg cache: redis client is nil")
	}

	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)
	if origin == "" || destination == "" {
		return errors.New("put leg cache: origin and destination must not be empty")
	}

	raw, err := json.Marshal(leg)
	if err != nil {
		return fmt.Errorf("put leg cache: marshal: %w", err)
	}

	if err := r.Client.Set(ctx, legKeyPrefix+origin+"|"+destination, raw, r.TTL).Err(); err != nil {
		return fmt.Errorf("put leg cache: set: %w", err)
	}

	return nil
}
