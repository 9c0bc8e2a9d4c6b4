package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"hos-trip-planner/internal/domain"
	"hos-trip-planner/internal/ports"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return client
}

func TestRedisGeocodeCacheRoundTrip(t *testing.T) {
	c := NewRedisGeocodeCache(newTestRedis(t), time.Hour)
	ctx := context.Background()

	locations := map[string]domain.Location{
		"Chicago, IL":  {Address: "Chicago, IL", Lat: 41.88, Lng: -87.63, DisplayName: "Chicago, Cook County"},
		"St Louis, MO": {Address: "St Louis, MO", Lat: 38.63, Lng: -90.20},
	}

	if err := c.PutMany(ctx, locations); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := c.GetMany(ctx, []string{"Chicago, IL", "St Louis, MO", "Dallas, TX"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(got))
	}
	if got["Chicago, IL"] != locations["Chicago, IL"] {
		t.Errorf("chicago = %+v, want %+v", got["Chicago, IL"], locations["Chicago, IL"])
	}
	if _, ok := got["Dallas, TX"]; ok {
		t.Error("expected miss for uncached address")
	}
}

func TestRedisGeocodeCacheSkipsBlankAddresses(t *testing.T) {
	c := NewRedisGeocodeCache(newTestRedis(t), 0)
	ctx := context.Background()

	got, err := c.GetMany(ctx, []string{"", "  "})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no hits, got %d", len(got))
	}
}

func TestRedisLegCacheRoundTrip(t *testing.T) {
	c := NewRedisLegCache(newTestRedis(t), time.Hour)
	ctx := context.Background()

	leg := ports.LegResult{DistanceMiles: 250, DurationHours: 4.5, Polyline: "abc"}
	if err := c.Put(ctx, "Chicago, IL", "St Louis, MO", leg); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := c.Get(ctx, "Chicago, IL", "St Louis, MO")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got != leg {
		t.Errorf("leg = %+v, want %+v", got, leg)
	}

	_, ok, err = c.Get(ctx, "St Louis, MO", "Chicago, IL")
	if err != nil {
		t.Fatalf("get reverse: %v", err)
	}
	if ok {
		t.Error("expected miss for reverse direction")
	}
}
