package geo

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"hos-trip-planner/internal/domain"
	"hos-trip-planner/internal/ports"
)

// In-memory LegCache for adapter tests.
type memLegCache struct {
	mu sync.Mutex
	m  map[string]ports.LegResult
}

func newMemLegCache() *memLegCache {
	return &memLegCache{m: map[string]ports.LegResult{}}
}

func (c *memLegCache) Get(ctx context.Context, origin, destination string) (ports.LegResult, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	leg, ok := c.m[origin+"|"+destination]
	return leg, ok, nil
}

func (c *memLegCache) Put(ctx context.Context, origin, destination string, leg ports.LegResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[origin+"|"+destination] = leg
	return nil
}

func TestOSRMGetLeg(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if !strings.HasPrefix(r.URL.Path, "/route/v1/driving/") {
			t.Errorf("path = %q, want /route/v1/driving prefix", r.URL.Path)
		}
		if got := r.URL.Query().Get("overview"); got != "full" {
			t.Errorf("overview = %q, want full", got)
		}
		// 1609.344 meters over 3600 seconds: exactly one mile in one hour.
		fmt.Fprint(w, `{"code":"Ok","routes":[{"distance":1609.344,"duration":3600,"geometry":"abc123"}]}`)
	}))
	defer srv.Close()

	cache := newMemLegCache()
	p := NewOSRMRouteProvider(srv.URL, cache)

	from := domain.Location{Address: "Chicago, IL", Lat: 41.88, Lng: -87.63}
	to := domain.Location{Address: "St Louis, MO", Lat: 38.63, Lng: -90.20}

	leg, err := p.GetLeg(context.Background(), from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(leg.DistanceMiles-1) > 1e-9 {
		t.Errorf("distance = %v miles, want 1", leg.DistanceMiles)
	}
	if math.Abs(leg.DurationHours-1) > 1e-9 {
		t.Errorf("duration = %v hours, want 1", leg.DurationHours)
	}
	if leg.Polyline != "abc123" {
		t.Errorf("polyline = %q", leg.Polyline)
	}

	// Second request for the same pair must come from the cache.
	if _, err := p.GetLeg(context.Background(), from, to); err != nil {
		t.Fatalf("cached lookup: %v", err)
	}
	if calls != 1 {
		t.Errorf("upstream calls = %d, want 1", calls)
	}

	// The reverse direction is a distinct cache key.
	if _, err := p.GetLeg(context.Background(), to, from); err != nil {
		t.Fatalf("reverse lookup: %v", err)
	}
	if calls != 2 {
		t.Errorf("upstream calls = %d, want 2", calls)
	}
}

func TestOSRMGetLegErrorCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"code":"NoRoute","message":"Impossible route between points","routes":[]}`)
	}))
	defer srv.Close()

	p := NewOSRMRouteProvider(srv.URL, nil)

	_, err := p.GetLeg(context.Background(),
		domain.Location{Address: "A", Lat: 0, Lng: 0},
		domain.Location{Address: "B", Lat: 1, Lng: 1},
	)
	if err == nil {
		t.Fatal("expected error for non-Ok code")
	}
	if !strings.Contains(err.Error(), "NoRoute") {
		t.Errorf("err = %v, want NoRoute mentioned", err)
	}
}
