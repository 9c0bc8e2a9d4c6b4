package ports

import (
	"context"

	"hos-trip-planner/internal/domain"
)

// Port: a persistent cache of geocoded addresses. Keys are expected to be
// normalized by the caller.
type GeocodeCache interface {
	// Fetch cached locations for the given addresses. Misses are absent keys.
	GetMany(ctx context.Context, addresses []string) (map[string]domain.Location, error)
	// Store freshly geocoded locations keyed by address.
	PutMany(ctx context.Context, locations map[string]domain.Location) error
}

// Port: a persistent cache of routed legs keyed by origin|destination
// address pair.
type LegCache interface {
	// Fetch the cached leg for an origin/destination pair, if present.
	Get(ctx context.Context, origin, destination string) (LegResult, bool, error)
	// Store a routed leg for an origin/destination pair.
	Put(ctx context.Context, origin, destination string, leg LegResult) error
}
