package ports

import (
	"context"

	"hos-trip-planner/internal/domain"
)

// Distance, travel time, and geometry for one leg between two waypoints.
type LegResult struct {
	DistanceMiles float64
	DurationHours float64
	Polyline      string
}

// Contract for retrieving driving legs from a routing service.
type RouteProvider interface {
	// Return the driving leg from one located waypoint to another.
	GetLeg(ctx context.Context, from, to domain.Location) (LegResult, error)
}
