package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"hos-trip-planner/internal/domain"
	"hos-trip-planner/internal/ports"
)

type PlanTripRequest struct {
	CurrentLocation   string
	PickupLocation    string
	DropoffLocation   string
	CurrentCycleHours float64
	StartAt           time.Time
}

// The full planning result handed to the presentation layer: the acquired
// route, the HOS-compliant schedule, and the per-day log sheets.
type TripPlan struct {
	Route    domain.Route
	Schedule *domain.Schedule
	Logs     []domain.DailyLog
}

// PlanTrip acquires the route for a three-waypoint trip and runs the HOS
// schedule builder and log partitioner over it.
//
// Geocoding the three addresses fans out concurrently; the two legs are
// fetched once coordinates are known. All external I/O happens here, before
// the pure scheduling core runs.
func PlanTrip(
	ctx context.Context,
	req PlanTripRequest,
	geocoder ports.Geocoder,
	routes ports.RouteProvider,
) (*TripPlan, error) {
	addresses := []string{req.CurrentLocation, req.PickupLocation, req.DropoffLocation}
	locations := make([]domain.Location, len(addresses))

	g, gctx := errgroup.WithContext(ctx)
	for i, addr := range addresses {
		i, addr := i, addr
		g.Go(func() error {
			loc, err := geocoder.Geocode(gctx, addr)
			if err != nil {
				return fmt.Errorf("geocode %q: %w", addr, err)
			}
			locations[i] = loc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	firstLeg, err := routes.GetLeg(ctx, locations[0], locations[1])
	if err != nil {
		return nil, fmt.Errorf("plan trip: route to pickup: %w", err)
	}
	secondLeg, err := routes.GetLeg(ctx, locations[1], locations[2])
	if err != nil {
		return nil, fmt.Errorf("plan trip: route to dropoff: %w", err)
	}

	route := domain.Route{
		Locations: locations,
		Segments: []domain.RouteSegment{
			{
				Start:         locations[0],
				End:           locations[1],
				DistanceMiles: firstLeg.DistanceMiles,
				DurationHours: firstLeg.DurationHours,
			},
			{
				Start:         locations[1],
				End:           locations[2],
				DistanceMiles: secondLeg.DistanceMiles,
				DurationHours: secondLeg.DurationHours,
			},
		},
		TotalDistance: firstLeg.DistanceMiles + secondLeg.DistanceMiles,
		TotalDuration: firstLeg.DurationHours + secondLeg.DurationHours,
		Polyline:      firstLeg.Polyline + secondLeg.Polyline,
	}

	schedule, err := BuildSchedule(route, req.CurrentCycleHours, req.StartAt)
	if err != nil {
		return nil, fmt.Errorf("plan trip: %w", err)
	}

	return &TripPlan{
		Route:    route,
		Schedule: schedule,
		Logs:     GenerateLogs(schedule),
	}, nil
}
