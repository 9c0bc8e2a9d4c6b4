package services

import (
	"errors"
	"fmt"
	"time"

	"hos-trip-planner/internal/domain"
)

// HOS limits for property-carrying drivers.
const (
	maxDrivingHours        = 11.0 // driving allowed after a 10-hour rest
	maxDutyWindow          = 14.0 // duty window after a 10-hour rest
	maxDrivingWithoutBreak = 8.0  // driving allowed before a 30-minute break
	minBreakDuration       = 0.5
	minRestDuration        = 10.0
	pickupDropoffDuration  = 1.0
	maxCycleHours          = 70.0 // on-duty hours in the rolling 8-day cycle

	fuelingIntervalMiles = 1000.0
	fuelingDuration      = 0.5
)

var (
	// The route does not have the required three-waypoint, two-leg shape.
	ErrInvalidRouteShape = errors.New("invalid route shape")
	// A route segment carries a zero or negative driving duration.
	ErrNonPositiveSegmentDuration = errors.New("segment duration must be positive")
	// The 70-hour/8-day cycle ran out before the trip could finish. A rest
	// period does not restore cycle hours, so the trip is infeasible.
	ErrCycleExhausted = errors.New("70-hour cycle exhausted before trip completion")
)

// driverClock tracks the hours a driver has left before each HOS limit
// forces a stop. It is local to one BuildSchedule call.
type driverClock struct {
	drivingRemaining float64 // 11-hour driving allotment
	windowRemaining  float64 // 14-hour duty window (elapsed, not just driving)
	sinceBreak       float64 // hours driven since the last break or rest
	cycleRemaining   float64 // 70-hour/8-day cycle; never restored mid-trip
}

func newDriverClock(currentCycleHours float64) driverClock {
	return driverClock{
		drivingRemaining: maxDrivingHours,
		windowRemaining:  maxDutyWindow,
		sinceBreak:       0,
		cycleRemaining:   maxCycleHours - currentCycleHours,
	}
}

// rest restores the daily clocks after a 10-hour off-duty period.
// The cycle balance is untouched; it spans 8 days, beyond one trip.
func (c *driverClock) rest() {
	c.drivingRemaining = maxDrivingHours
	c.windowRemaining = maxDutyWindow
	c.sinceBreak = 0
}

// drive spends hrs of driving time against every limiting counter.
func (c *driverClock) drive(hrs float64) {
	c.drivingRemaining -= hrs
	c.windowRemaining -= hrs
	c.sinceBreak += hrs
	c.cycleRemaining -= hrs
}

// BuildSchedule computes an HOS-compliant schedule for the given route.
//
// The builder walks the route segments left to right, inserting mandatory
// 30-minute breaks, fueling stops, pickup/dropoff activities, and 10-hour
// rest periods as the driver clocks run down. Segments are split with
// interpolated midpoints whenever driving must pause mid-leg.
//
// It is a pure function of its inputs: the caller-owned route is never
// mutated and the returned schedule shares no memory with it.
func BuildSchedule(route domain.Route, currentCycleHours float64, startAt time.Time) (*domain.Schedule, error) {
	if err := validateRoute(route); err != nil {
		return nil, fmt.Errorf("build schedule: %w", err)
	}

	clock := newDriverClock(currentCycleHours)
	currentTime := startAt

	stops := make([]domain.Stop, 0, len(route.Segments)*2+4)
	segments := make([]domain.ScheduledSegment, 0, len(route.Segments))

	stops = append(stops, domain.Stop{
		Location:      route.Locations[0],
		ArrivalTime:   currentTime,
		DepartureTime: currentTime,
		StopType:      domain.StopStart,
		DurationHours: 0,
	})

	accumulatedDistance := 0.0
	lastFuelDistance := 0.0

	for segIdx := 0; segIdx < len(route.Segments); segIdx++ {
		seg := route.Segments[segIdx]

		currentLocation := seg.Start
		targetLocation := seg.End
		remainingDistance := seg.DistanceMiles
		remainingDuration := seg.DurationHours

		// Pickup happens once on the first leg, dropoff once on the last.
		isPickup := segIdx == 0
		isDropoff := segIdx == len(route.Segments)-1

		for {
			// Mandatory 30-minute break after 8 hours of driving.
			if clock.sinceBreak >= maxDrivingWithoutBreak {
				stops = append(stops, newStop(currentLocation, currentTime, domain.StopBreak, minBreakDuration))
				currentTime = advance(currentTime, minBreakDuration)
				clock.sinceBreak = 0
				clock.windowRemaining -= minBreakDuration
			}

			// Fueling stop every 1000 miles. Spends window time only.
			if accumulatedDistance-lastFuelDistance >= fuelingIntervalMiles {
				stops = append(stops, newStop(currentLocation, currentTime, domain.StopFuel, fuelingDuration))
				currentTime = advance(currentTime, fuelingDuration)
				clock.windowRemaining -= fuelingDuration
				lastFuelDistance = accumulatedDistance
			}

			if isPickup {
				stops = append(stops, newStop(targetLocation, currentTime, domain.StopPickup, pickupDropoffDuration))
				currentTime = advance(currentTime, pickupDropoffDuration)
				clock.windowRemaining -= pickupDropoffDuration
				clock.cycleRemaining -= pickupDropoffDuration
				isPickup = false
			}

			if isDropoff {
				stops = append(stops, newStop(targetLocation, currentTime, domain.StopDropoff, pickupDropoffDuration))
				currentTime = advance(currentTime, pickupDropoffDuration)
				clock.windowRemaining -= pickupDropoffDuration
				clock.cycleRemaining -= pickupDropoffDuration
				isDropoff = false
			}

			drivable := min(
				clock.drivingRemaining,
				clock.windowRemaining,
				remainingDuration,
				maxDrivingWithoutBreak-clock.sinceBreak,
				clock.cycleRemaining,
			)

			if drivable <= 0 {
				// Resting restores the daily clocks but never the cycle
				// balance, so a drained cycle can only mean an infeasible trip.
				if clock.cycleRemaining <= 0 {
					return nil, fmt.Errorf("build schedule: %w", ErrCycleExhausted)
				}

				stops = append(stops, newStop(currentLocation, currentTime, domain.StopRest, minRestDuration))
				currentTime = advance(currentTime, minRestDuration)
				clock.rest()
				continue
			}

			progress := drivable / remainingDuration
			distanceCovered := remainingDistance * progress
			accumulatedDistance += distanceCovered

			if progress < 1 {
				// Split the leg: drive as far as the clocks allow and park at
				// an interpolated point along the remaining sub-segment.
				mid := currentLocation.Interpolate(targetLocation, progress)
				mid.Address = fmt.Sprintf("Intermediate point %d", segIdx)

				segments = append(segments, domain.ScheduledSegment{
					Start:         currentLocation,
					End:           mid,
					DistanceMiles: distanceCovered,
					DurationHours: drivable,
					StartTime:     currentTime,
					EndTime:       advance(currentTime, drivable),
				})

				currentLocation = mid
				remainingDistance -= distanceCovered
				remainingDuration -= drivable

				currentTime = advance(currentTime, drivable)
				clock.drive(drivable)
				continue
			}

			segments = append(segments, domain.ScheduledSegment{
				Start:         currentLocation,
				End:           targetLocation,
				DistanceMiles: remainingDistance,
				DurationHours: remainingDuration,
				StartTime:     currentTime,
				EndTime:       advance(currentTime, remainingDuration),
			})

			currentTime = advance(currentTime, remainingDuration)
			clock.drive(remainingDuration)
			break
		}
	}

	stops = append(stops, domain.Stop{
		Location:      route.Locations[len(route.Locations)-1],
		ArrivalTime:   currentTime,
		DepartureTime: currentTime,
		StopType:      domain.StopEnd,
		DurationHours: 0,
	})

	return &domain.Schedule{
		Route:     cloneRoute(route),
		Stops:     stops,
		Segments:  segments,
		StartTime: startAt,
		EndTime:   currentTime,
	}, nil
}

func validateRoute(route domain.Route) error {
	if len(route.Locations) < 3 {
		return fmt.Errorf("%w: need at least 3 locations, got %d", ErrInvalidRouteShape, len(route.Locations))
	}
	if len(route.Segments) < 2 {
		return fmt.Errorf("%w: need at least 2 segments, got %d", ErrInvalidRouteShape, len(route.Segments))
	}

	pickup := route.Locations[1]
	if route.Segments[0].End.Address != pickup.Address {
		return fmt.Errorf(
			"%w: first segment ends at %q, want pickup %q",
			ErrInvalidRouteShape, route.Segments[0].End.Address, pickup.Address,
		)
	}

	dropoff := route.Locations[len(route.Locations)-1]
	last := route.Segments[len(route.Segments)-1]
	if last.End.Address != dropoff.Address {
		return fmt.Errorf(
			"%w: last segment ends at %q, want dropoff %q",
			ErrInvalidRouteShape, last.End.Address, dropoff.Address,
		)
	}

	for i, seg := range route.Segments {
		if seg.DurationHours <= 0 {
			return fmt.Errorf("%w: segment %d has duration %v", ErrNonPositiveSegmentDuration, i, seg.DurationHours)
		}
	}

	return nil
}

func newStop(loc domain.Location, arrival time.Time, t domain.StopType, hours float64) domain.Stop {
	return domain.Stop{
		Location:      loc,
		ArrivalTime:   arrival,
		DepartureTime: advance(arrival, hours),
		StopType:      t,
		DurationHours: hours,
	}
}

func advance(t time.Time, hours float64) time.Time {
	return t.Add(time.Duration(hours * float64(time.Hour)))
}

func cloneRoute(route domain.Route) domain.Route {
	out := route
	out.Locations = append([]domain.Location(nil), route.Locations...)
	out.Segments = append([]domain.RouteSegment(nil), route.Segments...)
	return out
}
