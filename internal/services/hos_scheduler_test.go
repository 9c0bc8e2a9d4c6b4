package services

import (
	"errors"
	"math"
	"testing"
	"time"

	"hos-trip-planner/internal/domain"
)

var (
	locCurrent = domain.Location{Address: "Chicago, IL", Lat: 41.88, Lng: -87.63}
	locPickup  = domain.Location{Address: "St Louis, MO", Lat: 38.63, Lng: -90.20}
	locDropoff = domain.Location{Address: "Dallas, TX", Lat: 32.78, Lng: -96.80}
)

func testRoute(leg1Miles, leg1Hours, leg2Miles, leg2Hours float64) domain.Route {
	return domain.Route{
		Locations: []domain.Location{locCurrent, locPickup, locDropoff},
		Segments: []domain.RouteSegment{
			{Start: locCurrent, End: locPickup, DistanceMiles: leg1Miles, DurationHours: leg1Hours},
			{Start: locPickup, End: locDropoff, DistanceMiles: leg2Miles, DurationHours: leg2Hours},
		},
		TotalDistance: leg1Miles + leg2Miles,
		TotalDuration: leg1Hours + leg2Hours,
	}
}

func stopTypes(stops []domain.Stop) []domain.StopType {
	types := make([]domain.StopType, 0, len(stops))
	for _, s := range stops {
		types = append(types, s.StopType)
	}
	return types
}

func countStops(stops []domain.Stop, t domain.StopType) int {
	n := 0
	for _, s := range stops {
		if s.StopType == t {
			n++
		}
	}
	return n
}

func totalScheduledMiles(segments []domain.ScheduledSegment) float64 {
	sum := 0.0
	for _, seg := range segments {
		sum += seg.DistanceMiles
	}
	return sum
}

// verifyChronology checks that stops and segments are non-decreasing in time
// and internally consistent.
func verifyChronology(t *testing.T, s *domain.Schedule) {
	t.Helper()

	prev := s.StartTime
	for i, stop := range s.Stops {
		if stop.ArrivalTime.Before(prev) {
			t.Errorf("stop %d (%s) arrives at %v, before previous event at %v", i, stop.StopType, stop.ArrivalTime, prev)
		}
		if stop.DepartureTime.Before(stop.ArrivalTime) {
			t.Errorf("stop %d (%s) departs before it arrives", i, stop.StopType)
		}
		got := stop.DepartureTime.Sub(stop.ArrivalTime).Hours()
		if math.Abs(got-stop.DurationHours) > 1e-9 {
			t.Errorf("stop %d (%s) duration = %v, want %v", i, stop.StopType, got, stop.DurationHours)
		}
		prev = stop.ArrivalTime
	}

	prev = s.StartTime
	for i, seg := range s.Segments {
		if seg.StartTime.Before(prev) {
			t.Errorf("segment %d starts at %v, before previous segment end %v", i, seg.StartTime, prev)
		}
		if !seg.EndTime.After(seg.StartTime) {
			t.Errorf("segment %d has non-positive span", i)
		}
		prev = seg.EndTime
	}
}

func TestBuildScheduleSingleDayTrip(t *testing.T) {
	// 500 miles over 9 driving hours. With 1h pickup, 1h dropoff and one
	// 30-minute break the trip takes 11.5 elapsed hours and fits in one day.
	route := testRoute(250, 4.5, 250, 4.5)
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	s, err := BuildSchedule(route, 0, start)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []domain.StopType{
		domain.StopStart,
		domain.StopPickup,
		domain.StopDropoff,
		domain.StopBreak,
		domain.StopEnd,
	}
	got := stopTypes(s.Stops)
	if len(got) != len(want) {
		t.Fatalf("stop types = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("stop types = %v, want %v", got, want)
		}
	}

	if elapsed := s.EndTime.Sub(s.StartTime).Hours(); math.Abs(elapsed-11.5) > 1e-9 {
		t.Errorf("elapsed = %v hours, want 11.5", elapsed)
	}

	// The second leg splits at the 8-hour break: 4.5h + 3.5h + 1h of driving.
	if len(s.Segments) != 3 {
		t.Fatalf("expected 3 scheduled segments, got %d", len(s.Segments))
	}
	if math.Abs(s.Segments[1].DurationHours-3.5) > 1e-9 {
		t.Errorf("split segment duration = %v, want 3.5", s.Segments[1].DurationHours)
	}
	if s.Segments[1].End.Address != "Intermediate point 1" {
		t.Errorf("split end address = %q, want synthetic midpoint", s.Segments[1].End.Address)
	}

	if miles := totalScheduledMiles(s.Segments); math.Abs(miles-500) > 1e-6 {
		t.Errorf("scheduled miles = %v, want 500", miles)
	}

	verifyChronology(t, s)
}

func TestBuildScheduleLongLegForcesRest(t *testing.T) {
	// 15 driving hours on the second leg exhaust both the 11-hour driving
	// allotment and the 14-hour window, forcing a 10-hour rest.
	route := testRoute(55, 1, 825, 15)
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	s, err := BuildSchedule(route, 0, start)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if n := countStops(s.Stops, domain.StopRest); n != 1 {
		t.Fatalf("rest stops = %d, want 1", n)
	}
	if n := countStops(s.Stops, domain.StopBreak); n != 1 {
		t.Errorf("break stops = %d, want 1", n)
	}

	// 1 pickup + 1 drive + 1 dropoff + 7 drive + 0.5 break + 3 drive +
	// 10 rest + 5 drive = 28.5 elapsed hours, spanning two calendar days.
	if elapsed := s.EndTime.Sub(s.StartTime).Hours(); math.Abs(elapsed-28.5) > 1e-9 {
		t.Errorf("elapsed = %v hours, want 28.5", elapsed)
	}

	if miles := totalScheduledMiles(s.Segments); math.Abs(miles-880) > 1e-6 {
		t.Errorf("scheduled miles = %v, want 880", miles)
	}

	verifyChronology(t, s)
}

func TestBuildScheduleFuelStop(t *testing.T) {
	// Crossing 1000 accumulated miles with driving still left inserts a
	// 30-minute fueling stop on the next pass.
	route := testRoute(600, 4, 720, 12)
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	s, err := BuildSchedule(route, 0, start)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if n := countStops(s.Stops, domain.StopFuel); n != 1 {
		t.Fatalf("fuel stops = %d, want 1", n)
	}
	for _, stop := range s.Stops {
		if stop.StopType == domain.StopFuel && math.Abs(stop.DurationHours-0.5) > 1e-9 {
			t.Errorf("fuel stop duration = %v, want 0.5", stop.DurationHours)
		}
	}

	// Fueling spends window time only: total elapsed is 1h pickup + 4h drive
	// + 1h dropoff + 4h drive + 0.5h break + 3h drive + 0.5h fuel + 10h rest
	// + 5h drive.
	if elapsed := s.EndTime.Sub(s.StartTime).Hours(); math.Abs(elapsed-29) > 1e-9 {
		t.Errorf("elapsed = %v hours, want 29", elapsed)
	}

	if miles := totalScheduledMiles(s.Segments); math.Abs(miles-1320) > 1e-6 {
		t.Errorf("scheduled miles = %v, want 1320", miles)
	}

	verifyChronology(t, s)
}

func TestBuildScheduleCycleExhaustion(t *testing.T) {
	// With 68 of 70 cycle hours used, 2 remaining hours cannot cover 5 hours
	// of driving plus pickup/dropoff, and resting never restores the cycle.
	route := testRoute(55, 1, 220, 4)

	_, err := BuildSchedule(route, 68, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))
	if !errors.Is(err, ErrCycleExhausted) {
		t.Fatalf("err = %v, want ErrCycleExhausted", err)
	}
}

func TestBuildScheduleDoesNotMutateInput(t *testing.T) {
	route := testRoute(250, 4.5, 250, 4.5)
	origSegments := make([]domain.RouteSegment, len(route.Segments))
	copy(origSegments, route.Segments)

	if _, err := BuildSchedule(route, 0, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, seg := range route.Segments {
		if seg != origSegments[i] {
			t.Errorf("input segment %d mutated: %+v -> %+v", i, origSegments[i], seg)
		}
	}
}

func TestBuildScheduleValidation(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		route domain.Route
		want  error
	}{
		{
			name: "too few locations",
			route: domain.Route{
				Locations: []domain.Location{locCurrent, locDropoff},
				Segments:  testRoute(100, 2, 100, 2).Segments,
			},
			want: ErrInvalidRouteShape,
		},
		{
			name: "too few segments",
			route: domain.Route{
				Locations: []domain.Location{locCurrent, locPickup, locDropoff},
				Segments: []domain.RouteSegment{
					{Start: locCurrent, End: locDropoff, DistanceMiles: 100, DurationHours: 2},
				},
			},
			want: ErrInvalidRouteShape,
		},
		{
			name: "first segment does not end at pickup",
			route: domain.Route{
				Locations: []domain.Location{locCurrent, locPickup, locDropoff},
				Segments: []domain.RouteSegment{
					{Start: locCurrent, End: locDropoff, DistanceMiles: 100, DurationHours: 2},
					{Start: locDropoff, End: locDropoff, DistanceMiles: 100, DurationHours: 2},
				},
			},
			want: ErrInvalidRouteShape,
		},
		{
			name:  "non-positive segment duration",
			route: testRoute(100, 2, 100, 0),
			want:  ErrNonPositiveSegmentDuration,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := BuildSchedule(tc.route, 0, start)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}
