package services

import (
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"hos-trip-planner/internal/domain"
)

func mustBuild(t *testing.T, route domain.Route, cycleHours float64, start time.Time) *domain.Schedule {
	t.Helper()
	s, err := BuildSchedule(route, cycleHours, start)
	if err != nil {
		t.Fatalf("build schedule: %v", err)
	}
	return s
}

func intervalHours(intervals []domain.ActivityInterval) float64 {
	sum := 0.0
	for _, iv := range intervals {
		sum += iv.EndHour - iv.StartHour
	}
	return sum
}

func TestGenerateLogsSingleDay(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	s := mustBuild(t, testRoute(250, 4.5, 250, 4.5), 0, start)

	logs := GenerateLogs(s)
	if len(logs) != 1 {
		t.Fatalf("expected 1 log day, got %d", len(logs))
	}

	day := logs[0]
	if !day.Date.Equal(start) {
		t.Errorf("date = %v, want %v", day.Date, start)
	}

	if driving := intervalHours(day.Driving); math.Abs(driving-9) > 1e-9 {
		t.Errorf("driving hours = %v, want 9", driving)
	}
	if onDuty := intervalHours(day.OnDuty); math.Abs(onDuty-2) > 1e-9 {
		t.Errorf("on-duty hours = %v, want 2 (pickup + dropoff)", onDuty)
	}
	if offDuty := intervalHours(day.OffDuty); math.Abs(offDuty-0.5) > 1e-9 {
		t.Errorf("off-duty hours = %v, want 0.5 (break)", offDuty)
	}
	if len(day.SleeperBerth) != 0 {
		t.Errorf("sleeper berth intervals = %v, want none", day.SleeperBerth)
	}

	if day.TotalMiles != 500 {
		t.Errorf("total miles = %v, want 500", day.TotalMiles)
	}

	if !strings.Contains(day.Remarks, "Pickup at St Louis, MO at 00:00") {
		t.Errorf("remarks missing pickup note: %q", day.Remarks)
	}
	if !strings.Contains(day.Remarks, "Dropoff at Dallas, TX at") {
		t.Errorf("remarks missing dropoff note: %q", day.Remarks)
	}

	if day.ShippingDocs != "PU20260302, DO20260302" {
		t.Errorf("shipping docs = %q, want PU20260302, DO20260302", day.ShippingDocs)
	}

	if day.Carrier != "Sample Carrier" || day.MainOffice != "Main Office Address" {
		t.Errorf("carrier metadata not defaulted: %q / %q", day.Carrier, day.MainOffice)
	}
}

func TestGenerateLogsMultiDay(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	s := mustBuild(t, testRoute(55, 1, 825, 15), 0, start)

	logs := GenerateLogs(s)
	if len(logs) != 2 {
		t.Fatalf("expected 2 log days, got %d", len(logs))
	}

	if !logs[1].Date.Equal(start.AddDate(0, 0, 1)) {
		t.Errorf("second log date = %v, want %v", logs[1].Date, start.AddDate(0, 0, 1))
	}

	// Driving hours across all days must match the scheduled driving time.
	driving := 0.0
	for _, l := range logs {
		driving += intervalHours(l.Driving)
	}
	if math.Abs(driving-16) > 1e-9 {
		t.Errorf("total driving hours = %v, want 16", driving)
	}

	// Per-day miles are rounded individually, so the sum may drift from the
	// route total by at most one mile per day.
	miles := 0.0
	for _, l := range logs {
		miles += l.TotalMiles
	}
	if math.Abs(miles-880) > float64(len(logs)) {
		t.Errorf("total miles = %v, want ~880", miles)
	}

	// The final driving stretch crosses midnight; day two must start with a
	// clipped interval at hour 0.
	if len(logs[1].Driving) == 0 || logs[1].Driving[0].StartHour != 0 {
		t.Errorf("day 2 driving = %v, want interval starting at hour 0", logs[1].Driving)
	}

	// The 10-hour rest lies entirely within day one.
	if offDuty := intervalHours(logs[0].OffDuty); math.Abs(offDuty-10.5) > 1e-9 {
		t.Errorf("day 1 off-duty hours = %v, want 10.5", offDuty)
	}

	if logs[1].Remarks != "No remarks" {
		t.Errorf("day 2 remarks = %q, want default", logs[1].Remarks)
	}
}

func TestGenerateLogsEndsExactlyAtMidnight(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)

	s := &domain.Schedule{
		StartTime: start,
		EndTime:   end,
		Stops: []domain.Stop{
			{Location: locCurrent, ArrivalTime: start, DepartureTime: start, StopType: domain.StopStart},
			{Location: locDropoff, ArrivalTime: end, DepartureTime: end, StopType: domain.StopEnd},
		},
		Segments: []domain.ScheduledSegment{
			{Start: locCurrent, End: locDropoff, DistanceMiles: 700, DurationHours: 14, StartTime: start, EndTime: end},
		},
	}

	logs := GenerateLogs(s)
	if len(logs) != 1 {
		t.Fatalf("expected 1 log day for a trip ending at midnight, got %d", len(logs))
	}

	if driving := intervalHours(logs[0].Driving); math.Abs(driving-14) > 1e-9 {
		t.Errorf("driving hours = %v, want 14", driving)
	}
	if logs[0].TotalMiles != 700 {
		t.Errorf("total miles = %v, want 700", logs[0].TotalMiles)
	}
}

func TestGenerateLogsZeroDurationSegment(t *testing.T) {
	start := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	// A degenerate zero-span segment must not divide by zero or add mileage.
	s := &domain.Schedule{
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Segments: []domain.ScheduledSegment{
			{Start: locCurrent, End: locCurrent, DistanceMiles: 10, DurationHours: 0, StartTime: start, EndTime: start},
			{Start: locCurrent, End: locPickup, DistanceMiles: 55, DurationHours: 1, StartTime: start, EndTime: start.Add(time.Hour)},
		},
	}

	logs := GenerateLogs(s)
	if len(logs) != 1 {
		t.Fatalf("expected 1 log day, got %d", len(logs))
	}
	if logs[0].TotalMiles != 55 {
		t.Errorf("total miles = %v, want 55", logs[0].TotalMiles)
	}
}

func TestGenerateLogsIdempotent(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	s := mustBuild(t, testRoute(55, 1, 825, 15), 0, start)

	first := GenerateLogs(s)
	second := GenerateLogs(s)

	if !reflect.DeepEqual(first, second) {
		t.Fatal("GenerateLogs is not idempotent over the same schedule")
	}
}
