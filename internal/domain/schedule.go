package domain

import "time"

// StopType classifies a scheduled stop along the trip.
type StopType string

const (
	StopStart   StopType = "start"
	StopBreak   StopType = "break"
	StopFuel    StopType = "fuel"
	StopPickup  StopType = "pickup"
	StopDropoff StopType = "dropoff"
	StopRest    StopType = "rest"
	StopEnd     StopType = "end"
)

// A typed event on the schedule. DurationHours always equals
// DepartureTime - ArrivalTime; start and end markers have zero duration.
type Stop struct {
	Location      Location
	ArrivalTime   time.Time
	DepartureTime time.Time
	StopType      StopType
	DurationHours float64
}

// A timed stretch of driving. A route segment may be split into several
// scheduled segments when driving pauses mid-leg; split end locations are
// synthetic interpolated points.
type ScheduledSegment struct {
	Start         Location
	End           Location
	DistanceMiles float64
	DurationHours float64
	StartTime     time.Time
	EndTime       time.Time
}

// The HOS-compliant schedule for one trip: chronological stops, timed
// (possibly split) driving segments, and the overall trip window.
// It is freshly constructed output and shares no memory with the input route.
type Schedule struct {
	Route     Route
	Stops     []Stop
	Segments  []ScheduledSegment
	StartTime time.Time
	EndTime   time.Time
}
