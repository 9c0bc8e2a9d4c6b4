package domain

// One leg of the planned route between two trip waypoints, as returned by
// the routing provider. Read-only input to the schedule builder.
type RouteSegment struct {
	Start         Location
	End           Location
	DistanceMiles float64
	DurationHours float64
}

// The planned trip route: three ordered waypoints (current, pickup, dropoff)
// and the legs connecting them. By contract the first segment ends at the
// pickup waypoint and the last segment ends at the dropoff waypoint.
type Route struct {
	Locations     []Location
	Segments      []RouteSegment
	TotalDistance float64
	TotalDuration float64
	Polyline      string
}
