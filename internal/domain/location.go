package domain

// A geocoded point on the route. Immutable value; DisplayName is the
// geocoder's long-form name and may be empty for synthetic points.
type Location struct {
	Address     string
	Lat         float64
	Lng         float64
	DisplayName string
}

// Interpolate returns a point on the straight line from l to other,
// fraction 0 being l and fraction 1 being other.
func (l Location) Interpolate(other Location, fraction float64) Location {
	return Location{
		Address: "",
		Lat:     l.Lat + (other.Lat-l.Lat)*fraction,
		Lng:     l.Lng + (other.Lng-l.Lng)*fraction,
	}
}
