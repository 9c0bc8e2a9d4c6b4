package dto

import "time"

type TripRequest struct {
	CurrentLocation   string  `json:"current_location"`
	PickupLocation    string  `json:"pickup_location"`
	DropoffLocation   string  `json:"dropoff_location"`
	CurrentCycleHours float64 `json:"current_cycle_hours"`
}

type LocationResponse struct {
	Address     string  `json:"address"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	DisplayName string  `json:"display_name,omitempty"`
}

type StopResponse struct {
	Location      LocationResponse `json:"location"`
	ArrivalTime   time.Time        `json:"arrival_time"`
	DepartureTime time.Time        `json:"departure_time"`
	StopType      string           `json:"stop_type"`
	Duration      float64          `json:"duration"`
}

type SegmentResponse struct {
	StartLocation LocationResponse `json:"start_location"`
	EndLocation   LocationResponse `json:"end_location"`
	Distance      float64          `json:"distance"`
	Duration      float64          `json:"duration"`
	StartTime     time.Time        `json:"start_time"`
	EndTime       time.Time        `json:"end_time"`
}

// One ELD log sheet. Activity intervals are [startHour, endHour) pairs on
// the 0-24 clock, matching the grid the frontend draws.
type LogEntryResponse struct {
	Date         string       `json:"date"`
	OffDuty      [][2]float64 `json:"off_duty"`
	SleeperBerth [][2]float64 `json:"sleeper_berth"`
	Driving      [][2]float64 `json:"driving"`
	OnDuty       [][2]float64 `json:"on_duty"`
	TotalMiles   float64      `json:"total_miles"`
	Carrier      string       `json:"carrier"`
	MainOffice   string       `json:"main_office"`
	HomeTerminal string       `json:"home_terminal"`
	ShippingDocs string       `json:"shipping_docs"`
	Remarks      string       `json:"remarks"`
}

type TripResponse struct {
	TotalDistance         float64            `json:"total_distance"`
	TotalDuration         float64            `json:"total_duration"`
	EstimatedStartTime    time.Time          `json:"estimated_start_time"`
	EstimatedDeliveryTime time.Time          `json:"estimated_delivery_time"`
	Stops                 []StopResponse     `json:"stops"`
	Segments              []SegmentResponse  `json:"segments"`
	Logs                  []LogEntryResponse `json:"logs"`
	Polyline              string             `json:"polyline"`
}
