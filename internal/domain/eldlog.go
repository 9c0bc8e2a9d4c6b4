package domain

import "time"

// A half-open [StartHour, EndHour) span of one duty status within a single
// day, expressed as fractional hours on the 0-24 local clock.
type ActivityInterval struct {
	StartHour float64
	EndHour   float64
}

// One ELD log sheet: the duty-status intervals, mileage, and paperwork
// references for a single calendar day of the trip.
//
// SleeperBerth is always empty in this design; the scheduler never generates
// sleeper-berth activity. The field is kept so the log matches the standard
// ELD grid.
type DailyLog struct {
	Date         time.Time
	OffDuty      []ActivityInterval
	SleeperBerth []ActivityInterval
	Driving      []ActivityInterval
	OnDuty       []ActivityInterval
	TotalMiles   float64
	Carrier      string
	MainOffice   string
	HomeTerminal string
	ShippingDocs string
	Remarks      string
}
