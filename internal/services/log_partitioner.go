package services

import (
	"fmt"
	"math"
	"strings"
	"time"

	"hos-trip-planner/internal/domain"
)

// Defaults printed on log sheets when no better value exists.
const (
	defaultCarrier      = "Sample Carrier"
	defaultMainOffice   = "Main Office Address"
	defaultHomeTerminal = "Home Terminal Address"
	defaultShippingDocs = "N/A"
	defaultRemarks      = "No remarks"
)

// GenerateLogs partitions a schedule into one ELD log sheet per calendar day
// touched by the trip, from the start date through the last day with any
// activity. It is a pure function of the schedule.
func GenerateLogs(s *domain.Schedule) []domain.DailyLog {
	startDate := dateOf(s.StartTime)
	lastDate := dateOf(s.EndTime)
	// A trip ending exactly at midnight touches only the day that just closed.
	if s.EndTime.Equal(lastDate) {
		lastDate = lastDate.AddDate(0, 0, -1)
	}
	if lastDate.Before(startDate) {
		lastDate = startDate
	}

	var logs []domain.DailyLog
	for day := startDate; !day.After(lastDate); day = day.AddDate(0, 0, 1) {
		logs = append(logs, buildDailyLog(s, day))
	}

	return logs
}

func buildDailyLog(s *domain.Schedule, day time.Time) domain.DailyLog {
	dayEnd := day.AddDate(0, 0, 1)

	entry := domain.DailyLog{
		Date:         day,
		OffDuty:      []domain.ActivityInterval{},
		SleeperBerth: []domain.ActivityInterval{},
		Driving:      []domain.ActivityInterval{},
		OnDuty:       []domain.ActivityInterval{},
		Carrier:      defaultCarrier,
		MainOffice:   defaultMainOffice,
		HomeTerminal: defaultHomeTerminal,
		ShippingDocs: defaultShippingDocs,
		Remarks:      defaultRemarks,
	}

	for _, stop := range s.Stops {
		if !stop.ArrivalTime.Before(dayEnd) || stop.DepartureTime.Before(day) {
			continue
		}

		switch stop.StopType {
		case domain.StopRest, domain.StopBreak:
			entry.OffDuty = appendActivity(entry.OffDuty, stop.ArrivalTime, stop.DepartureTime, day)
		case domain.StopPickup, domain.StopDropoff, domain.StopFuel:
			entry.OnDuty = appendActivity(entry.OnDuty, stop.ArrivalTime, stop.DepartureTime, day)
		}
	}

	for _, seg := range s.Segments {
		if !seg.StartTime.Before(dayEnd) || seg.EndTime.Before(day) {
			continue
		}

		entry.Driving = appendActivity(entry.Driving, seg.StartTime, seg.EndTime, day)

		// The day's share of a segment's mileage is proportional to how much
		// of the segment's duration falls inside the day.
		total := seg.EndTime.Sub(seg.StartTime)
		if total > 0 {
			overlap := minTime(seg.EndTime, dayEnd).Sub(maxTime(seg.StartTime, day))
			entry.TotalMiles += seg.DistanceMiles * overlap.Seconds() / total.Seconds()
		}
	}

	if remarks := dayRemarks(s.Stops, day); len(remarks) > 0 {
		entry.Remarks = strings.Join(remarks, ". ")
	}
	if docs := dayShippingDocs(s.Stops, day); len(docs) > 0 {
		entry.ShippingDocs = strings.Join(docs, ", ")
	}

	entry.TotalMiles = math.Round(entry.TotalMiles)
	return entry
}

// appendActivity clips [start, end) to the given day and appends it as an
// hour-of-day interval on the 0-24 clock.
func appendActivity(intervals []domain.ActivityInterval, start, end time.Time, day time.Time) []domain.ActivityInterval {
	dayEnd := day.AddDate(0, 0, 1)

	from := maxTime(start, day)
	to := minTime(end, dayEnd)
	if !from.Before(dayEnd) || !to.After(day) {
		return intervals
	}

	return append(intervals, domain.ActivityInterval{
		StartHour: from.Sub(day).Hours(),
		EndHour:   to.Sub(day).Hours(),
	})
}

func dayRemarks(stops []domain.Stop, day time.Time) []string {
	var remarks []string
	for _, stop := range stops {
		if !dateOf(stop.ArrivalTime).Equal(day) {
			continue
		}

		at := stop.ArrivalTime.Format("15:04")
		switch stop.StopType {
		case domain.StopPickup:
			remarks = append(remarks, fmt.Sprintf("Pickup at %s at %s", stop.Location.Address, at))
		case domain.StopDropoff:
			remarks = append(remarks, fmt.Sprintf("Dropoff at %s at %s", stop.Location.Address, at))
		case domain.StopFuel:
			remarks = append(remarks, fmt.Sprintf("Fueling at %s", at))
		}
	}
	return remarks
}

func dayShippingDocs(stops []domain.Stop, day time.Time) []string {
	var docs []string
	for _, stop := range stops {
		if stop.StopType != domain.StopPickup && stop.StopType != domain.StopDropoff {
			continue
		}
		if dateOf(stop.ArrivalTime).After(day) || day.After(dateOf(stop.DepartureTime)) {
			continue
		}

		if stop.StopType == domain.StopPickup {
			docs = append(docs, "PU"+day.Format("20060102"))
		} else {
			docs = append(docs, "DO"+day.Format("20060102"))
		}
	}
	return docs
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
