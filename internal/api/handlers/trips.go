package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"hos-trip-planner/internal/api/dto"
	"hos-trip-planner/internal/domain"
	"hos-trip-planner/internal/platform/obs"
	"hos-trip-planner/internal/ports"
	"hos-trip-planner/internal/services"
)

type TripHandler struct {
	Geocoder ports.Geocoder
	Routes   ports.RouteProvider

	// Now supplies the schedule start clock; nil means wall time.
	Now func() time.Time
}

// CalculateRoute plans an HOS-compliant trip from three addresses and the
// driver's current cycle hours. It coordinates route acquisition, the
// schedule builder, and the log partitioner.
func (h *TripHandler) CalculateRoute(w http.ResponseWriter, r *http.Request) {
	var req dto.TripRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	current := strings.TrimSpace(req.CurrentLocation)
	pickup := strings.TrimSpace(req.PickupLocation)
	dropoff := strings.TrimSpace(req.DropoffLocation)
	if current == "" || pickup == "" || dropoff == "" {
		writeError(w, r, http.StatusBadRequest, "current_location, pickup_location and dropoff_location are required")
		return
	}

	if req.CurrentCycleHours < 0 || req.CurrentCycleHours > 70 {
		writeError(w, r, http.StatusBadRequest, "current_cycle_hours must be between 0 and 70")
		return
	}

	now := time.Now
	if h.Now != nil {
		now = h.Now
	}

	plan, err := services.PlanTrip(r.Context(), services.PlanTripRequest{
		CurrentLocation:   current,
		PickupLocation:    pickup,
		DropoffLocation:   dropoff,
		CurrentCycleHours: req.CurrentCycleHours,
		StartAt:           now().Truncate(time.Hour),
	}, h.Geocoder, h.Routes)
	if err != nil {
		log.Printf("plan trip failed: req_id=%s err=%v", obs.RequestID(r.Context()), err)

		switch {
		case errors.Is(err, services.ErrCycleExhausted):
			writeError(w, r, http.StatusUnprocessableEntity, "trip is not feasible within the current 70-hour cycle")
		case errors.Is(err, ports.ErrLocationNotFound):
			writeError(w, r, http.StatusBadGateway, "failed to geocode one or more locations")
		case errors.Is(err, services.ErrInvalidRouteShape),
			errors.Is(err, services.ErrNonPositiveSegmentDuration):
			writeError(w, r, http.StatusBadGateway, "routing service returned an unusable route")
		default:
			writeError(w, r, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, r, http.StatusOK, toTripResponse(plan))
}

func toTripResponse(plan *services.TripPlan) dto.TripResponse {
	s := plan.Schedule

	stops := make([]dto.StopResponse, 0, len(s.Stops))
	for _, stop := range s.Stops {
		stops = append(stops, dto.StopResponse{
			Location:      toLocationResponse(stop.Location),
			ArrivalTime:   stop.ArrivalTime,
			DepartureTime: stop.DepartureTime,
			StopType:      string(stop.StopType),
			Duration:      stop.DurationHours,
		})
	}

	segments := make([]dto.SegmentResponse, 0, len(s.Segments))
	for _, seg := range s.Segments {
		segments = append(segments, dto.SegmentResponse{
			StartLocation: toLocationResponse(seg.Start),
			EndLocation:   toLocationResponse(seg.End),
			Distance:      seg.DistanceMiles,
			Duration:      seg.DurationHours,
			StartTime:     seg.StartTime,
			EndTime:       seg.EndTime,
		})
	}

	logs := make([]dto.LogEntryResponse, 0, len(plan.Logs))
	for _, l := range plan.Logs {
		logs = append(logs, dto.LogEntryResponse{
			Date:         l.Date.Format("2006-01-02"),
			OffDuty:      toIntervalPairs(l.OffDuty),
			SleeperBerth: toIntervalPairs(l.SleeperBerth),
			Driving:      toIntervalPairs(l.Driving),
			OnDuty:       toIntervalPairs(l.OnDuty),
			TotalMiles:   l.TotalMiles,
			Carrier:      l.Carrier,
			MainOffice:   l.MainOffice,
			HomeTerminal: l.HomeTerminal,
			ShippingDocs: l.ShippingDocs,
			Remarks:      l.Remarks,
		})
	}

	return dto.TripResponse{
		TotalDistance:         plan.Route.TotalDistance,
		TotalDuration:         plan.Route.TotalDuration,
		EstimatedStartTime:    s.StartTime,
		EstimatedDeliveryTime: s.EndTime,
		Stops:                 stops,
		Segments:              segments,
		Logs:                  logs,
		Polyline:              plan.Route.Polyline,
	}
}

func toLocationResponse(loc domain.Location) dto.LocationResponse {
	return dto.LocationResponse{
		Address:     loc.Address,
		Lat:         loc.Lat,
		Lng:         loc.Lng,
		DisplayName: loc.DisplayName,
	}
}

func toIntervalPairs(intervals []domain.ActivityInterval) [][2]float64 {
	out := make([][2]float64, 0, len(intervals))
	for _, iv := range intervals {
		out = append(out, [2]float64{iv.StartHour, iv.EndHour})
	}
	return out
}
