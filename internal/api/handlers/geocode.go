package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"hos-trip-planner/internal/api/dto"
	"hos-trip-planner/internal/platform/obs"
	"hos-trip-planner/internal/ports"
)

// GeocodeHandler exposes address lookup endpoints for the frontend.
type GeocodeHandler struct {
	Geocoder ports.Geocoder
}

// Geocode resolves an address to coordinates.
func (h *GeocodeHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	address := strings.TrimSpace(r.URL.Query().Get("address"))
	if address == "" {
		writeError(w, r, http.StatusBadRequest, "address parameter is required")
		return
	}

	loc, err := h.Geocoder.Geocode(r.Context(), address)
	if err != nil {
		if errors.Is(err, ports.ErrLocationNotFound) {
			writeError(w, r, http.StatusNotFound, "location not found")
			return
		}

		log.Printf("geocode failed: req_id=%s err=%v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.LocationResponse{
		Address:     loc.Address,
		Lat:         loc.Lat,
		Lng:         loc.Lng,
		DisplayName: loc.DisplayName,
	})
}

// Suggestions returns up to five candidate locations for a partial query.
// Queries shorter than three characters return an empty list.
func (h *GeocodeHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if len(query) < 3 {
		writeJSON(w, r, http.StatusOK, []dto.SuggestionResponse{})
		return
	}

	locs, err := h.Geocoder.Suggest(r.Context(), query, 5)
	if err != nil {
		log.Printf("suggest failed: req_id=%s err=%v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := make([]dto.SuggestionResponse, 0, len(locs))
	for _, loc := range locs {
		res = append(res, dto.SuggestionResponse{
			DisplayName: loc.DisplayName,
			Lat:         loc.Lat,
			Lng:         loc.Lng,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
