package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"hos-trip-planner/internal/platform/obs"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf(
			"encode failed: req_id=%s method=%s path=%s err=%v",
			obs.RequestID(r.Context()), r.Method, r.URL.Path, err,
		)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}
