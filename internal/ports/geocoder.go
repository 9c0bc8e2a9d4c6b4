package ports

import (
	"context"
	"errors"

	"hos-trip-planner/internal/domain"
)

// The geocoder found no match for the requested address.
var ErrLocationNotFound = errors.New("location not found")

// Contract for resolving free-text addresses to coordinates.
type Geocoder interface {
	// Resolve a single address to a located point.
	Geocode(ctx context.Context, address string) (domain.Location, error)
	// Return up to limit candidate locations for a partial query.
	Suggest(ctx context.Context, query string, limit int) ([]domain.Location, error)
}
