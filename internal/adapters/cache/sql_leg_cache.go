package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"hos-trip-planner/internal/platform/obs"
	"hos-trip-planner/internal/ports"
)

// SQLLegCache is a Postgres-backed cache for routed legs, for deployments
// sharing one cache across instances.
type SQLLegCache struct {
	DB *sql.DB
}

func NewSQLLegCache(db *sql.DB) *SQLLegCache {
	return &SQLLegCache{DB: db}
}

// Fetch the cached leg for an origin/destination pair, if present.
func (s *SQLLegCache) Get(ctx context.Context, origin, destination string) (_ ports.LegResult, _ bool, err error) {
	defer obs.Time(ctx, "leg.cache.Get")(&err)

	if s.DB == nil {
		return ports.LegResult{}, false, errors.New("leg cache: db is nil")
	}

	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)
	if origin == "" || destination == "" {
		return ports.LegResult{}, false, errors.New("get leg cache: origin and destination must not be empty")
	}

	q := `
	SELECT distance_miles, duration_hours, polyline
    FROM leg_cache
    WHERE origin = $1
        AND destination = $2;
	`

	var leg ports.LegResult
	scanErr := s.DB.QueryRowContext(ctx, q, origin, destination).
		Scan(&leg.DistanceMiles, &leg.DurationHours, &leg.Polyline)
	if errors.Is(scanErr, sql.ErrNoRows) {
		return ports.LegResult{}, false, nil
	}
	if scanErr != nil {
		return ports.LegResult{}, false, fmt.Errorf("get leg cache: query leg_cache table: %w", scanErr)
	}

	return leg, true, nil
}

// Store a routed leg for an origin/destination pair, replacing any existing entry.
func (s *SQLLegCache) Put(ctx context.Context, origin, destination string, leg ports.LegResult) (err error) {
	defer obs.Time(ctx, "leg.cache.Put")(&err)

	if s.DB == nil {
		return errors.New("leg cache: db is nil")
	}

	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)
	if origin == "" || destination == "" {
		return errors.New("put leg cache: origin and destination must not be empty")
	}

	q := `
	INSERT INTO leg_cache (origin, destination, distance_miles, duration_hours, polyline)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (origin, destination) DO UPDATE SET
		distance_miles = EXCLUDED.distance_miles,
		duration_hours = EXCLUDED.duration_hours,
		polyline = EXCLUDED.polyline;
	`

	if _, err := s.DB.ExecContext(ctx, q, origin, destination, leg.DistanceMiles, leg.DurationHours, leg.Polyline); err != nil {
		return fmt.Errorf("put leg cache: upsert %q -> %q: %w", origin, destination, err)
	}

	return nil
}
