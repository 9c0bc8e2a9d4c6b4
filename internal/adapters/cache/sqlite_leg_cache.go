package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"hos-trip-planner/internal/ports"
)

// SQLite backed cache for routed legs keyed by origin/destination address
// pair. Keys are expected to be consistent (e.g., already normalized)
// by the caller.
type SqliteLegCache struct {
	DB *sql.DB
}

func NewSqliteLegCache(db *sql.DB) *SqliteLegCache {
	return &SqliteLegCache{DB: db}
}

// Fetch the cached leg for an origin/destination pair, if present.
func (s *SqliteLegCache) Get(ctx context.Context, origin, destination string) (ports.LegResult, bool, error) {
	if s.DB == nil {
		return ports.LegResult{}, false, errors.New("leg cache: db is nil")
	}

	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)
	if origin == "" || destination == "" {
		return ports.LegResult{}, false, errors.New("get leg cache: origin and destination must not be empty")
	}

	q := `
	SELECT
        distance_miles,
        duration_hours,
        polyline
    FROM leg_cache
    WHERE origin = ?
        AND destination = ?;
	`

	var leg ports.LegResult
	err := s.DB.QueryRowContext(ctx, q, origin, destination).
		Scan(&leg.DistanceMiles, &leg.DurationHours, &leg.Polyline)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.LegResult{}, false, nil
	}
	if err != nil {
		return ports.LegResult{}, false, fmt.Errorf("get leg cache: query leg_cache table: %w", err)
	}

	return leg, true, nil
}

// Store a routed leg for an origin/destination pair, replacing any existing entry.
func (s *SqliteLegCache) Put(ctx context.Context, origin, destination string, leg ports.LegResult) error {
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
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT (origin, destination) DO UPDATE SET
		distance_miles = excluded.distance_miles,
		duration_hours = excluded.duration_hours,
		polyline = excluded.polyline;
	`

	if _, err := s.DB.ExecContext(ctx, q, origin, destination, leg.DistanceMiles, leg.DurationHours, leg.Polyline); err != nil {
		return fmt.Errorf("put leg cache: upsert %q -> %q: %w", origin, destination, err)
	}

	return nil
}
