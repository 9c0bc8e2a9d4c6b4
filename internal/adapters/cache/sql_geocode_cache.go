package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"hos-trip-planner/internal/domain"
	"hos-trip-planner/internal/platform/obs"
)

// SQLGeocodeCache is a Postgres-backed cache mapping addresses to geocoded
// locations, for deployments sharing one cache across instances.
type SQLGeocodeCache struct {
	DB *sql.DB
}

func NewSQLGeocodeCache(db *sql.DB) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db}
}

// Fetch cached locations for the given addresses.
func (s *SQLGeocodeCache) GetMany(ctx context.Context, addresses []string) (_ map[string]domain.Location, err error) {
	defer obs.Time(ctx, "geocode.cache.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("geocode cache: db is nil")
	}

	if len(addresses) == 0 {
		return map[string]domain.Location{}, nil
	}

	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(addresses))
	for _, a := range addresses {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}

		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		uniq = append(uniq, a)
	}

	if len(uniq) == 0 {
		return map[string]domain.Location{}, nil
	}

	q := `
	SELECT address, lat, lng, display_name
    FROM geocode_cache
    WHERE address = ANY($1::text[]);
	`

	rows, err := s.DB.QueryContext(ctx, q, uniq)
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]domain.Location, len(uniq))
	for rows.Next() {
		var loc domain.Location
		if err := rows.Scan(&loc.Address, &loc.Lat, &loc.Lng, &loc.DisplayName); err != nil {
			return nil, fmt.Errorf("get geocode cache: scan rows: %w", err)
		}
		out[loc.Address] = loc
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get geocode cache: row iteration: %w", err)
	}

	return out, nil
}

// Store geocoded locations keyed by address, replacing existing entries.
func (s *SQLGeocodeCache) PutMany(ctx context.Context, locations map[string]domain.Location) (err error) {
	defer obs.Time(ctx, "geocode.cache.PutMany")(&err)

	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	if len(locations) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("put geocode cache: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	q := `
	INSERT INTO geocode_cache (address, lat, lng, display_name)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (address) DO UPDATE SET
		lat = EXCLUDED.lat,
		lng = EXCLUDED.lng,
		display_name = EXCLUDED.display_name;
	`

	for addr, loc := range locations {
		addr = strings.TrimSpace(addr)
		if addr == "" {
			continue
		}

		if _, err := tx.ExecContext(ctx, q, addr, loc.Lat, loc.Lng, loc.DisplayName); err != nil {
			return fmt.Errorf("put geocode cache: upsert %q: %w", addr, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("put geocode cache: commit tx: %w", err)
	}

	return nil
}
