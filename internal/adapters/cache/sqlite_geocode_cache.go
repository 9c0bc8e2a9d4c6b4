package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"hos-trip-planner/internal/domain"
)

// SQLite backed cache mapping address strings to geocoded locations.
// Address keys are expected to be consistent (e.g., normalized)
// by the caller.
type SqliteGeocodeCache struct {
	DB *sql.DB
}

func NewSqliteGeocodeCache(db *sql.DB) *SqliteGeocodeCache {
	return &SqliteGeocodeCache{DB: db}
}

// Fetch cached locations for the given addresses.
func (s *SqliteGeocodeCache) GetMany(ctx context.Context, addresses []string) (map[string]domain.Location, error) {
	if s.DB == nil {
		return nil, errors.New("geocode cache: db is nil")
	}

	if len(addresses) == 0 {
		return map[string]domain.Location{}, nil
	}

	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(addresses))
	ph := make([]string, 0, len(addresses))
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
		ph = append(ph, "?")
	}

	if len(uniq) == 0 {
		return map[string]domain.Location{}, nil
	}

	args := make([]any, 0, len(uniq))
	for _, a := range uniq {
		args = append(args, a)
	}

	// SQLite does not support binding slices directly in an IN (...) clause.
	// Only the placeholder structure is interpolated; all values remain parameterized.
	q := fmt.Sprintf(`
	SELECT
        address,
        lat,
        lng,
        display_name
    FROM geocode_cache
    WHERE address IN (%s);
	`, strings.Join(ph, ","))

	rows, err := s.DB.QueryContext(ctx, q, args...)
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
func (s *SqliteGeocodeCache) PutMany(ctx context.Context, locations map[string]domain.Location) error {
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
	VALUES (?, ?, ?, ?)
	ON CONFLICT (address) DO UPDATE SET
		lat = excluded.lat,
		lng = excluded.lng,
		display_name = excluded.display_name;
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
