package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"hos-trip-planner/internal/domain"
	"hos-trip-planner/internal/platform/obs"
	"hos-trip-planner/internal/ports"
)

const DefaultNominatimBaseURL = "https://nominatim.openstreetmap.org"

// NominatimGeocoder implements the Geocoder port against the OpenStreetMap
// Nominatim search API, with an optional persistent geocode cache consulted
// before any network call. Safe for concurrent use.
type NominatimGeocoder struct {
	client  *client
	baseURL string
	cache   ports.GeocodeCache
}

func NewNominatimGeocoder(baseURL string, cache ports.GeocodeCache) *NominatimGeocoder {
	if baseURL == "" {
		baseURL = DefaultNominatimBaseURL
	}
	return &NominatimGeocoder{
		client:  newClient(),
		baseURL: baseURL,
		cache:   cache,
	}
}

// Nominatim returns lat/lon as JSON strings.
type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocode resolves a single address, preferring the cache.
func (g *NominatimGeocoder) Geocode(ctx context.Context, address string) (_ domain.Location, err error) {
	defer obs.Time(ctx, "nominatim.Geocode")(&err)

	norm := normalize(address)
	if norm == "" {
		return domain.Location{}, errors.New("geocode: address must be non-empty")
	}

	if g.cache != nil {
		hits, err := g.cache.GetMany(ctx, []string{norm})
		if err != nil {
			return domain.Location{}, fmt.Errorf("geocode cache: %w", err)
		}
		if loc, ok := hits[norm]; ok {
			return loc, nil
		}
	}

	results, err := g.search(ctx, norm, 1)
	if err != nil {
		return domain.Location{}, err
	}
	if len(results) == 0 {
		return domain.Location{}, fmt.Errorf("geocode %q: %w", address, ports.ErrLocationNotFound)
	}

	loc, err := results[0].toLocation(norm)
	if err != nil {
		return domain.Location{}, fmt.Errorf("geocode %q: %w", address, err)
	}

	if g.cache != nil {
		if err := g.cache.PutMany(ctx, map[string]domain.Location{norm: loc}); err != nil {
			log.Printf("geocode cache write failed: %v", err)
		}
	}

	return loc, nil
}

// Suggest returns up to limit candidate locations for a partial query.
// Suggestions are not cached; queries are too varied to be worth storing.
func (g *NominatimGeocoder) Suggest(ctx context.Context, query string, limit int) (_ []domain.Location, err error) {
	defer obs.Time(ctx, "nominatim.Suggest")(&err)

	norm := normalize(query)
	if norm == "" {
		return []domain.Location{}, nil
	}
	if limit <= 0 {
		limit = 5
	}

	results, err := g.search(ctx, norm, limit)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Location, 0, len(results))
	for _, r := range results {
		loc, err := r.toLocation(norm)
		if err != nil {
			return nil, fmt.Errorf("suggest %q: %w", query, err)
		}
		out = append(out, loc)
	}

	return out, nil
}

func (g *NominatimGeocoder) search(ctx context.Context, query string, limit int) ([]nominatimResult, error) {
	endpoint := g.baseURL + "/search"

	resp, err := g.client.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := g.client.newRequest(ctx, http.MethodGet, endpoint)
		if err != nil {
			return nil, err
		}
		q := url.Values{}
		q.Set("q", query)
		q.Set("format", "json")
		q.Set("limit", strconv.Itoa(limit))
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("nominatim search: %w", err)
	}
	defer resp.Body.Close()

	var decoded []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode nominatim response: %w", err)
	}

	return decoded, nil
}

func (r nominatimResult) toLocation(address string) (domain.Location, error) {
	lat, err := strconv.ParseFloat(r.Lat, 64)
	if err != nil {
		return domain.Location{}, fmt.Errorf("parse lat %q: %w", r.Lat, err)
	}
	lng, err := strconv.ParseFloat(r.Lon, 64)
	if err != nil {
		return domain.Location{}, fmt.Errorf("parse lon %q: %w", r.Lon, err)
	}

	return domain.Location{
		Address:     address,
		Lat:         lat,
		Lng:         lng,
		DisplayName: r.DisplayName,
	}, nil
}
