package geo

import (
	"context"
	"fmt"

	"hos-trip-planner/internal/domain"
	"hos-trip-planner/internal/ports"
)

// Fixture-backed Geocoder for tests.
type MockGeocoder struct {
	m map[string]domain.Location
}

func NewMockGeocoder(locations []domain.Location) *MockGeocoder {
	m := make(map[string]domain.Location, len(locations))
	for _, loc := range locations {
		m[loc.Address] = loc
	}
	return &MockGeocoder{m: m}
}

func (g *MockGeocoder) Geocode(ctx context.Context, address string) (domain.Location, error) {
	loc, ok := g.m[normalize(address)]
	if !ok {
		return domain.Location{}, fmt.Errorf("mock geocode %q: %w", address, ports.ErrLocationNotFound)
	}
	return loc, nil
}

func (g *MockGeocoder) Suggest(ctx context.Context, query string, limit int) ([]domain.Location, error) {
	out := make([]domain.Location, 0, limit)
	for _, loc := range g.m {
		if len(out) == limit {
			break
		}
		out = append(out, loc)
	}
	return out, nil
}

type MockLeg struct {
	From, To string
	Miles    float64
	Hours    float64
	Polyline string
}

// Fixture-backed RouteProvider for tests.
type MockRouteProvider struct {
	m map[string]ports.LegResult
}

func NewMockRouteProvider(legs []MockLeg) *MockRouteProvider {
	m := make(map[string]ports.LegResult, len(legs))
	for _, l := range legs {
		m[l.From+"|"+l.To] = ports.LegResult{
			DistanceMiles: l.Miles,
			DurationHours: l.Hours,
			Polyline:      l.Polyline,
		}
	}
	return &MockRouteProvider{m: m}
}

func (p *MockRouteProvider) GetLeg(ctx context.Context, from, to domain.Location) (ports.LegResult, error) {
	leg, ok := p.m[from.Address+"|"+to.Address]
	if !ok {
		return ports.LegResult{}, fmt.Errorf("missing leg %q -> %q", from.Address, to.Address)
	}
	return leg, nil
}
