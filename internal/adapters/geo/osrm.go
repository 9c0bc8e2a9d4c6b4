package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"

	"hos-trip-planner/internal/domain"
	"hos-trip-planner/internal/platform/obs"
	"hos-trip-planner/internal/ports"
)

const DefaultOSRMBaseURL = "http://router.project-osrm.org"

const metersPerMile = 1609.344

// OSRMRouteProvider implements the RouteProvider port against the OSRM
// driving profile, with an optional persistent leg cache keyed by the
// normalized origin/destination address pair. Safe for concurrent use.
type OSRMRouteProvider struct {
	client  *client
	baseURL string
	cache   ports.LegCache
}

func NewOSRMRouteProvider(baseURL string, cache ports.LegCache) *OSRMRouteProvider {
	if baseURL == "" {
		baseURL = DefaultOSRMBaseURL
	}
	return &OSRMRouteProvider{
		client:  newClient(),
		baseURL: baseURL,
		cache:   cache,
	}
}

type osrmResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Distance float64 `json:"distance"` // meters
		Duration float64 `json:"duration"` // seconds
		Geometry string  `json:"geometry"` // encoded polyline
	} `json:"routes"`
}

// GetLeg returns the driving leg between two located waypoints, preferring
// the cache and converting OSRM's meters/seconds to miles/hours.
func (p *OSRMRouteProvider) GetLeg(ctx context.Context, from, to domain.Location) (_ ports.LegResult, err error) {
	defer obs.Time(ctx, "osrm.GetLeg")(&err)

	origin := normalize(from.Address)
	destination := normalize(to.Address)

	if p.cache != nil && origin != "" && destination != "" {
		leg, ok, err := p.cache.Get(ctx, origin, destination)
		if err != nil {
			return ports.LegResult{}, fmt.Errorf("leg cache: %w", err)
		}
		if ok {
			return leg, nil
		}
	}

	endpoint := fmt.Sprintf(
		"%s/route/v1/driving/%f,%f;%f,%f",
		p.baseURL, from.Lng, from.Lat, to.Lng, to.Lat,
	)

	resp, err := p.client.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := p.client.newRequest(ctx, http.MethodGet, endpoint)
		if err != nil {
			return nil, err
		}
		q := url.Values{}
		q.Set("overview", "full")
		q.Set("alternatives", "false")
		q.Set("steps", "false")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return ports.LegResult{}, fmt.Errorf("osrm route request: %w", err)
	}
	defer resp.Body.Close()

	var decoded osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.LegResult{}, fmt.Errorf("decode osrm response: %w", err)
	}

	if decoded.Code != "Ok" {
		return ports.LegResult{}, fmt.Errorf("osrm route failed: code=%s message=%s", decoded.Code, decoded.Message)
	}
	if len(decoded.Routes) == 0 {
		return ports.LegResult{}, fmt.Errorf("osrm returned no routes for %q -> %q", origin, destination)
	}

	route := decoded.Routes[0]
	leg := ports.LegResult{
		DistanceMiles: route.Distance / metersPerMile,
		DurationHours: route.Duration / 3600,
		Polyline:      route.Geometry,
	}

	if p.cache != nil && origin != "" && destination != "" {
		if err := p.cache.Put(ctx, origin, destination, leg); err != nil {
			log.Printf("leg cache write failed: %v", err)
		}
	}

	return leg, nil
}
