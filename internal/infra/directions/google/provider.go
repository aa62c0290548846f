// Package google looks up walking routes through the Google Maps Directions API.
package google

import (
	"context"
	"strings"
	"time"

	"crawl/internal/domain/entity"
	"crawl/internal/domain/service"

	"github.com/pkg/errors"
	"googlemaps.github.io/maps"
)

// DirectionsClient is the subset of *maps.Client used by the provider
type DirectionsClient interface {
	Directions(ctx context.Context, r *maps.DirectionsRequest) ([]maps.Route, []maps.GeocodedWaypoint, error)
}

// Provider implements service.RouteCostProvider with walking directions
type Provider struct {
	client DirectionsClient
}

// New wraps a directions client
func New(client DirectionsClient) *Provider {
	return &Provider{client: client}
}

// NewClient creates a Maps API client for the given key. Extra options (such as
// maps.WithBaseURL) are applied after the key.
func NewClient(apiKey string, opts ...maps.ClientOption) (*maps.Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("google maps api key is required")
	}

	client, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create google maps client")
	}

	return client, nil
}

// RouteCost requests walking directions and sums the legs of the first route
func (p *Provider) RouteCost(ctx context.Context, from, to entity.Coordinate) (*service.RouteCost, error) {
	routes, _, err := p.client.Directions(ctx, &maps.DirectionsRequest{
		Origin:      from.String(),
		Destination: to.String(),
		Mode:        maps.TravelModeWalking,
	})
	if err != nil {
		if isNoResult(err) {
			return nil, errors.Wrap(service.ErrNoRoute, err.Error())
		}

		return nil, errors.Wrap(err, "google directions request failed")
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return nil, errors.Wrap(service.ErrNoRoute, "google directions returned no legs")
	}

	route := routes[0]
	cost := &service.RouteCost{}
	var duration time.Duration
	for _, leg := range route.Legs {
		duration += leg.Duration
		cost.DistanceMeters += float64(leg.Distance.Meters)
	}
	cost.Duration = duration

	points, err := route.OverviewPolyline.Decode()
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode route polyline")
	}
	cost.Geometry = make([]entity.Coordinate, 0, len(points))
	for _, point := range points {
		cost.Geometry = append(cost.Geometry, entity.Coordinate{Lat: point.Lat, Lng: point.Lng})
	}

	return cost, nil
}

func isNoResult(err error) bool {
	msg := err.Error()

	return strings.Contains(msg, "ZERO_RESULTS") || strings.Contains(msg, "NOT_FOUND")
}
