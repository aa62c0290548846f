// Package haversine estimates walking costs from great-circle distance.
// It needs no network access and backs the offline CLI and the "haversine" provider.
package haversine

import (
	"context"
	"math"
	"time"

	"crawl/internal/domain/entity"
	"crawl/internal/domain/service"

	"github.com/paulmach/orb/geo"
	"github.com/pkg/errors"
)

const (
	// DefaultWalkingSpeedKmh is a typical adult walking pace
	DefaultWalkingSpeedKmh = 5.0
	// DefaultDetourFactor inflates straight-line distance towards street distance
	DefaultDetourFactor = 1.3
)

// ErrInvalidCoordinate is returned for coordinates outside the valid geographic bounds
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Provider implements service.RouteCostProvider with straight-line estimates
type Provider struct {
	speedKmh     float64
	detourFactor float64
}

// New creates a provider. Non-positive values fall back to the defaults.
func New(speedKmh, detourFactor float64) *Provider {
	if speedKmh <= 0 {
		speedKmh = DefaultWalkingSpeedKmh
	}
	if detourFactor < 1 {
		detourFactor = DefaultDetourFactor
	}

	return &Provider{
		speedKmh:     speedKmh,
		detourFactor: detourFactor,
	}
}

// RouteCost returns the detour-adjusted great-circle estimate between two coordinates.
// The geometry is the straight segment between them.
func (p *Provider) RouteCost(ctx context.Context, from, to entity.Coordinate) (*service.RouteCost, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}
	if !isValidCoordinate(from) || !isValidCoordinate(to) {
		return nil, errors.Wrapf(ErrInvalidCoordinate, "%s -> %s", from, to)
	}

	distanceMeters := geo.DistanceHaversine(from.Point(), to.Point()) * p.detourFactor
	hours := distanceMeters / 1000 / p.speedKmh

	return &service.RouteCost{
		Duration:       time.Duration(hours * float64(time.Hour)),
		DistanceMeters: distanceMeters,
		Geometry:       []entity.Coordinate{from, to},
	}, nil
}

// isValidCoordinate checks if a coordinate is within valid geographic bounds (Earth)
func isValidCoordinate(coord entity.Coordinate) bool {
	// Reject NaN or infinities early
	if math.IsNaN(coord.Lat) || math.IsNaN(coord.Lng) ||
		math.IsInf(coord.Lat, 0) || math.IsInf(coord.Lng, 0) {
		return false
	}

	return coord.Lat >= -90 && coord.Lat <= 90 &&
		coord.Lng >= -180 && coord.Lng <= 180
}
