package service

import (
	"context"
	"time"

	"crawl/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrNoRoute is returned by a RouteCostProvider when the provider has no walking route
// between the two coordinates
var ErrNoRoute = errors.New("no route between coordinates")

// RouteCost is the walking cost between two coordinates
type RouteCost struct {
	Duration       time.Duration
	DistanceMeters float64
	Geometry       []entity.Coordinate // Path geometry, empty when the provider does not return one
}

// Minutes returns the duration in fractional minutes
func (c RouteCost) Minutes() float64 {
	return c.Duration.Minutes()
}

// Kilometers returns the distance in kilometers
func (c RouteCost) Kilometers() float64 {
	return c.DistanceMeters / 1000
}

// EdgeCost returns the edge weight for the selected metric
func (c RouteCost) EdgeCost(metric entity.CostMetric) float64 {
	if metric == entity.CostMetricDistance {
		return c.Kilometers()
	}

	return c.Minutes()
}

// RouteCostProvider looks up the walking cost between two coordinates.
// Implementations are called concurrently and must be safe for concurrent use.
type RouteCostProvider interface {
	RouteCost(ctx context.Context, from, to entity.Coordinate) (*RouteCost, error)
}

// RouteCostProviderFunc adapts a function to RouteCostProvider
type RouteCostProviderFunc func(ctx context.Context, from, to entity.Coordinate) (*RouteCost, error)

// RouteCost calls f(ctx, from, to)
func (f RouteCostProviderFunc) RouteCost(ctx context.Context, from, to entity.Coordinate) (*RouteCost, error) {
	return f(ctx, from, to)
}
