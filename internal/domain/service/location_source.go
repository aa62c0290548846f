package service

import (
	"context"

	"crawl/internal/domain/entity"
)

// LocationSource finds candidate locations around a centre point.
// Returned locations are already filtered to the search radius and carry their raw rating.
type LocationSource interface {
	FindLocations(ctx context.Context, centre entity.Coordinate, radiusKm float64) ([]entity.Location, error)
}
