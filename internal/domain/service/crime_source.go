package service

import (
	"context"

	"crawl/internal/domain/entity"
)

// CrimeSource counts reported incidents near a coordinate
type CrimeSource interface {
	IncidentCount(ctx context.Context, at entity.Coordinate, radiusKm float64) (int, error)
}
