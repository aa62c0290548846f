// Package places holds the helpers shared by the location sources.
package places

import (
	"math"

	"crawl/internal/domain/entity"

	"github.com/paulmach/orb/geo"
)

// DistanceKm returns the geodesic distance between a and b in kilometers
func DistanceKm(a, b entity.Coordinate) float64 {
	return geo.Distance(a.Point(), b.Point()) / 1000
}

// WithinRadius keeps the locations no further than radiusKm from centre, in order, stamping
// each with its distance rounded to 10 m. Locations sharing a place ID after the first are dropped.
func WithinRadius(centre entity.Coordinate, locations []entity.Location, radiusKm float64) []entity.Location {
	seen := make(map[string]struct{}, len(locations))
	filtered := make([]entity.Location, 0, len(locations))

	for _, loc := range locations {
		distance := DistanceKm(centre, loc.Coordinate)
		if distance > radiusKm {
			continue
		}
		if loc.PlaceID != "" {
			if _, dup := seen[loc.PlaceID]; dup {
				continue
			}
			seen[loc.PlaceID] = struct{}{}
		}

		loc.DistanceKm = math.Round(distance*100) / 100
		filtered = append(filtered, loc)
	}

	return filtered
}
