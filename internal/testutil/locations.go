// Package testutil holds deterministic fixtures shared by package tests.
package testutil

import (
	"fmt"
	"math"

	"crawl/internal/domain/entity"
)

// Pentagon returns five locations on a regular pentagon of the given radius in degrees
// around (0, 0), all with the same raw rating
func Pentagon(radius, rating float64) []entity.Location {
	locations := make([]entity.Location, 0, 5)
	for i := range 5 {
		angle := 2 * math.Pi * float64(i) / 5
		locations = append(locations, entity.Location{
			Coordinate: entity.Coordinate{
				Lat: radius * math.Sin(angle),
				Lng: radius * math.Cos(angle),
			},
			Name:      fmt.Sprintf("P%d", i),
			RawRating: rating,
			Quality:   rating,
			Source:    "test",
		})
	}

	return locations
}

// PentagonSide is the side length, in degrees, of a regular pentagon with the given radius
func PentagonSide(radius float64) float64 {
	return 2 * radius * math.Sin(math.Pi/5)
}

// Cluster returns n locations spaced 0.001 degrees apart east of origin
func Cluster(prefix string, origin entity.Coordinate, n int, quality float64) []entity.Location {
	locations := make([]entity.Location, 0, n)
	for i := range n {
		locations = append(locations, entity.Location{
			Coordinate: entity.Coordinate{Lat: origin.Lat, Lng: origin.Lng + 0.001*float64(i)},
			Name:       fmt.Sprintf("%s%d", prefix, i),
			RawRating:  quality,
			Quality:    quality,
			Source:     "test",
		})
	}

	return locations
}
