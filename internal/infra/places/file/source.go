// Package file serves candidate locations from a local JSON file, for offline planning
// and demos without a Places API key.
package file

import (
	"context"
	"encoding/json"
	"os"

	"crawl/internal/domain/constants"
	"crawl/internal/domain/entity"
	"crawl/internal/infra/places"

	"github.com/pkg/errors"
)

// Record is one location in the file
type Record struct {
	Name             string  `json:"name"`
	Lat              float64 `json:"lat"`
	Lng              float64 `json:"lng"`
	Rating           float64 `json:"rating"`
	UserRatingsTotal int     `json:"user_ratings_total,omitempty"`
	Address          string  `json:"address,omitempty"`
	PlaceID          string  `json:"place_id,omitempty"`
	PhoneNumber      string  `json:"phone_number,omitempty"`
	Website          string  `json:"website,omitempty"`
}

// Source implements service.LocationSource over an in-memory list
type Source struct {
	locations []entity.Location
}

// Load reads a JSON array of records from path
func Load(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read locations file")
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrapf(err, "failed to parse locations file %s", path)
	}

	return New(records), nil
}

// New creates a source over records
func New(records []Record) *Source {
	locations := make([]entity.Location, 0, len(records))
	for _, record := range records {
		locations = append(locations, entity.Location{
			Coordinate:       entity.Coordinate{Lat: record.Lat, Lng: record.Lng},
			Name:             record.Name,
			RawRating:        record.Rating,
			Source:           constants.SourceFile,
			PlaceID:          record.PlaceID,
			Address:          record.Address,
			UserRatingsTotal: record.UserRatingsTotal,
			PhoneNumber:      record.PhoneNumber,
			Website:          record.Website,
		})
	}

	return &Source{locations: locations}
}

// FindLocations returns the records within radiusKm of centre, in file order
func (s *Source) FindLocations(ctx context.Context, centre entity.Coordinate, radiusKm float64) ([]entity.Location, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	return places.WithinRadius(centre, s.locations, radiusKm), nil
}

// Len returns the number of records loaded
func (s *Source) Len() int {
	return len(s.locations)
}
