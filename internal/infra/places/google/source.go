// Package google finds candidate locations with the Google Places text search.
package google

import (
	"context"
	"log/slog"
	"math"
	"strings"

	"crawl/internal/domain/constants"
	"crawl/internal/domain/entity"
	"crawl/internal/infra/places"

	"github.com/pkg/errors"
	"googlemaps.github.io/maps"
)

const defaultQuery = "pub"

// PlacesClient is the subset of *maps.Client used by the source
type PlacesClient interface {
	TextSearch(ctx context.Context, r *maps.TextSearchRequest) (maps.PlacesSearchResponse, error)
	PlaceDetails(ctx context.Context, r *maps.PlaceDetailsRequest) (maps.PlaceDetailsResult, error)
}

// Options configures the search
type Options struct {
	Query   string // Text query, "pub" when empty
	Details bool   // Fetch phone and website per place
}

// Source implements service.LocationSource over Google Places
type Source struct {
	client  PlacesClient
	options Options
	logger  *slog.Logger
}

// New creates a places source
func New(client PlacesClient, options Options, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(options.Query) == "" {
		options.Query = defaultQuery
	}

	return &Source{client: client, options: options, logger: logger}
}

// FindLocations runs a text search biased to the circle around centre and keeps the
// results that actually fall inside it
func (s *Source) FindLocations(ctx context.Context, centre entity.Coordinate, radiusKm float64) ([]entity.Location, error) {
	resp, err := s.client.TextSearch(ctx, &maps.TextSearchRequest{
		Query:    s.options.Query,
		Location: &maps.LatLng{Lat: centre.Lat, Lng: centre.Lng},
		Radius:   uint(math.Ceil(radiusKm * 1000)),
	})
	if err != nil {
		if strings.Contains(err.Error(), "ZERO_RESULTS") {
			return []entity.Location{}, nil
		}

		return nil, errors.Wrap(err, "google places text search failed")
	}

	locations := make([]entity.Location, 0, len(resp.Results))
	for _, result := range resp.Results {
		locations = append(locations, toLocation(result))
	}

	locations = places.WithinRadius(centre, locations, radiusKm)

	if s.options.Details {
		for idx := range locations {
			s.addDetails(ctx, &locations[idx])
		}
	}

	s.logger.DebugContext(ctx, "Places search finished",
		slog.String("query", s.options.Query),
		slog.Int("results", len(resp.Results)),
		slog.Int("within_radius", len(locations)),
	)

	return locations, nil
}

// addDetails fills contact fields. A failed lookup leaves the search fields in place.
func (s *Source) addDetails(ctx context.Context, loc *entity.Location) {
	if loc.PlaceID == "" {
		return
	}

	details, err := s.client.PlaceDetails(ctx, &maps.PlaceDetailsRequest{PlaceID: loc.PlaceID})
	if err != nil {
		s.logger.WarnContext(ctx, "Place details lookup failed",
			slog.String("place_id", loc.PlaceID),
			slog.Any("error", err),
		)

		return
	}

	loc.PhoneNumber = details.FormattedPhoneNumber
	loc.Website = details.Website
	if details.FormattedAddress != "" && loc.Address == "" {
		loc.Address = details.FormattedAddress
	}
	if loc.PhotoReference == "" && len(details.Photos) > 0 {
		loc.PhotoReference = details.Photos[0].PhotoReference
	}
}

func toLocation(result maps.PlacesSearchResult) entity.Location {
	loc := entity.Location{
		Coordinate:       entity.Coordinate{Lat: result.Geometry.Location.Lat, Lng: result.Geometry.Location.Lng},
		Name:             result.Name,
		RawRating:        float64(result.Rating),
		Source:           constants.SourceGoogle,
		PlaceID:          result.PlaceID,
		Address:          result.Vicinity,
		UserRatingsTotal: result.UserRatingsTotal,
	}
	if loc.Address == "" {
		loc.Address = result.FormattedAddress
	}
	if len(result.Photos) > 0 {
		loc.PhotoReference = result.Photos[0].PhotoReference
	}

	return loc
}
