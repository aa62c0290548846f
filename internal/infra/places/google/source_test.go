package google

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"crawl/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"googlemaps.github.io/maps"
)

var centre = entity.Coordinate{Lat: 52.95334, Lng: -1.149964}

const textSearchResponse = `{
	"status": "OK",
	"results": [
		{
			"name": "The Old Trip",
			"place_id": "trip",
			"rating": 4.5,
			"user_ratings_total": 8123,
			"vicinity": "1 Brewhouse Yard",
			"geometry": {"location": {"lat": 52.9488, "lng": -1.1545}},
			"photos": [{"photo_reference": "photo-trip", "height": 100, "width": 100}]
		},
		{
			"name": "Far Away Inn",
			"place_id": "far",
			"rating": 3.1,
			"formatted_address": "Far Lane",
			"geometry": {"location": {"lat": 53.1, "lng": -1.2}}
		},
		{
			"name": "The Old Trip (duplicate)",
			"place_id": "trip",
			"rating": 4.5,
			"geometry": {"location": {"lat": 52.9488, "lng": -1.1545}}
		},
		{
			"name": "Bell Inn",
			"place_id": "bell",
			"rating": 4.2,
			"formatted_address": "18 Angel Row",
			"geometry": {"location": {"lat": 52.9537, "lng": -1.1519}}
		}
	]
}`

func newTestSource(t *testing.T, options Options, handler http.HandlerFunc) *Source {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := maps.NewClient(maps.WithAPIKey("test-key"), maps.WithBaseURL(server.URL), maps.WithHTTPClient(server.Client()))
	require.NoError(t, err)

	return New(client, options, nil)
}

func TestSource_FindLocations(t *testing.T) {
	source := newTestSource(t, Options{}, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/maps/api/place/textsearch/json", r.URL.Path)
		assert.Equal(t, "pub", r.URL.Query().Get("query"))
		assert.Equal(t, "1000", r.URL.Query().Get("radius"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(textSearchResponse))
	})

	locations, err := source.FindLocations(context.Background(), centre, 1)
	require.NoError(t, err)

	require.Len(t, locations, 2)

	trip := locations[0]
	assert.Equal(t, "The Old Trip", trip.Name)
	assert.Equal(t, "google", trip.Source)
	assert.InDelta(t, 4.5, trip.RawRating, 1e-6)
	assert.Equal(t, 8123, trip.UserRatingsTotal)
	assert.Equal(t, "1 Brewhouse Yard", trip.Address)
	assert.Equal(t, "photo-trip", trip.PhotoReference)
	assert.InDelta(t, 52.9488, trip.Lat, 1e-9)
	assert.Greater(t, trip.DistanceKm, 0.0)
	assert.LessOrEqual(t, trip.DistanceKm, 1.0)

	bell := locations[1]
	assert.Equal(t, "Bell Inn", bell.Name)
	assert.Equal(t, "18 Angel Row", bell.Address, "falls back to the formatted address")
	assert.Empty(t, bell.PhoneNumber)
}

func TestSource_FindLocations_Details(t *testing.T) {
	source := newTestSource(t, Options{Query: "bar", Details: true}, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/maps/api/place/textsearch/json":
			assert.Equal(t, "bar", r.URL.Query().Get("query"))
			_, _ = w.Write([]byte(textSearchResponse))
		case "/maps/api/place/details/json":
			if r.URL.Query().Get("placeid") == "bell" || r.URL.Query().Get("place_id") == "bell" {
				_, _ = w.Write([]byte(`{"status": "NOT_FOUND"}`))

				return
			}
			_, _ = w.Write([]byte(`{"status": "OK", "result": {
				"formatted_phone_number": "0115 947 3171",
				"website": "https://example.com/trip"
			}}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	locations, err := source.FindLocations(context.Background(), centre, 1)
	require.NoError(t, err)
	require.Len(t, locations, 2)

	assert.Equal(t, "0115 947 3171", locations[0].PhoneNumber)
	assert.Equal(t, "https://example.com/trip", locations[0].Website)
	assert.Empty(t, locations[1].PhoneNumber, "failed details lookup keeps the search fields")
	assert.Equal(t, "Bell Inn", locations[1].Name)
}

func TestSource_FindLocations_ZeroResults(t *testing.T) {
	source := newTestSource(t, Options{}, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	})

	locations, err := source.FindLocations(context.Background(), centre, 1)
	require.NoError(t, err)
	assert.Empty(t, locations)
}

func TestSource_FindLocations_RequestDenied(t *testing.T) {
	source := newTestSource(t, Options{}, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "REQUEST_DENIED", "error_message": "invalid key"}`))
	})

	_, err := source.FindLocations(context.Background(), centre, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "google places text search failed")
}
