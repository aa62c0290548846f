package google

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"crawl/internal/domain/entity"
	"crawl/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"googlemaps.github.io/maps"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient("test-key", maps.WithBaseURL(server.URL), maps.WithHTTPClient(server.Client()))
	require.NoError(t, err)

	return New(client)
}

func TestProvider_RouteCost(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/maps/api/directions/json", r.URL.Path)
		assert.Equal(t, "walking", r.URL.Query().Get("mode"))
		assert.Equal(t, "38.500000,-120.200000", r.URL.Query().Get("origin"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"routes": [{
				"overview_polyline": {"points": "_p~iF~ps|U_ulLnnqC_mqNvxq` + "`" + `@"},
				"legs": [
					{"distance": {"text": "0.4 km", "value": 400}, "duration": {"text": "5 mins", "value": 300}},
					{"distance": {"text": "0.2 km", "value": 212}, "duration": {"text": "2 mins", "value": 141}}
				]
			}]
		}`))
	})

	cost, err := provider.RouteCost(context.Background(),
		entity.Coordinate{Lat: 38.5, Lng: -120.2},
		entity.Coordinate{Lat: 43.252, Lng: -126.453},
	)
	require.NoError(t, err)

	assert.Equal(t, 612.0, cost.DistanceMeters)
	assert.Equal(t, 441*time.Second, cost.Duration)
	require.Len(t, cost.Geometry, 3)
	assert.InDelta(t, 38.5, cost.Geometry[0].Lat, 1e-5)
	assert.InDelta(t, -120.2, cost.Geometry[0].Lng, 1e-5)
	assert.InDelta(t, 43.252, cost.Geometry[2].Lat, 1e-5)
}

func TestProvider_RouteCost_ZeroResults(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "ZERO_RESULTS", "routes": []}`))
	})

	_, err := provider.RouteCost(context.Background(), entity.Coordinate{Lat: 1}, entity.Coordinate{Lat: 2})
	assert.ErrorIs(t, err, service.ErrNoRoute)
}

func TestProvider_RouteCost_RequestDenied(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "REQUEST_DENIED", "error_message": "invalid key"}`))
	})

	_, err := provider.RouteCost(context.Background(), entity.Coordinate{Lat: 1}, entity.Coordinate{Lat: 2})
	require.Error(t, err)
	assert.NotErrorIs(t, err, service.ErrNoRoute)
}

type stubClient struct {
	routes []maps.Route
}

func (s stubClient) Directions(context.Context, *maps.DirectionsRequest) ([]maps.Route, []maps.GeocodedWaypoint, error) {
	return s.routes, nil, nil
}

func TestProvider_RouteCost_NoLegs(t *testing.T) {
	_, err := New(stubClient{routes: []maps.Route{{}}}).RouteCost(context.Background(), entity.Coordinate{}, entity.Coordinate{Lat: 1})
	assert.ErrorIs(t, err, service.ErrNoRoute)
}

func TestNewClient_RequiresKey(t *testing.T) {
	_, err := NewClient(" ")
	assert.Error(t, err)
}
