// Package osrm looks up walking routes from an OSRM server.
package osrm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"crawl/internal/domain/entity"
	"crawl/internal/domain/service"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
)

const (
	// DefaultBaseURL is the public OSRM demo server
	DefaultBaseURL = "https://router.project-osrm.org"
	profile        = "foot"
	maxErrorBody   = 512
)

// RequestError is returned when the OSRM API answers with an unexpected status or payload
type RequestError struct {
	StatusCode int
	Reason     string
}

func (e *RequestError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("osrm request failed: %s", e.Reason)
	}

	return fmt.Sprintf("osrm request failed: HTTP %d: %s", e.StatusCode, e.Reason)
}

type routeResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Distance float64           `json:"distance"` // meters
		Duration float64           `json:"duration"` // seconds
		Geometry *geojson.Geometry `json:"geometry"`
	} `json:"routes"`
}

// Provider implements service.RouteCostProvider on the OSRM route service
type Provider struct {
	baseURL    string
	httpClient *http.Client
}

// New creates an OSRM provider. An empty base URL uses the public server and a nil
// client gets a 30 second timeout.
func New(baseURL string, httpClient *http.Client) *Provider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Provider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// RouteCost requests the fastest foot route between two coordinates
func (p *Provider) RouteCost(ctx context.Context, from, to entity.Coordinate) (*service.RouteCost, error) {
	queryURL := fmt.Sprintf("%s/route/v1/%s/%.6f,%.6f;%.6f,%.6f?overview=full&geometries=geojson",
		p.baseURL, profile, from.Lng, from.Lat, to.Lng, to.Lat)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, queryURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create osrm request")
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "osrm request failed")
	}
	defer resp.Body.Close()

	var body routeResponse
	decodeErr := json.NewDecoder(io.LimitReader(resp.Body, 8<<20)).Decode(&body)

	// OSRM reports "no route" as 400 with a JSON code
	if body.Code == "NoRoute" || body.Code == "NoSegment" {
		return nil, errors.Wrapf(service.ErrNoRoute, "osrm: %s", body.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &RequestError{StatusCode: resp.StatusCode, Reason: truncate(body.Code + " " + body.Message)}
	}
	if decodeErr != nil {
		return nil, &RequestError{Reason: decodeErr.Error()}
	}
	if body.Code != "Ok" || len(body.Routes) == 0 {
		return nil, errors.Wrapf(service.ErrNoRoute, "osrm code %q", body.Code)
	}

	route := body.Routes[0]

	return &service.RouteCost{
		Duration:       time.Duration(route.Duration * float64(time.Second)),
		DistanceMeters: route.Distance,
		Geometry:       lineCoordinates(route.Geometry),
	}, nil
}

func lineCoordinates(geometry *geojson.Geometry) []entity.Coordinate {
	if geometry == nil {
		return nil
	}

	line, ok := geometry.Geometry().(orb.LineString)
	if !ok {
		return nil
	}

	coords := make([]entity.Coordinate, 0, len(line))
	for _, point := range line {
		coords = append(coords, entity.CoordinateFromPoint(point))
	}

	return coords
}

func truncate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxErrorBody {
		return s[:maxErrorBody]
	}

	return s
}
