// Package police counts street-level crimes from the data.police.uk API.
package police

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"crawl/internal/domain/entity"

	"github.com/paulmach/orb/geo"
	"github.com/pkg/errors"
)

const (
	// DefaultBaseURL is the public API root
	DefaultBaseURL = "https://data.police.uk/api"
	category       = "all-crime"
)

// ErrInvalidMonth is returned for a month not in YYYY-MM form
var ErrInvalidMonth = errors.New("month must be YYYY-MM")

// StatusError is returned for a non-200 answer
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("police api returned HTTP %d", e.StatusCode)
}

type crime struct {
	Category string `json:"category"`
	Month    string `json:"month"`
	Location struct {
		Latitude  string `json:"latitude"`
		Longitude string `json:"longitude"`
	} `json:"location"`
}

// Client implements service.CrimeSource
type Client struct {
	baseURL    string
	month      string
	httpClient *http.Client
}

// New creates a client for month (YYYY-MM, empty for the latest month the API has).
// A nil httpClient gets a 30 second timeout.
func New(baseURL, month string, httpClient *http.Client) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if month != "" {
		if _, err := time.Parse("2006-01", month); err != nil {
			return nil, errors.Wrapf(ErrInvalidMonth, "%q", month)
		}
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		month:      month,
		httpClient: httpClient,
	}, nil
}

// IncidentCount returns the number of crimes reported within radiusKm of at.
// The API answers for a fixed one mile circle, which is narrowed here.
func (c *Client) IncidentCount(ctx context.Context, at entity.Coordinate, radiusKm float64) (int, error) {
	crimes, err := c.streetCrimes(ctx, at)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, item := range crimes {
		lat, latErr := strconv.ParseFloat(item.Location.Latitude, 64)
		lng, lngErr := strconv.ParseFloat(item.Location.Longitude, 64)
		if latErr != nil || lngErr != nil {
			continue
		}

		if geo.Distance(at.Point(), entity.Coordinate{Lat: lat, Lng: lng}.Point())/1000 <= radiusKm {
			count++
		}
	}

	return count, nil
}

func (c *Client) streetCrimes(ctx context.Context, at entity.Coordinate) ([]crime, error) {
	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(at.Lat, 'f', 6, 64))
	query.Set("lng", strconv.FormatFloat(at.Lng, 'f', 6, 64))
	if c.month != "" {
		query.Set("date", c.month)
	}

	queryURL := fmt.Sprintf("%s/crimes-street/%s?%s", c.baseURL, category, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, queryURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create police api request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "police api request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))

		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	var crimes []crime
	if err := json.NewDecoder(io.LimitReader(resp.Body, 32<<20)).Decode(&crimes); err != nil {
		return nil, errors.Wrap(err, "failed to decode police api response")
	}

	return crimes, nil
}
