package impl

import (
	"context"
	"sync/atomic"
	"testing"

	"crawl/config"
	"crawl/internal/domain/entity"
	domainerrors "crawl/internal/domain/errors"
	"crawl/internal/domain/service"
	"crawl/internal/errors"
	mockService "crawl/internal/mocks/service"
	"crawl/internal/testutil"
	"crawl/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testCentre = entity.Coordinate{Lat: 0, Lng: 0}

func pentagonConfig() *config.Config {
	cfg := &config.Config{
		Routing: &config.RoutingConfig{
			MinLength:     3,
			MaxLength:     4,
			NeighborCount: 2,
		},
	}

	return cfg
}

func newTestCrawlService(t *testing.T, cfg *config.Config, source service.LocationSource, costs service.RouteCostProvider, crime service.CrimeSource) usecase.CrawlUsecase {
	t.Helper()

	svc, err := NewCrawlService(CrawlServiceParams{
		Config: cfg,
		Source: source,
		Costs:  costs,
		Crime:  crime,
	})
	require.NoError(t, err)

	return svc
}

func requireAppError(t *testing.T, err error, code string) domainerrors.AppError {
	t.Helper()

	appErr, ok := errors.AsType[domainerrors.AppError](err)
	require.True(t, ok, "expected AppError, got %v", err)
	assert.Equal(t, code, appErr.ErrorCode())

	return appErr
}

func TestCrawlService_PlanPentagon(t *testing.T) {
	source := mockService.NewMockLocationSource(t)
	source.EXPECT().
		FindLocations(mock.Anything, testCentre, defaultSearchRadiusKm).
		Return(testutil.Pentagon(0.01, 3.0), nil)

	svc := newTestCrawlService(t, pentagonConfig(), source, testutil.NewCostProvider(), nil)

	result, err := svc.Plan(context.Background(), usecase.PlanInput{Centre: testCentre})
	require.NoError(t, err)
	require.NotNil(t, result.Best)
	require.NotNil(t, result.Worst)

	cost := testutil.PentagonSide(0.01) * 10
	assert.InDelta(t, 20-3*cost*entity.DefaultCostScale, result.Best.Weight, 1e-6)
	assert.InDelta(t, 15-2*cost*entity.DefaultCostScale, result.Worst.Weight, 1e-6)

	assert.Len(t, result.Best.Stops, 4)
	assert.Len(t, result.Best.Segments, 3)
	assert.Len(t, result.Worst.Segments, 2)
	assert.Equal(t, "P0", result.Best.Stops[0].Name)
	assert.Equal(t, 3.0, result.Best.Stops[0].Rating)

	total := 0
	for i, segment := range result.Best.Segments {
		assert.Equal(t, result.Best.Stops[i], segment.From)
		assert.Equal(t, result.Best.Stops[i+1], segment.To)
		assert.NotEmpty(t, segment.Path)
		total += segment.DistanceMeters
	}
	assert.Equal(t, total, result.Best.TotalDistanceMeters)
	assert.Equal(t, 20, result.Considered)

	require.Len(t, result.Candidates, 5)
	for _, loc := range result.Candidates {
		assert.Equal(t, 5.0, loc.Quality)
	}
}

func TestCrawlService_PlanLowestQuality(t *testing.T) {
	source := mockService.NewMockLocationSource(t)
	source.EXPECT().
		FindLocations(mock.Anything, testCentre, defaultSearchRadiusKm).
		Return(testutil.Pentagon(0.01, 3.0), nil)

	svc := newTestCrawlService(t, pentagonConfig(), source, testutil.NewCostProvider(), nil)

	result, err := svc.Plan(context.Background(), usecase.PlanInput{Centre: testCentre, LowestQuality: true})
	require.NoError(t, err)

	cost := testutil.PentagonSide(0.01) * 10
	assert.InDelta(t, -15-2*cost*entity.DefaultCostScale, result.Best.Weight, 1e-6)
	assert.InDelta(t, -20-3*cost*entity.DefaultCostScale, result.Worst.Weight, 1e-6)
}

func TestCrawlService_PlanCrimePenalty(t *testing.T) {
	locations := testutil.Pentagon(0.01, 3.0)
	locations[1].RawRating = 4.0

	source := mockService.NewMockLocationSource(t)
	source.EXPECT().
		FindLocations(mock.Anything, testCentre, defaultSearchRadiusKm).
		Return(locations, nil)

	crime := mockService.NewMockCrimeSource(t)
	crime.EXPECT().
		IncidentCount(mock.Anything, mock.Anything, 0.2).
		RunAndReturn(func(_ context.Context, at entity.Coordinate, _ float64) (int, error) {
			switch at {
			case locations[0].Coordinate:
				return 4, nil
			case locations[2].Coordinate:
				return 0, errors.New("police api unavailable")
			default:
				return 0, nil
			}
		})

	cfg := pentagonConfig()
	cfg.Crime = &config.CrimeConfig{Enabled: true, RadiusKm: 0.2, PenaltyPerIncident: 0.5}

	svc := newTestCrawlService(t, cfg, source, testutil.NewCostProvider(), crime)

	result, err := svc.Plan(context.Background(), usecase.PlanInput{Centre: testCentre})
	require.NoError(t, err)

	byName := make(map[string]entity.Location)
	for _, loc := range result.Candidates {
		byName[loc.Name] = loc
	}

	assert.Equal(t, 4, byName["P0"].IncidentCount)
	assert.InDelta(t, -2.0, byName["P0"].Quality, 1e-9)
	assert.InDelta(t, 5.0, byName["P1"].Quality, 1e-9)
	assert.Equal(t, 0, byName["P2"].IncidentCount)
	assert.InDelta(t, 0.0, byName["P2"].Quality, 1e-9)
}

func TestCrawlService_CrimeDisabledIgnoresSource(t *testing.T) {
	source := mockService.NewMockLocationSource(t)
	source.EXPECT().
		FindLocations(mock.Anything, testCentre, defaultSearchRadiusKm).
		Return(testutil.Pentagon(0.01, 3.0), nil)

	// No expectations: any call fails the test
	crime := mockService.NewMockCrimeSource(t)

	svc := newTestCrawlService(t, pentagonConfig(), source, testutil.NewCostProvider(), crime)

	_, err := svc.Plan(context.Background(), usecase.PlanInput{Centre: testCentre})
	require.NoError(t, err)
}

func TestCrawlService_PlanSkipsFailedSegment(t *testing.T) {
	locations := testutil.Pentagon(0.01, 3.0)

	source := mockService.NewMockLocationSource(t)
	source.EXPECT().
		FindLocations(mock.Anything, testCentre, defaultSearchRadiusKm).
		Return(locations, nil)

	// The builder makes five lookups for the pentagon, then the best crawl's segments follow in order
	inner := testutil.NewCostProvider()
	var calls atomic.Int32
	costs := service.RouteCostProviderFunc(func(ctx context.Context, from, to entity.Coordinate) (*service.RouteCost, error) {
		if calls.Add(1) == 7 {
			return nil, service.ErrNoRoute
		}

		return inner.RouteCost(ctx, from, to)
	})

	svc := newTestCrawlService(t, pentagonConfig(), source, costs, nil)

	result, err := svc.Plan(context.Background(), usecase.PlanInput{Centre: testCentre})
	require.NoError(t, err)

	assert.Len(t, result.Best.Stops, 4)
	require.Len(t, result.Best.Segments, 2)
	assert.Equal(t, result.Best.Stops[0], result.Best.Segments[0].From)
	assert.Equal(t, result.Best.Stops[2], result.Best.Segments[1].From)
	assert.Len(t, result.Worst.Segments, 2)
}

func TestCrawlService_PlanErrors(t *testing.T) {
	t.Run("source failure", func(t *testing.T) {
		source := mockService.NewMockLocationSource(t)
		source.EXPECT().
			FindLocations(mock.Anything, testCentre, defaultSearchRadiusKm).
			Return(nil, errors.New("quota exceeded"))

		svc := newTestCrawlService(t, pentagonConfig(), source, testutil.NewCostProvider(), nil)

		_, err := svc.Plan(context.Background(), usecase.PlanInput{Centre: testCentre})
		appErr := requireAppError(t, err, "LOCATION_SOURCE_FAILED")
		assert.Equal(t, 502, appErr.HTTPCode())
		assert.Contains(t, appErr.Details(), "quota exceeded")
	})

	t.Run("too few locations", func(t *testing.T) {
		source := mockService.NewMockLocationSource(t)
		source.EXPECT().
			FindLocations(mock.Anything, testCentre, defaultSearchRadiusKm).
			Return(testutil.Pentagon(0.01, 3.0)[:2], nil)

		svc := newTestCrawlService(t, pentagonConfig(), source, testutil.NewCostProvider(), nil)

		_, err := svc.Plan(context.Background(), usecase.PlanInput{Centre: testCentre})
		appErr := requireAppError(t, err, "NO_ITINERARY")
		assert.Equal(t, 404, appErr.HTTPCode())
	})

	t.Run("no locations", func(t *testing.T) {
		source := mockService.NewMockLocationSource(t)
		source.EXPECT().
			FindLocations(mock.Anything, testCentre, 1.5).
			Return([]entity.Location{}, nil)

		svc := newTestCrawlService(t, pentagonConfig(), source, testutil.NewCostProvider(), nil)

		_, err := svc.Plan(context.Background(), usecase.PlanInput{Centre: testCentre, RadiusKm: 1.5})
		requireAppError(t, err, "NO_ITINERARY")
	})

	t.Run("unreachable location", func(t *testing.T) {
		west := testutil.Cluster("W", entity.Coordinate{Lat: 0, Lng: 0}, 3, 4)
		east := testutil.Cluster("E", entity.Coordinate{Lat: 0.004, Lng: 0.004}, 3, 2)

		source := mockService.NewMockLocationSource(t)
		source.EXPECT().
			FindLocations(mock.Anything, testCentre, defaultSearchRadiusKm).
			Return(append(west, east...), nil)

		inner := testutil.NewCostProvider()
		costs := service.RouteCostProviderFunc(func(ctx context.Context, from, to entity.Coordinate) (*service.RouteCost, error) {
			if (from.Lat < 0.002) != (to.Lat < 0.002) {
				return nil, service.ErrNoRoute
			}

			return inner.RouteCost(ctx, from, to)
		})

		svc := newTestCrawlService(t, pentagonConfig(), source, costs, nil)

		_, err := svc.Plan(context.Background(), usecase.PlanInput{Centre: testCentre})
		appErr := requireAppError(t, err, "UNREACHABLE_LOCATION")
		assert.Equal(t, "E0", appErr.Details())
	})
}

func TestCrawlService_PlanValidatesArea(t *testing.T) {
	tests := []struct {
		name  string
		input usecase.PlanInput
	}{
		{name: "latitude out of range", input: usecase.PlanInput{Centre: entity.Coordinate{Lat: 91, Lng: 0}}},
		{name: "longitude out of range", input: usecase.PlanInput{Centre: entity.Coordinate{Lat: 0, Lng: -181}}},
		{name: "radius too large", input: usecase.PlanInput{Centre: testCentre, RadiusKm: 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// No expectations: the source must not be called
			source := mockService.NewMockLocationSource(t)
			svc := newTestCrawlService(t, pentagonConfig(), source, testutil.NewCostProvider(), nil)

			_, err := svc.Plan(context.Background(), tt.input)
			requireAppError(t, err, "INVALID_SEARCH_AREA")
		})
	}
}

func TestNewCrawlService_InvalidRouting(t *testing.T) {
	cfg := &config.Config{Routing: &config.RoutingConfig{MinLength: 6, MaxLength: 2}}

	_, err := NewCrawlService(CrawlServiceParams{Config: cfg})
	assert.Error(t, err)
}
