package cache

import (
	"context"
	"testing"
	"time"

	"crawl/internal/domain/entity"
	"crawl/internal/domain/service"
	"crawl/internal/testutil"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	from = entity.Coordinate{Lat: 51.5079, Lng: -0.1281}
	to   = entity.Coordinate{Lat: 51.5101, Lng: -0.1340}
)

func newTestCache(t *testing.T, next service.RouteCostProvider) *CostCache {
	t.Helper()

	c, err := New(context.Background(), next, Config{LifeWindow: time.Minute}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	return c
}

func TestCostCache_HitSkipsProvider(t *testing.T) {
	provider := testutil.NewCostProvider()
	c := newTestCache(t, provider)

	first, err := c.RouteCost(context.Background(), from, to)
	require.NoError(t, err)
	second, err := c.RouteCost(context.Background(), from, to)
	require.NoError(t, err)

	assert.Len(t, provider.Calls(), 1)
	assert.Equal(t, first.Duration, second.Duration)
	assert.Equal(t, first.DistanceMeters, second.DistanceMeters)
	assert.Equal(t, first.Geometry, second.Geometry)
	assert.Equal(t, 1, c.Len())
}

func TestCostCache_DirectionalKeys(t *testing.T) {
	provider := testutil.NewCostProvider()
	c := newTestCache(t, provider)

	_, err := c.RouteCost(context.Background(), from, to)
	require.NoError(t, err)
	_, err = c.RouteCost(context.Background(), to, from)
	require.NoError(t, err)

	assert.Len(t, provider.Calls(), 2)
}

func TestCostCache_CachesNoRoute(t *testing.T) {
	provider := testutil.NewCostProvider()
	provider.Fail(from, to, service.ErrNoRoute)
	c := newTestCache(t, provider)

	_, err := c.RouteCost(context.Background(), from, to)
	assert.ErrorIs(t, err, service.ErrNoRoute)
	_, err = c.RouteCost(context.Background(), from, to)
	assert.ErrorIs(t, err, service.ErrNoRoute)

	assert.Len(t, provider.Calls(), 1)
}

func TestCostCache_DoesNotCacheFailures(t *testing.T) {
	provider := testutil.NewCostProvider()
	provider.Fail(from, to, errors.New("upstream unavailable"))
	c := newTestCache(t, provider)

	_, err := c.RouteCost(context.Background(), from, to)
	assert.Error(t, err)
	_, err = c.RouteCost(context.Background(), from, to)
	assert.Error(t, err)

	assert.Len(t, provider.Calls(), 2)
	assert.Zero(t, c.Len())
}

func TestKey_RoundsToFiveDecimals(t *testing.T) {
	a := entity.Coordinate{Lat: 51.507901, Lng: -0.128104}
	b := entity.Coordinate{Lat: 51.507899, Lng: -0.128096}

	assert.Equal(t, Key(a, to), Key(b, to))
	assert.Equal(t, "51.50790,-0.12810->51.51010,-0.13400", Key(a, to))
}
