// Package cache keeps route cost lookups in memory so repeated pairs (graph edges that are
// later fetched again as crawl segments, or repeated requests for the same area) skip the
// upstream provider.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"crawl/internal/domain/entity"
	"crawl/internal/domain/service"

	"github.com/allegro/bigcache/v3"
	"github.com/pkg/errors"
)

const defaultLifeWindow = 24 * time.Hour

type entry struct {
	DurationNs     int64               `json:"d"`
	DistanceMeters float64             `json:"m"`
	Geometry       []entity.Coordinate `json:"g,omitempty"`
	NoRoute        bool                `json:"n,omitempty"`
}

// Config configures the cost cache
type Config struct {
	LifeWindow         time.Duration // Time after which an entry can be evicted
	HardMaxCacheSizeMB int           // 0 is unlimited
}

// CostCache is a RouteCostProvider decorator backed by BigCache.
// Successful lookups and "no route" answers are cached; other failures are not.
type CostCache struct {
	cache  *bigcache.BigCache
	next   service.RouteCostProvider
	logger *slog.Logger
}

// New creates a cost cache in front of next
func New(ctx context.Context, next service.RouteCostProvider, cfg Config, logger *slog.Logger) (*CostCache, error) {
	if logger == nil {
		logger = slog.Default()
	}

	lifeWindow := cfg.LifeWindow
	if lifeWindow <= 0 {
		lifeWindow = defaultLifeWindow
	}

	bigCacheConfig := bigcache.DefaultConfig(lifeWindow)
	bigCacheConfig.CleanWindow = lifeWindow / 4
	bigCacheConfig.HardMaxCacheSize = cfg.HardMaxCacheSizeMB
	bigCacheConfig.Verbose = false

	cache, err := bigcache.New(ctx, bigCacheConfig)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create route cost cache")
	}

	return &CostCache{
		cache:  cache,
		next:   next,
		logger: logger,
	}, nil
}

// Key rounds both coordinates to five decimals (about one meter)
func Key(from, to entity.Coordinate) string {
	return fmt.Sprintf("%.5f,%.5f->%.5f,%.5f", from.Lat, from.Lng, to.Lat, to.Lng)
}

// RouteCost returns the cached cost or asks the next provider
func (c *CostCache) RouteCost(ctx context.Context, from, to entity.Coordinate) (*service.RouteCost, error) {
	key := Key(from, to)

	if cached, ok := c.get(key); ok {
		if cached.NoRoute {
			return nil, errors.Wrap(service.ErrNoRoute, "cached")
		}

		return &service.RouteCost{
			Duration:       time.Duration(cached.DurationNs),
			DistanceMeters: cached.DistanceMeters,
			Geometry:       cached.Geometry,
		}, nil
	}

	cost, err := c.next.RouteCost(ctx, from, to)
	switch {
	case err == nil && cost != nil:
		c.set(key, entry{
			DurationNs:     int64(cost.Duration),
			DistanceMeters: cost.DistanceMeters,
			Geometry:       cost.Geometry,
		})
	case errors.Is(err, service.ErrNoRoute):
		c.set(key, entry{NoRoute: true})
	}

	return cost, err
}

// Len returns the number of cached entries
func (c *CostCache) Len() int {
	return c.cache.Len()
}

// Close releases the cache
func (c *CostCache) Close() error {
	return errors.Wrap(c.cache.Close(), "failed to close route cost cache")
}

func (c *CostCache) get(key string) (entry, bool) {
	raw, err := c.cache.Get(key)
	if err != nil {
		if !errors.Is(err, bigcache.ErrEntryNotFound) {
			c.logger.Warn("Route cost cache read failed", slog.String("key", key), slog.Any("error", err))
		}

		return entry{}, false
	}

	var cached entry
	if err := json.Unmarshal(raw, &cached); err != nil {
		c.logger.Warn("Dropping undecodable route cost cache entry", slog.String("key", key), slog.Any("error", err))
		_ = c.cache.Delete(key)

		return entry{}, false
	}

	return cached, true
}

func (c *CostCache) set(key string, value entry) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}

	if err := c.cache.Set(key, raw); err != nil {
		c.logger.Warn("Route cost cache write failed", slog.String("key", key), slog.Any("error", err))
	}
}
