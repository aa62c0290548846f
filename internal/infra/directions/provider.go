package directions

import (
	"context"
	"log/slog"

	"crawl/config"
	"crawl/internal/domain/constants"
	"crawl/internal/domain/service"
	"crawl/internal/infra/cache"
	"crawl/internal/infra/directions/google"
	"crawl/internal/infra/directions/haversine"
	"crawl/internal/infra/directions/network"
	"crawl/internal/infra/directions/osrm"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

// Stack is a composed route cost provider and the resources it holds
type Stack struct {
	service.RouteCostProvider

	cache *cache.CostCache
}

// Close releases the cache, if any
func (s *Stack) Close() error {
	if s.cache == nil {
		return nil
	}

	return s.cache.Close()
}

// NewBase creates the bare provider named by cfg.Provider
func NewBase(cfg *config.DirectionsConfig, logger *slog.Logger) (service.RouteCostProvider, error) {
	switch cfg.Provider {
	case constants.DirectionsProviderGoogle:
		if cfg.APIKey == "" {
			return nil, errors.New("API key is required for google directions provider")
		}
		client, err := google.NewClient(cfg.APIKey)
		if err != nil {
			return nil, err
		}

		return google.New(client), nil

	case constants.DirectionsProviderOSRM:
		if cfg.OSRMBaseURL == "" {
			return nil, errors.New("base URL is required for osrm directions provider")
		}

		return osrm.New(cfg.OSRMBaseURL, nil), nil

	case constants.DirectionsProviderHaversine:
		return haversine.New(cfg.WalkingSpeedKmh, 0), nil

	case constants.DirectionsProviderNetwork:
		if cfg.NetworkDataPath == "" {
			return nil, errors.New("data path is required for network directions provider")
		}
		engine := network.NewEngine(network.EngineConfig{
			MaxSnapDistanceMeters: cfg.MaxSnapDistanceMeters,
			WalkingSpeedKmh:       cfg.WalkingSpeedKmh,
		}, logger)
		if err := engine.Load(cfg.NetworkDataPath); err != nil {
			return nil, err
		}

		return engine, nil

	default:
		return nil, errors.Errorf("unknown directions provider: %s", cfg.Provider)
	}
}

// Compose wraps base in the call policies from cfg, innermost first:
// metrics, timeout, rate limit, retry and finally the cache.
// A nil reg skips metrics.
func Compose(ctx context.Context, base service.RouteCostProvider, cfg *config.Config, reg prometheus.Registerer, logger *slog.Logger) (*Stack, error) {
	directions := cfg.Directions
	provider := base

	if reg != nil {
		provider = NewMetrics(reg).Instrument(directions.Provider, provider)
	}
	provider = WithTimeout(provider, directions.Timeout)
	provider = WithRateLimit(provider, NewLimiter(directions.RatePerSecond, directions.Burst))
	provider = WithRetry(provider, RetryPolicy{
		Retries: directions.Retries,
		Backoff: directions.RetryBackoff,
		Logger:  logger,
	})

	stack := &Stack{RouteCostProvider: provider}
	if cfg.Cache != nil && cfg.Cache.Enabled {
		costCache, err := cache.New(ctx, provider, cache.Config{
			LifeWindow:         cfg.Cache.LifeWindow,
			HardMaxCacheSizeMB: cfg.Cache.HardMaxCacheSizeMB,
		}, logger)
		if err != nil {
			return nil, err
		}
		stack.RouteCostProvider = costCache
		stack.cache = costCache
	}

	return stack, nil
}

// ProviderParams holds dependencies for the route cost provider, injected by Fx
type ProviderParams struct {
	fx.In

	Lc         fx.Lifecycle
	Ctx        context.Context
	Config     *config.Config
	Logger     *slog.Logger
	Registerer prometheus.Registerer `optional:"true"`
}

// NewProvider creates the configured route cost provider and closes its cache on shutdown
func NewProvider(params ProviderParams) (service.RouteCostProvider, error) {
	logger := params.Logger

	base, err := NewBase(params.Config.Directions, logger)
	if err != nil {
		return nil, err
	}

	stack, err := Compose(params.Ctx, base, params.Config, params.Registerer, logger)
	if err != nil {
		return nil, err
	}

	logger.Info("Route cost provider ready",
		slog.String("provider", params.Config.Directions.Provider),
		slog.Bool("cache", stack.cache != nil),
	)

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("Closing route cost provider")

			return stack.Close()
		},
	})

	return stack, nil
}

// Module provides the route cost provider Fx module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewProvider),
)
