package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"crawl/config"
	"crawl/internal/delivery"
	"crawl/internal/delivery/api"
	"crawl/internal/delivery/api/router/handler"
	"crawl/internal/domain/constants"
	"crawl/internal/domain/service"
	"crawl/internal/errors"
	"crawl/internal/infra/crime/police"
	"crawl/internal/infra/directions"
	logs "crawl/internal/infra/log"
	"crawl/internal/infra/places/file"
	googleplaces "crawl/internal/infra/places/google"
	"crawl/internal/usecase/impl"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
	"googlemaps.github.io/maps"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectService(),
		injectUsecase(),
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			newRegistry,
			newRegisterer,
			newGatherer,
		),
		directions.Module,
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			newLocationSource,
			newCrimeSource,
		),
	)
}

// newRegistry creates the registry every collector of the process registers with
func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return reg
}

func newRegisterer(reg *prometheus.Registry) prometheus.Registerer {
	return reg
}

func newGatherer(reg *prometheus.Registry) prometheus.Gatherer {
	return reg
}

// newLocationSource selects the candidate location provider from config
func newLocationSource(cfg *config.Config, logger *slog.Logger) (service.LocationSource, error) {
	if cfg.Places == nil {
		return nil, errors.New("places config is required")
	}

	switch cfg.Places.Provider {
	case constants.PlacesProviderGoogle:
		if cfg.Places.APIKey == "" {
			return nil, errors.New("API key is required for google places provider")
		}

		client, err := maps.NewClient(maps.WithAPIKey(cfg.Places.APIKey))
		if err != nil {
			return nil, errors.Wrap(err, "failed to create google maps client")
		}

		return googleplaces.New(client, googleplaces.Options{
			Query:   cfg.Places.Query,
			Details: cfg.Places.Details,
		}, logger), nil
	case constants.PlacesProviderFile:
		source, err := file.Load(cfg.Places.File)
		if err != nil {
			return nil, err
		}
		logger.Info("Loaded locations file",
			slog.String("path", cfg.Places.File),
			slog.Int("locations", source.Len()),
		)

		return source, nil
	default:
		return nil, errors.Errorf("unknown places provider: %s", cfg.Places.Provider)
	}
}

// newCrimeSource creates the police API client. The crime penalty is optional.
func newCrimeSource(cfg *config.Config) (service.CrimeSource, error) {
	if cfg.Crime == nil || !cfg.Crime.Enabled {
		return nil, nil
	}

	client, err := police.New(cfg.Crime.BaseURL, cfg.Crime.Month, &http.Client{Timeout: cfg.Crime.Timeout})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create police API client")
	}

	return client, nil
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewCrawlService,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewCrawlHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
