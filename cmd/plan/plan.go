package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"crawl/config"
	"crawl/internal/domain/constants"
	"crawl/internal/domain/entity"
	"crawl/internal/domain/service"
	"crawl/internal/infra/directions"
	logs "crawl/internal/infra/log"
	"crawl/internal/infra/places/file"
	googleplaces "crawl/internal/infra/places/google"
	"crawl/internal/usecase"
	"crawl/internal/usecase/impl"
	"crawl/internal/util"

	"github.com/pkg/errors"
	"googlemaps.github.io/maps"
)

// setup loads the config and the logger shared by the subcommands. Logs go to stderr
// so stdout only carries the report.
func setup() (*config.Config, *slog.Logger, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to load config")
	}

	logger, err := logs.NewWithWriter(os.Stderr, cfg.Env.Log)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to create logger")
	}

	return cfg, logger, nil
}

func newSource(cfg *config.Config, placesFile string, logger *slog.Logger) (service.LocationSource, error) {
	if placesFile != "" {
		return file.Load(placesFile)
	}

	switch cfg.Places.Provider {
	case constants.PlacesProviderGoogle:
		client, err := maps.NewClient(maps.WithAPIKey(cfg.Places.APIKey))
		if err != nil {
			return nil, errors.Wrap(err, "failed to create google maps client")
		}

		return googleplaces.New(client, googleplaces.Options{
			Query:   cfg.Places.Query,
			Details: cfg.Places.Details,
		}, logger), nil
	case constants.PlacesProviderFile:
		return file.Load(cfg.Places.File)
	default:
		return nil, errors.Errorf("unknown places provider: %s", cfg.Places.Provider)
	}
}

func runPlan(ctx context.Context, point pointFlags, worst bool, provider string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	if provider != "" {
		cfg.Directions.Provider = provider
	}
	// A single run never needs the crime penalty client
	cfg.Crime.Enabled = false

	source, err := newSource(cfg, *point.places, logger)
	if err != nil {
		return err
	}

	base, err := directions.NewBase(cfg.Directions, logger)
	if err != nil {
		return err
	}
	costs, err := directions.Compose(ctx, base, cfg, nil, logger)
	if err != nil {
		return err
	}
	defer costs.Close()

	planner, err := impl.NewCrawlService(impl.CrawlServiceParams{
		Config: cfg,
		Source: source,
		Costs:  costs,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	start := time.Now()
	result, err := planner.Plan(ctx, usecase.PlanInput{
		Centre:        entity.Coordinate{Lat: *point.lat, Lng: *point.lng},
		RadiusKm:      *point.radiusKm,
		LowestQuality: worst,
	})
	if err != nil {
		return errors.Wrap(err, "failed to plan crawl")
	}

	fmt.Printf("Considered %d routes through %d locations in %s\n",
		result.Considered, len(result.Candidates), util.FormatDuration(time.Since(start)))

	printCrawl("Best crawl", result.Best)
	if worst {
		printCrawl("Worst crawl", result.Worst)
	}

	return nil
}

func printCrawl(title string, crawl *entity.Crawl) {
	fmt.Printf("\n%s\n", title)
	if crawl == nil {
		fmt.Println("  none")

		return
	}

	fmt.Printf("  weight %.2f, %s walking, %s\n",
		crawl.Weight,
		util.FormatDuration(time.Duration(crawl.TotalDurationMin)*time.Minute),
		util.FormatDistance(crawl.TotalDistanceMeters),
	)
	for idx, stop := range crawl.Stops {
		fmt.Printf("  %d. %s (%.1f)\n", idx+1, stop.Name, stop.Rating)
		if idx < len(crawl.Segments) {
			segment := crawl.Segments[idx]
			fmt.Printf("     -> %s, %s\n",
				util.FormatDuration(time.Duration(segment.DurationMin)*time.Minute),
				util.FormatDistance(segment.DistanceMeters),
			)
		}
	}
}

func runNearby(ctx context.Context, point pointFlags) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	source, err := newSource(cfg, *point.places, logger)
	if err != nil {
		return err
	}

	radiusKm := *point.radiusKm
	if radiusKm <= 0 {
		radiusKm = cfg.Places.RadiusKm
	}
	if radiusKm <= 0 {
		return errors.New("--radius flag is required when no search radius is configured")
	}

	centre := entity.Coordinate{Lat: *point.lat, Lng: *point.lng}
	locations, err := source.FindLocations(ctx, centre, radiusKm)
	if err != nil {
		return errors.Wrap(err, "failed to find locations")
	}

	fmt.Printf("%d locations within %.2f km of %s\n", len(locations), radiusKm, centre)
	for _, loc := range locations {
		fmt.Printf("  %-32s %4.1f  %s\n", loc.Name, loc.RawRating, util.FormatDistance(int(loc.DistanceKm*1000)))
	}

	return nil
}
