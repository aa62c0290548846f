package impl

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"crawl/config"
	"crawl/internal/crawl/builder"
	"crawl/internal/crawl/rating"
	"crawl/internal/crawl/search"
	deliverycontext "crawl/internal/delivery/context"
	"crawl/internal/domain/entity"
	domainerrors "crawl/internal/domain/errors"
	"crawl/internal/domain/service"
	"crawl/internal/errors"
	"crawl/internal/usecase"

	"go.uber.org/fx"
)

const (
	// fallback defaults to keep planning functional when config is missing/invalid
	defaultSearchRadiusKm = 0.5
	defaultMaxRadiusKm    = 3.0
	defaultCrimeRadiusKm  = 0.1
)

// CrawlServiceParams defines the dependencies of the crawl service
type CrawlServiceParams struct {
	fx.In

	Config *config.Config
	Source service.LocationSource
	Costs  service.RouteCostProvider
	Crime  service.CrimeSource `optional:"true"`
	Logger *slog.Logger        `optional:"true"`
}

type crawlService struct {
	source service.LocationSource
	costs  service.RouteCostProvider
	crime  service.CrimeSource // nil when the penalty is disabled
	graphs *builder.Builder
	logger *slog.Logger

	routing        entity.RoutingConfig
	rating         rating.Options
	radiusKm       float64
	maxRadiusKm    float64
	crimeRadiusKm  float64
	crimePenalty   float64
	requestTimeout time.Duration
}

// NewCrawlService creates a new crawl service instance
func NewCrawlService(params CrawlServiceParams) (usecase.CrawlUsecase, error) {
	cfg := params.Config
	routing, err := cfg.Routing.ToEntity()
	if err != nil {
		return nil, errors.Wrap(err, "invalid routing config")
	}

	logger := params.Logger
	if logger == nil {
		logger = slog.Default()
	}

	svc := &crawlService{
		source:         params.Source,
		costs:          params.Costs,
		graphs:         builder.New(params.Costs, logger),
		logger:         logger,
		routing:        routing,
		rating:         cfg.Rating.ToOptions(),
		radiusKm:       defaultSearchRadiusKm,
		maxRadiusKm:    defaultMaxRadiusKm,
		requestTimeout: cfg.HTTP.RequestTimeout,
	}

	if places := cfg.Places; places != nil {
		if places.RadiusKm > 0 {
			svc.radiusKm = places.RadiusKm
		}
		if places.MaxRadiusKm > 0 {
			svc.maxRadiusKm = places.MaxRadiusKm
		}
	}

	if crime := cfg.Crime; crime != nil && crime.Enabled && params.Crime != nil {
		svc.crime = params.Crime
		svc.crimePenalty = crime.PenaltyPerIncident
		svc.crimeRadiusKm = crime.RadiusKm
		if svc.crimeRadiusKm <= 0 {
			svc.crimeRadiusKm = defaultCrimeRadiusKm
		}
	}

	return svc, nil
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (s *crawlService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, s.logger)
}

// Plan finds candidate locations and returns the best and worst crawls through them
func (s *crawlService) Plan(ctx context.Context, input usecase.PlanInput) (*usecase.CrawlResult, error) {
	radiusKm, err := s.validate(input)
	if err != nil {
		return nil, err
	}

	if s.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.requestTimeout)
		defer cancel()
	}

	locations, err := s.source.FindLocations(ctx, input.Centre, radiusKm)
	if err != nil {
		return nil, s.upstreamError(ctx, domainerrors.ErrLocationSourceFailed, err)
	}

	s.log(ctx).InfoContext(ctx, "Candidate locations found",
		slog.String("centre", input.Centre.String()),
		slog.Float64("radius_km", radiusKm),
		slog.Int("count", len(locations)),
	)

	if s.crime != nil {
		s.countIncidents(ctx, locations)
	}
	s.score(locations)

	cfg := s.routing.WithLowestQuality(input.LowestQuality)
	g, err := s.graphs.Build(ctx, locations, cfg)
	if err != nil {
		if unreachable, ok := errors.AsType[*builder.UnreachableError](err); ok {
			return nil, domainerrors.ErrUnreachableLocation.WithDetails(unreachable.Location.Name)
		}

		return nil, s.upstreamError(ctx, domainerrors.ErrInternalError, err)
	}

	results, err := search.Enumerate(g, cfg)
	if err != nil {
		return nil, domainerrors.ErrRoutingConfig.WithDetails(err.Error())
	}

	selection := search.Select(results, cfg)
	s.log(ctx).DebugContext(ctx, "Routes enumerated",
		slog.Int("vertices", g.Len()),
		slog.Int("routes", search.Count(results)),
		slog.Int("considered", selection.Considered),
	)

	if selection.Empty() {
		return nil, domainerrors.ErrNoItinerary
	}

	result := &usecase.CrawlResult{
		Best:       s.crawlFor(ctx, *selection.Best),
		Worst:      s.crawlFor(ctx, *selection.Worst),
		Candidates: locations,
		Considered: selection.Considered,
	}

	return result, nil
}

func (s *crawlService) validate(input usecase.PlanInput) (float64, error) {
	centre := input.Centre
	if math.IsNaN(centre.Lat) || math.IsNaN(centre.Lng) ||
		centre.Lat < -90 || centre.Lat > 90 || centre.Lng < -180 || centre.Lng > 180 {
		return 0, domainerrors.ErrInvalidSearchArea.WithDetails("coordinate out of range")
	}

	radiusKm := input.RadiusKm
	if radiusKm <= 0 {
		radiusKm = s.radiusKm
	}
	if radiusKm > s.maxRadiusKm {
		return 0, domainerrors.ErrInvalidSearchArea.WithDetails("radius exceeds the maximum search radius")
	}

	return radiusKm, nil
}

// upstreamError maps a collaborator failure, reporting a timeout when the request deadline expired
func (s *crawlService) upstreamError(ctx context.Context, appErr *domainerrors.BaseError, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return domainerrors.ErrRequestTimeout
	}

	s.log(ctx).WarnContext(ctx, "Crawl planning failed", slog.Any("error", err))

	return appErr.WithDetails(err.Error())
}

// score rescales raw ratings and subtracts the crime penalty to produce vertex weights
func (s *crawlService) score(locations []entity.Location) {
	raw := make([]float64, len(locations))
	for i, loc := range locations {
		raw[i] = loc.RawRating
	}

	for i, quality := range rating.Normalize(raw, s.rating) {
		locations[i].Quality = quality - s.crimePenalty*float64(locations[i].IncidentCount)
	}
}

type incidentResult struct {
	idx   int
	count int
}

// countIncidents fills IncidentCount on a bounded worker pool; failed lookups leave it at zero
func (s *crawlService) countIncidents(ctx context.Context, locations []entity.Location) {
	if len(locations) == 0 {
		return
	}

	jobs := make(chan int, len(locations))
	resultCh := make(chan incidentResult, len(locations))

	workerCount := min(max(s.routing.Concurrency, 1), len(locations))
	var workerGroup sync.WaitGroup
	for workerIdx := 0; workerIdx < workerCount; workerIdx++ {
		workerGroup.Add(1)
		go func() {
			defer workerGroup.Done()
			for idx := range jobs {
				count, err := s.crime.IncidentCount(ctx, locations[idx].Coordinate, s.crimeRadiusKm)
				if err != nil {
					s.log(ctx).DebugContext(ctx, "Incident lookup failed",
						slog.String("location", locations[idx].Name),
						slog.Any("error", err),
					)

					continue
				}
				resultCh <- incidentResult{idx: idx, count: count}
			}
		}()
	}

	for idx := range locations {
		jobs <- idx
	}
	close(jobs)

	workerGroup.Wait()
	close(resultCh)

	for res := range resultCh {
		locations[res.idx].IncidentCount = res.count
	}
}

// crawlFor fetches directions for every consecutive pair of stops; a failed segment is skipped
func (s *crawlService) crawlFor(ctx context.Context, route entity.Route) *entity.Crawl {
	crawl := &entity.Crawl{
		Stops:    make([]entity.Stop, 0, route.Len()),
		Segments: make([]entity.Segment, 0, max(route.Len()-1, 0)),
		Weight:   route.Weight,
	}

	for _, loc := range route.Stops {
		crawl.Stops = append(crawl.Stops, entity.StopFromLocation(loc))
	}

	for i := 1; i < route.Len(); i++ {
		from, to := route.Stops[i-1], route.Stops[i]

		cost, err := s.costs.RouteCost(ctx, from.Coordinate, to.Coordinate)
		if err != nil || cost == nil {
			s.log(ctx).WarnContext(ctx, "Skipping segment without directions",
				slog.String("from", from.Name),
				slog.String("to", to.Name),
				slog.Any("error", err),
			)

			continue
		}

		segment := entity.Segment{
			From:           entity.StopFromLocation(from),
			To:             entity.StopFromLocation(to),
			Duration:       cost.Duration,
			DurationMin:    int(math.Round(cost.Minutes())),
			DistanceMeters: int(math.Round(cost.DistanceMeters)),
			Path:           cost.Geometry,
		}
		crawl.Segments = append(crawl.Segments, segment)
		crawl.TotalDurationMin += segment.DurationMin
		crawl.TotalDistanceMeters += segment.DistanceMeters
	}

	return crawl
}
