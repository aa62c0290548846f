// Package builder turns a set of locations into a connected location graph.
//
// Edges are limited to each location's k nearest neighbors, which keeps the edge count
// at O(V*k). Costs come from a RouteCostProvider queried on a bounded worker pool; a failed
// lookup only drops that edge. A repair pass then bridges any disconnected component to
// its nearest reached vertex.
package builder

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"crawl/internal/crawl/graph"
	"crawl/internal/domain/entity"
	"crawl/internal/domain/service"

	"github.com/pkg/errors"
)

// Builder constructs location graphs through a RouteCostProvider
type Builder struct {
	provider service.RouteCostProvider
	logger   *slog.Logger
}

// New creates a builder. A nil logger falls back to slog.Default.
func New(provider service.RouteCostProvider, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}

	return &Builder{
		provider: provider,
		logger:   logger,
	}
}

// Build adds every location as a vertex weighted by its Quality, connects k-nearest
// pairs whose cost lookup succeeds, and repairs connectivity.
// Locations sharing a coordinate pair collapse into the first one.
func (b *Builder) Build(ctx context.Context, locations []entity.Location, cfg entity.RoutingConfig) (*graph.Graph, error) {
	g := graph.New()
	for _, loc := range locations {
		if !g.HasVertex(loc) {
			g.AddVertex(loc, loc.Quality)
		}
	}

	vertices := g.Vertices()
	pairs := candidatePairs(vertices, cfg.NeighborCount)

	edges, err := b.fetchEdges(ctx, vertices, pairs, cfg)
	if err != nil {
		return nil, err
	}

	for _, edge := range edges {
		pair := pairs[edge.pairIdx]
		if err := g.AddEdge(vertices[pair.i], vertices[pair.j], edge.cost); err != nil {
			return nil, errors.Wrap(err, "failed to add edge")
		}
	}

	b.logger.Debug("Initial crawl graph built",
		slog.Int("vertices", g.Len()),
		slog.Int("candidate_pairs", len(pairs)),
		slog.Int("edges", len(edges)),
	)

	if err := b.repair(ctx, g, cfg); err != nil {
		return nil, err
	}

	return g, nil
}

type edgeResult struct {
	pairIdx int
	cost    float64
}

// fetchEdges looks up every candidate pair on the worker pool and returns the successful
// lookups sorted by candidate order
func (b *Builder) fetchEdges(ctx context.Context, vertices []entity.Location, pairs []candidatePair, cfg entity.RoutingConfig) ([]edgeResult, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	workerCount := min(max(cfg.Concurrency, 1), len(pairs))

	jobs := make(chan int, len(pairs))
	resultsCh := make(chan edgeResult, len(pairs))

	var waitGroup sync.WaitGroup
	for workerIdx := 0; workerIdx < workerCount; workerIdx++ {
		waitGroup.Add(1)
		go b.lookupWorker(ctx, &waitGroup, vertices, pairs, cfg.CostMetric, jobs, resultsCh)
	}

	go func() {
		defer close(jobs)
		for idx := range pairs {
			if ctx.Err() != nil {
				return
			}
			jobs <- idx
		}
	}()

	go func() {
		waitGroup.Wait()
		close(resultsCh)
	}()

	var edges []edgeResult
	for res := range resultsCh {
		edges = append(edges, res)
	}

	if ctx.Err() != nil {
		return nil, errors.Wrap(ctx.Err(), "graph construction canceled")
	}

	sort.Slice(edges, func(a, c int) bool {
		return edges[a].pairIdx < edges[c].pairIdx
	})

	return edges, nil
}

func (b *Builder) lookupWorker(
	ctx context.Context,
	waitGroup *sync.WaitGroup,
	vertices []entity.Location,
	pairs []candidatePair,
	metric entity.CostMetric,
	jobs <-chan int,
	resultsCh chan<- edgeResult,
) {
	defer waitGroup.Done()

	for idx := range jobs {
		if ctx.Err() != nil {
			return
		}

		from, to := vertices[pairs[idx].i], vertices[pairs[idx].j]
		cost, err := b.provider.RouteCost(ctx, from.Coordinate, to.Coordinate)
		if err != nil || cost == nil {
			b.logger.Debug("Skipping edge without route cost",
				slog.String("from", from.Name),
				slog.String("to", to.Name),
				slog.Any("error", err),
			)

			continue
		}

		resultsCh <- edgeResult{pairIdx: idx, cost: cost.EdgeCost(metric)}
	}
}
