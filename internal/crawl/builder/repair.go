package builder

import (
	"context"
	"log/slog"

	"crawl/internal/crawl/graph"
	"crawl/internal/domain/entity"

	"github.com/pkg/errors"
)

// repair bridges every component not reachable from the first vertex.
// Each stranded vertex is linked to the geographically nearest reached vertex, after
// which its whole component counts as reached.
func (b *Builder) repair(ctx context.Context, g *graph.Graph, cfg entity.RoutingConfig) error {
	vertices := g.Vertices()
	if len(vertices) < 2 {
		return nil
	}

	reached := make(map[entity.VertexKey]bool, len(vertices))
	if err := markComponent(g, vertices[0], reached); err != nil {
		return err
	}

	for _, stranded := range vertices {
		if reached[stranded.Key()] {
			continue
		}
		if ctx.Err() != nil {
			return errors.Wrap(ctx.Err(), "connectivity repair canceled")
		}

		anchor, ok := nearestReached(stranded, vertices, reached)
		if !ok {
			return &UnreachableError{Location: stranded}
		}

		cost, err := b.provider.RouteCost(ctx, anchor.Coordinate, stranded.Coordinate)
		if err != nil {
			return &UnreachableError{Location: stranded, Err: err}
		}
		if cost == nil {
			return &UnreachableError{Location: stranded}
		}

		if err := g.AddEdge(anchor, stranded, cost.EdgeCost(cfg.CostMetric)); err != nil {
			return errors.Wrap(err, "failed to add bridge edge")
		}

		b.logger.Debug("Bridged disconnected location",
			slog.String("location", stranded.Name),
			slog.String("anchor", anchor.Name),
		)

		if err := markComponent(g, stranded, reached); err != nil {
			return err
		}
	}

	return nil
}

func markComponent(g *graph.Graph, start entity.Location, reached map[entity.VertexKey]bool) error {
	return g.Walk(start, func(loc entity.Location) bool {
		if reached[loc.Key()] {
			return false
		}
		reached[loc.Key()] = true

		return true
	})
}
