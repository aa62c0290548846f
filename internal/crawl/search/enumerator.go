// Package search enumerates bounded simple paths over a location graph and picks the
// extremal crawls among them.
package search

import (
	"crawl/internal/crawl/graph"
	"crawl/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrInvalidConfig is returned when the path length window is empty or non-positive
var ErrInvalidConfig = errors.New("invalid path length window")

// StartRoutes holds every route recorded from one starting vertex
type StartRoutes struct {
	Start  entity.Location
	Routes []entity.Route
}

type frame struct {
	neighbors []graph.Neighbor
	next      int
}

// Enumerate explores, from every vertex in insertion order, every simple path of at most
// cfg.MaxLength stops and records those with at least cfg.MinLength stops.
//
// A path starting at s weighs q(s); each extension to v over edge e adds
// q(v) - cost(e)*cfg.CostScale, where q is the vertex weight, negated in lowest-quality
// mode. The start vertex's quality is counted once, so a path of n stops over n-1 edges
// weighs the sum of its n qualities minus its scaled edge costs. Neighbors are expanded in
// adjacency order, so the output order is stable.
func Enumerate(g *graph.Graph, cfg entity.RoutingConfig) ([]StartRoutes, error) {
	if cfg.MinLength < 1 || cfg.MaxLength < cfg.MinLength {
		return nil, errors.Wrapf(ErrInvalidConfig, "min %d, max %d", cfg.MinLength, cfg.MaxLength)
	}

	vertices := g.Vertices()
	results := make([]StartRoutes, 0, len(vertices))

	for _, start := range vertices {
		routes, err := enumerateFrom(g, start, cfg)
		if err != nil {
			return nil, err
		}
		results = append(results, StartRoutes{Start: start, Routes: routes})
	}

	return results, nil
}

func enumerateFrom(g *graph.Graph, start entity.Location, cfg entity.RoutingConfig) ([]entity.Route, error) {
	sign := cfg.QualitySign()
	quality := func(loc entity.Location) (float64, error) {
		w, err := g.VertexWeight(loc)

		return sign * w, err
	}

	startQuality, err := quality(start)
	if err != nil {
		return nil, err
	}

	var routes []entity.Route
	path := []entity.Location{start}
	weights := []float64{startQuality}
	onPath := map[entity.VertexKey]bool{start.Key(): true}

	record := func() {
		if len(path) >= cfg.MinLength {
			routes = append(routes, entity.Route{
				Stops:  append([]entity.Location(nil), path...),
				Weight: weights[len(weights)-1],
			})
		}
	}
	record()

	if cfg.MaxLength == 1 {
		return routes, nil
	}

	startNeighbors, err := g.Neighbors(start)
	if err != nil {
		return nil, err
	}

	// stack[i] iterates the neighbors of path[i]
	stack := []frame{{neighbors: startNeighbors}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next >= len(top.neighbors) {
			stack = stack[:len(stack)-1]
			last := path[len(path)-1]
			delete(onPath, last.Key())
			path = path[:len(path)-1]
			weights = weights[:len(weights)-1]

			continue
		}

		nb := top.neighbors[top.next]
		top.next++
		if onPath[nb.Location.Key()] {
			continue
		}

		q, err := quality(nb.Location)
		if err != nil {
			return nil, err
		}

		path = append(path, nb.Location)
		weights = append(weights, weights[len(weights)-1]+q-nb.Weight*cfg.CostScale)
		record()

		if len(path) == cfg.MaxLength {
			path = path[:len(path)-1]
			weights = weights[:len(weights)-1]

			continue
		}

		next, err := g.Neighbors(nb.Location)
		if err != nil {
			return nil, err
		}
		onPath[nb.Location.Key()] = true
		stack = append(stack, frame{neighbors: next})
	}

	return routes, nil
}
