package search

import "crawl/internal/domain/entity"

// Selection is the outcome of a best/worst scan
type Selection struct {
	Best       *entity.Route
	Worst      *entity.Route
	Considered int // Routes left after the stop cap
}

// Empty reports whether no route survived the cap
func (s Selection) Empty() bool {
	return s.Considered == 0
}

// Select scans every route in start-then-exploration order, skipping routes with more
// than cfg.MaxRouteVertices stops when that cap is positive. Ties keep the first route seen.
func Select(results []StartRoutes, cfg entity.RoutingConfig) Selection {
	var sel Selection

	for _, start := range results {
		for i := range start.Routes {
			route := &start.Routes[i]
			if cfg.MaxRouteVertices > 0 && route.Len() > cfg.MaxRouteVertices {
				continue
			}

			sel.Considered++
			if sel.Best == nil || route.Weight > sel.Best.Weight {
				sel.Best = route
			}
			if sel.Worst == nil || route.Weight < sel.Worst.Weight {
				sel.Worst = route
			}
		}
	}

	return sel
}

// Count returns the total number of routes across all starting vertices
func Count(results []StartRoutes) int {
	total := 0
	for _, start := range results {
		total += len(start.Routes)
	}

	return total
}
