package builder

import (
	"sort"

	"crawl/internal/domain/entity"

	"github.com/paulmach/orb/geo"
)

// candidatePair is an unordered pair of vertex indices, i < j
type candidatePair struct {
	i, j int
}

// nearestIndices returns the indices of the count locations closest to locations[origin]
// by great-circle distance. Ties keep input order.
func nearestIndices(locations []entity.Location, origin, count int) []int {
	type ranked struct {
		idx  int
		dist float64
	}

	from := locations[origin].Point()
	candidates := make([]ranked, 0, len(locations)-1)
	for idx, other := range locations {
		if idx == origin {
			continue
		}
		candidates = append(candidates, ranked{idx: idx, dist: geo.Distance(from, other.Point())})
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].dist < candidates[b].dist
	})

	result := make([]int, 0, min(count, len(candidates)))
	for _, c := range candidates[:min(count, len(candidates))] {
		result = append(result, c.idx)
	}

	return result
}

// candidatePairs lists every unordered k-nearest pair once, in discovery order
func candidatePairs(locations []entity.Location, k int) []candidatePair {
	if k <= 0 || len(locations) < 2 {
		return nil
	}

	seen := make(map[candidatePair]struct{})
	var pairs []candidatePair

	for origin := range locations {
		for _, idx := range nearestIndices(locations, origin, k) {
			pair := candidatePair{i: min(origin, idx), j: max(origin, idx)}
			if _, dup := seen[pair]; dup {
				continue
			}
			seen[pair] = struct{}{}
			pairs = append(pairs, pair)
		}
	}

	return pairs
}

// nearestReached returns the reached location closest to target, or false when none is reached
func nearestReached(target entity.Location, locations []entity.Location, reached map[entity.VertexKey]bool) (entity.Location, bool) {
	var (
		best     entity.Location
		bestDist float64
		found    bool
	)

	for _, candidate := range locations {
		if !reached[candidate.Key()] {
			continue
		}

		dist := geo.Distance(target.Point(), candidate.Point())
		if !found || dist < bestDist {
			best, bestDist, found = candidate, dist, true
		}
	}

	return best, found
}
