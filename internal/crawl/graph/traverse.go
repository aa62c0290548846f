package graph

import "crawl/internal/domain/entity"

// Walk runs an iterative depth-first traversal from start. visit is called once per
// newly discovered vertex, start included; returning false stops the walk from expanding it.
func (g *Graph) Walk(start entity.Location, visit func(entity.Location) bool) error {
	if _, err := g.lookup(start); err != nil {
		return err
	}

	seen := map[entity.VertexKey]struct{}{start.Key(): {}}
	stack := []entity.VertexKey{start.Key()}

	for len(stack) > 0 {
		key := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		v := g.vertices[key]
		if !visit(v.location) {
			continue
		}

		// Push in reverse so neighbors are expanded in adjacency order
		for i := len(v.adj) - 1; i >= 0; i-- {
			next := v.adj[i].Location.Key()
			if _, ok := seen[next]; ok {
				continue
			}
			seen[next] = struct{}{}
			stack = append(stack, next)
		}
	}

	return nil
}

// Connected reports whether every vertex is reachable from every other one.
// An empty graph is connected.
func (g *Graph) Connected() bool {
	if len(g.order) == 0 {
		return true
	}

	count := 0
	_ = g.Walk(g.vertices[g.order[0]].location, func(entity.Location) bool {
		count++

		return true
	})

	return count == len(g.order)
}
