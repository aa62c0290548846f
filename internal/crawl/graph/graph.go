// Package graph implements the undirected, weighted location graph the crawl search runs on.
package graph

import (
	"slices"

	"crawl/internal/domain/entity"

	"github.com/pkg/errors"
)

var (
	// ErrUnknownVertex is returned when an operation names a vertex that is not in the graph
	ErrUnknownVertex = errors.New("unknown vertex")

	// ErrUnknownEdge is returned when an edge lookup names a pair that is not connected
	ErrUnknownEdge = errors.New("unknown edge")

	// ErrSelfLoop is returned when both endpoints of an edge are the same vertex
	ErrSelfLoop = errors.New("self-loop edges are not allowed")
)

// Neighbor is one adjacency entry: the vertex on the other side and the edge weight.
type Neighbor struct {
	Location entity.Location
	Weight   float64
}

// Edge is an undirected edge as reported by Edges.
type Edge struct {
	From   entity.Location
	To     entity.Location
	Weight float64
}

type vertex struct {
	location entity.Location
	weight   float64
	adj      []Neighbor
}

// Graph is an undirected graph keyed by location coordinates.
// Every edge is stored on both endpoints with the same weight. Vertices and adjacency
// lists keep insertion order, which makes traversals deterministic.
// A Graph is not safe for concurrent mutation.
type Graph struct {
	order    []entity.VertexKey
	vertices map[entity.VertexKey]*vertex
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		vertices: make(map[entity.VertexKey]*vertex),
	}
}

// AddVertex adds a location with the given vertex weight.
// Adding an existing vertex updates its weight and keeps its position.
func (g *Graph) AddVertex(loc entity.Location, weight float64) {
	if v, exists := g.vertices[loc.Key()]; exists {
		v.weight = weight

		return
	}

	g.vertices[loc.Key()] = &vertex{location: loc, weight: weight}
	g.order = append(g.order, loc.Key())
}

// AddEdge connects a and b with the given weight, creating missing endpoints with weight 0.
// Adding an edge that already exists overwrites its weight on both sides.
func (g *Graph) AddEdge(a, b entity.Location, weight float64) error {
	if a.SameVertex(b) {
		return errors.Wrapf(ErrSelfLoop, "vertex %s", a.Name)
	}

	if !g.HasVertex(a) {
		g.AddVertex(a, 0)
	}
	if !g.HasVertex(b) {
		g.AddVertex(b, 0)
	}

	va := g.vertices[a.Key()]
	vb := g.vertices[b.Key()]
	va.setNeighbor(vb.location, weight)
	vb.setNeighbor(va.location, weight)

	return nil
}

func (v *vertex) setNeighbor(loc entity.Location, weight float64) {
	for i := range v.adj {
		if v.adj[i].Location.SameVertex(loc) {
			v.adj[i].Weight = weight

			return
		}
	}

	v.adj = append(v.adj, Neighbor{Location: loc, Weight: weight})
}

func (v *vertex) dropNeighbor(key entity.VertexKey) {
	v.adj = slices.DeleteFunc(v.adj, func(n Neighbor) bool {
		return n.Location.Key() == key
	})
}

// HasVertex reports whether the location is a vertex of the graph.
func (g *Graph) HasVertex(loc entity.Location) bool {
	_, exists := g.vertices[loc.Key()]

	return exists
}

// Location returns the stored location for a key.
func (g *Graph) Location(key entity.VertexKey) (entity.Location, bool) {
	v, exists := g.vertices[key]
	if !exists {
		return entity.Location{}, false
	}

	return v.location, true
}

// Neighbors returns the adjacency list of v in insertion order.
func (g *Graph) Neighbors(v entity.Location) ([]Neighbor, error) {
	vert, err := g.lookup(v)
	if err != nil {
		return nil, err
	}

	return slices.Clone(vert.adj), nil
}

// Degree returns the number of edges incident to v.
func (g *Graph) Degree(v entity.Location) (int, error) {
	vert, err := g.lookup(v)
	if err != nil {
		return 0, err
	}

	return len(vert.adj), nil
}

// VertexWeight returns the scalar weight of v.
func (g *Graph) VertexWeight(v entity.Location) (float64, error) {
	vert, err := g.lookup(v)
	if err != nil {
		return 0, err
	}

	return vert.weight, nil
}

// SetVertexWeight replaces the scalar weight of an existing vertex.
func (g *Graph) SetVertexWeight(v entity.Location, weight float64) error {
	vert, err := g.lookup(v)
	if err != nil {
		return err
	}
	vert.weight = weight

	return nil
}

// EdgeWeight returns the weight of the edge between a and b.
func (g *Graph) EdgeWeight(a, b entity.Location) (float64, error) {
	va, err := g.lookup(a)
	if err != nil {
		return 0, err
	}
	if _, err := g.lookup(b); err != nil {
		return 0, err
	}

	for _, n := range va.adj {
		if n.Location.SameVertex(b) {
			return n.Weight, nil
		}
	}

	return 0, errors.Wrapf(ErrUnknownEdge, "%s - %s", a.Name, b.Name)
}

// SetEdgeWeight updates the weight of an existing edge on both sides.
func (g *Graph) SetEdgeWeight(a, b entity.Location, weight float64) error {
	if _, err := g.EdgeWeight(a, b); err != nil {
		return err
	}

	return g.AddEdge(a, b, weight)
}

// RemoveVertex deletes v together with every edge incident to it.
func (g *Graph) RemoveVertex(v entity.Location) error {
	vert, err := g.lookup(v)
	if err != nil {
		return err
	}

	key := v.Key()
	for _, n := range vert.adj {
		g.vertices[n.Location.Key()].dropNeighbor(key)
	}

	delete(g.vertices, key)
	g.order = slices.DeleteFunc(g.order, func(k entity.VertexKey) bool {
		return k == key
	})

	return nil
}

// RemoveEdge deletes the edge between a and b. It does nothing when the edge is absent.
func (g *Graph) RemoveEdge(a, b entity.Location) {
	va, okA := g.vertices[a.Key()]
	vb, okB := g.vertices[b.Key()]
	if !okA || !okB {
		return
	}

	va.dropNeighbor(b.Key())
	vb.dropNeighbor(a.Key())
}

// Vertices returns all vertices in insertion order.
func (g *Graph) Vertices() []entity.Location {
	locations := make([]entity.Location, 0, len(g.order))
	for _, key := range g.order {
		locations = append(locations, g.vertices[key].location)
	}

	return locations
}

// Edges returns every undirected edge exactly once.
// Edges are grouped by their first endpoint in vertex insertion order.
func (g *Graph) Edges() []Edge {
	type pair struct{ a, b entity.VertexKey }

	seen := make(map[pair]struct{})
	var edges []Edge

	for _, key := range g.order {
		v := g.vertices[key]
		for _, n := range v.adj {
			other := n.Location.Key()
			if _, dup := seen[pair{a: other, b: key}]; dup {
				continue
			}
			seen[pair{a: key, b: other}] = struct{}{}
			edges = append(edges, Edge{From: v.location, To: n.Location, Weight: n.Weight})
		}
	}

	return edges
}

// Len returns the number of vertices.
func (g *Graph) Len() int {
	return len(g.order)
}

func (g *Graph) lookup(v entity.Location) (*vertex, error) {
	vert, exists := g.vertices[v.Key()]
	if !exists {
		return nil, errors.Wrapf(ErrUnknownVertex, "vertex %s at %s", v.Name, v.Coordinate)
	}

	return vert, nil
}
