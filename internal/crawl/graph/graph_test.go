package graph

import (
	"testing"

	"crawl/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loc(name string, lat, lng float64) entity.Location {
	return entity.Location{Coordinate: entity.Coordinate{Lat: lat, Lng: lng}, Name: name}
}

var (
	crown  = loc("Crown", 51.5000, -0.1200)
	anchor = loc("Anchor", 51.5010, -0.1210)
	swan   = loc("Swan", 51.5020, -0.1190)
	bell   = loc("Bell", 51.5030, -0.1180)
)

func TestGraph_AddVertex(t *testing.T) {
	g := New()
	g.AddVertex(crown, 4)
	g.AddVertex(anchor, 2)

	assert.Equal(t, 2, g.Len())
	assert.Equal(t, []entity.Location{crown, anchor}, g.Vertices())

	weight, err := g.VertexWeight(crown)
	require.NoError(t, err)
	assert.Equal(t, 4.0, weight)

	// Re-adding updates the weight but keeps insertion position
	g.AddVertex(crown, 1)
	weight, err = g.VertexWeight(crown)
	require.NoError(t, err)
	assert.Equal(t, 1.0, weight)
	assert.Equal(t, []entity.Location{crown, anchor}, g.Vertices())
}

func TestGraph_AddEdge_CreatesEndpointsAndIsSymmetric(t *testing.T) {
	g := New()
	require.NoError(t, g.AddEdge(crown, anchor, 7))

	assert.True(t, g.HasVertex(crown))
	assert.True(t, g.HasVertex(anchor))

	weight, err := g.VertexWeight(anchor)
	require.NoError(t, err)
	assert.Zero(t, weight)

	ab, err := g.EdgeWeight(crown, anchor)
	require.NoError(t, err)
	ba, err := g.EdgeWeight(anchor, crown)
	require.NoError(t, err)
	assert.Equal(t, 7.0, ab)
	assert.Equal(t, ab, ba)
}

func TestGraph_AddEdge_OverwritesInsteadOfDuplicating(t *testing.T) {
	g := New()
	require.NoError(t, g.AddEdge(crown, anchor, 7))
	require.NoError(t, g.AddEdge(anchor, crown, 3))

	neighbors, err := g.Neighbors(crown)
	require.NoError(t, err)
	require.Len(t, neighbors, 1)
	assert.Equal(t, 3.0, neighbors[0].Weight)

	neighbors, err = g.Neighbors(anchor)
	require.NoError(t, err)
	require.Len(t, neighbors, 1)
	assert.Equal(t, 3.0, neighbors[0].Weight)
	assert.Len(t, g.Edges(), 1)
}

func TestGraph_AddEdge_RejectsSelfLoop(t *testing.T) {
	g := New()
	renamed := crown
	renamed.Name = "Crown Inn"

	err := g.AddEdge(crown, renamed, 1)
	assert.ErrorIs(t, err, ErrSelfLoop)
	assert.Zero(t, g.Len())
}

func TestGraph_Neighbors_UnknownVertex(t *testing.T) {
	g := New()
	g.AddVertex(crown, 0)

	_, err := g.Neighbors(anchor)
	assert.ErrorIs(t, err, ErrUnknownVertex)
}

func TestGraph_Neighbors_ReturnsCopy(t *testing.T) {
	g := New()
	require.NoError(t, g.AddEdge(crown, anchor, 1))

	neighbors, err := g.Neighbors(crown)
	require.NoError(t, err)
	neighbors[0].Weight = 99

	weight, err := g.EdgeWeight(crown, anchor)
	require.NoError(t, err)
	assert.Equal(t, 1.0, weight)
}

func TestGraph_RemoveVertex_Cascades(t *testing.T) {
	g := New()
	require.NoError(t, g.AddEdge(crown, anchor, 1))
	require.NoError(t, g.AddEdge(crown, swan, 2))
	require.NoError(t, g.AddEdge(anchor, swan, 3))

	require.NoError(t, g.RemoveVertex(crown))

	assert.False(t, g.HasVertex(crown))
	assert.Equal(t, []entity.Location{anchor, swan}, g.Vertices())

	neighbors, err := g.Neighbors(anchor)
	require.NoError(t, err)
	require.Len(t, neighbors, 1)
	assert.Equal(t, swan, neighbors[0].Location)
	assert.Len(t, g.Edges(), 1)

	assert.ErrorIs(t, g.RemoveVertex(crown), ErrUnknownVertex)
}

func TestGraph_RemoveEdge(t *testing.T) {
	g := New()
	require.NoError(t, g.AddEdge(crown, anchor, 1))

	g.RemoveEdge(crown, anchor)
	_, err := g.EdgeWeight(crown, anchor)
	assert.ErrorIs(t, err, ErrUnknownEdge)

	// Absent edges and unknown vertices are a no-op
	g.RemoveEdge(crown, anchor)
	g.RemoveEdge(crown, bell)
	assert.Equal(t, 2, g.Len())
}

func TestGraph_EdgesReportedOnce(t *testing.T) {
	g := New()
	require.NoError(t, g.AddEdge(crown, anchor, 1))
	require.NoError(t, g.AddEdge(anchor, swan, 2))
	require.NoError(t, g.AddEdge(swan, crown, 3))
	require.NoError(t, g.AddEdge(swan, bell, 4))

	edges := g.Edges()
	require.Len(t, edges, 4)

	total := 0.0
	for _, edge := range edges {
		total += edge.Weight
	}
	assert.Equal(t, 10.0, total)
	assert.Equal(t, Edge{From: crown, To: anchor, Weight: 1}, edges[0])
}

func TestGraph_SetEdgeWeight(t *testing.T) {
	g := New()
	require.NoError(t, g.AddEdge(crown, anchor, 1))

	require.NoError(t, g.SetEdgeWeight(anchor, crown, 5))
	weight, err := g.EdgeWeight(crown, anchor)
	require.NoError(t, err)
	assert.Equal(t, 5.0, weight)

	g.AddVertex(swan, 0)
	assert.ErrorIs(t, g.SetEdgeWeight(crown, swan, 2), ErrUnknownEdge)
	assert.ErrorIs(t, g.SetEdgeWeight(crown, bell, 2), ErrUnknownVertex)
}

func TestGraph_Degree(t *testing.T) {
	g := New()
	require.NoError(t, g.AddEdge(crown, anchor, 1))
	require.NoError(t, g.AddEdge(crown, swan, 1))

	degree, err := g.Degree(crown)
	require.NoError(t, err)
	assert.Equal(t, 2, degree)

	_, err = g.Degree(bell)
	assert.ErrorIs(t, err, ErrUnknownVertex)
}

func TestGraph_WalkAndConnected(t *testing.T) {
	g := New()
	require.NoError(t, g.AddEdge(crown, anchor, 1))
	require.NoError(t, g.AddEdge(anchor, swan, 1))
	g.AddVertex(bell, 0)

	var visited []string
	require.NoError(t, g.Walk(crown, func(l entity.Location) bool {
		visited = append(visited, l.Name)

		return true
	}))
	assert.Equal(t, []string{"Crown", "Anchor", "Swan"}, visited)
	assert.False(t, g.Connected())

	require.NoError(t, g.AddEdge(swan, bell, 1))
	assert.True(t, g.Connected())
	assert.True(t, New().Connected())

	assert.ErrorIs(t, New().Walk(crown, func(entity.Location) bool { return true }), ErrUnknownVertex)
}
