// Package network routes walking costs over a preprocessed footway graph loaded from CSV,
// for deployments without access to a directions API.
package network

import (
	"container/heap"
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"crawl/internal/domain/entity"
	"crawl/internal/domain/service"

	"github.com/paulmach/orb/geo"
	"github.com/pkg/errors"
)

// ErrSnapDistanceExceeded is returned when a coordinate is too far from the walking network
var ErrSnapDistanceExceeded = errors.New("coordinate too far from walking network")

// ErrEngineNotReady is returned when no network has been loaded
var ErrEngineNotReady = errors.New("network engine not ready")

// EngineConfig holds configuration for the network engine
type EngineConfig struct {
	MaxSnapDistanceMeters float64 // Maximum distance from a coordinate to its nearest node
	WalkingSpeedKmh       float64
	GridCellSizeKm        float64 // Cell size of the spatial index
}

// DefaultEngineConfig returns defaults for dense urban footway data
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		MaxSnapDistanceMeters: 250,
		WalkingSpeedKmh:       5,
		GridCellSizeKm:        0.25,
	}
}

type arc struct {
	to     int
	meters float64
}

// Engine implements service.RouteCostProvider with Dijkstra over the loaded network
type Engine struct {
	config   EngineConfig
	index    *GridIndex
	nodes    []Node
	adj      [][]arc
	metadata *Metadata
	logger   *slog.Logger
	ready    bool
	mu       sync.RWMutex
}

// NewEngine creates an engine. Call Load or Use before routing.
func NewEngine(config EngineConfig, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}

	defaults := DefaultEngineConfig()
	if config.MaxSnapDistanceMeters <= 0 {
		config.MaxSnapDistanceMeters = defaults.MaxSnapDistanceMeters
	}
	if config.WalkingSpeedKmh <= 0 {
		config.WalkingSpeedKmh = defaults.WalkingSpeedKmh
	}
	if config.GridCellSizeKm <= 0 {
		config.GridCellSizeKm = defaults.GridCellSizeKm
	}

	return &Engine{config: config, logger: logger}
}

// Load reads a network from dataDir and makes it the active one
func (e *Engine) Load(dataDir string) error {
	data, err := Load(dataDir)
	if err != nil {
		return errors.Wrap(err, "failed to load walking network")
	}

	e.Use(data)

	return nil
}

// Use makes data the active network
func (e *Engine) Use(data *Data) {
	index := NewGridIndex(e.config.GridCellSizeKm)
	index.Build(data.Nodes)

	adj := make([][]arc, len(data.Nodes))
	for _, way := range data.Ways {
		from, to := int(way.From), int(way.To)
		adj[from] = append(adj[from], arc{to: to, meters: way.Meters})
		adj[to] = append(adj[to], arc{to: from, meters: way.Meters})
	}

	e.mu.Lock()
	e.nodes = data.Nodes
	e.index = index
	e.adj = adj
	e.metadata = data.Metadata
	e.ready = true
	e.mu.Unlock()

	attrs := []any{slog.Int("nodes", len(data.Nodes)), slog.Int("ways", len(data.Ways))}
	if data.Metadata != nil {
		attrs = append(attrs,
			slog.String("region", data.Metadata.Region),
			slog.String("profile", data.Metadata.Profile),
			slog.Time("generated_at", data.Metadata.GeneratedAt),
		)
	}
	e.logger.Info("Walking network loaded", attrs...)
}

// IsReady reports whether a network is loaded
func (e *Engine) IsReady() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.ready
}

// Metadata returns the metadata of the active network, nil when it had none
func (e *Engine) Metadata() *Metadata {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.metadata
}

type snap struct {
	node   int
	meters float64
}

// RouteCost returns the shortest walking path between the nodes nearest to from and to.
// The snap legs at both ends are included in the distance and the geometry.
func (e *Engine) RouteCost(ctx context.Context, from, to entity.Coordinate) (*service.RouteCost, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if !e.ready {
		return nil, ErrEngineNotReady
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	src, err := e.snap(ctx, from)
	if err != nil {
		return nil, err
	}
	dst, err := e.snap(ctx, to)
	if err != nil {
		return nil, err
	}

	meters, path, err := e.shortestPath(ctx, src.node, dst.node)
	if err != nil {
		return nil, err
	}

	total := src.meters + meters + dst.meters
	geometry := make([]entity.Coordinate, 0, len(path)+2)
	geometry = append(geometry, from)
	for _, idx := range path {
		geometry = append(geometry, entity.Coordinate{Lat: e.nodes[idx].Lat, Lng: e.nodes[idx].Lng})
	}
	geometry = append(geometry, to)

	return &service.RouteCost{
		Duration:       e.duration(total),
		DistanceMeters: total,
		Geometry:       geometry,
	}, nil
}

func (e *Engine) snap(ctx context.Context, coord entity.Coordinate) (snap, error) {
	if e.index.Size() == 0 {
		return snap{}, errors.New("walking network has no nodes")
	}

	idx, ok, err := e.index.NearestWithin(ctx, coord.Lat, coord.Lng, e.config.MaxSnapDistanceMeters/1000)
	if err != nil {
		return snap{}, errors.WithStack(err)
	}
	if !ok {
		return snap{}, errors.Wrapf(ErrSnapDistanceExceeded, "%s is more than %.0fm from the network", coord, e.config.MaxSnapDistanceMeters)
	}

	node := e.nodes[idx]
	meters := geo.DistanceHaversine(coord.Point(), entity.Coordinate{Lat: node.Lat, Lng: node.Lng}.Point())
	if meters > e.config.MaxSnapDistanceMeters {
		return snap{}, errors.Wrapf(ErrSnapDistanceExceeded, "%s is %.0fm from the nearest node", coord, meters)
	}

	return snap{node: idx, meters: meters}, nil
}

func (e *Engine) duration(meters float64) time.Duration {
	speedMps := e.config.WalkingSpeedKmh * 1000 / 3600

	return time.Duration(meters / speedMps * float64(time.Second))
}

// shortestPath runs Dijkstra from source to target and returns the path length and the
// node sequence, endpoints included
func (e *Engine) shortestPath(ctx context.Context, source, target int) (float64, []int, error) {
	if source == target {
		return 0, []int{source}, nil
	}

	dist := make([]float64, len(e.nodes))
	prev := make([]int, len(e.nodes))
	for idx := range dist {
		dist[idx] = math.Inf(1)
		prev[idx] = -1
	}
	dist[source] = 0

	queue := &priorityQueue{{node: source}}
	for pops := 0; queue.Len() > 0; pops++ {
		if pops%1024 == 0 && ctx.Err() != nil {
			return 0, nil, errors.WithStack(ctx.Err())
		}

		current := heap.Pop(queue).(queueItem)
		if current.node == target {
			return dist[target], tracePath(prev, target), nil
		}
		if current.dist > dist[current.node] {
			continue
		}

		for _, next := range e.adj[current.node] {
			if alt := dist[current.node] + next.meters; alt < dist[next.to] {
				dist[next.to] = alt
				prev[next.to] = current.node
				heap.Push(queue, queueItem{node: next.to, dist: alt})
			}
		}
	}

	return 0, nil, service.ErrNoRoute
}

func tracePath(prev []int, target int) []int {
	var path []int
	for node := target; node >= 0; node = prev[node] {
		path = append(path, node)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}

type queueItem struct {
	node int
	dist float64
}

type priorityQueue []queueItem

func (q priorityQueue) Len() int           { return len(q) }
func (q priorityQueue) Less(i, j int) bool { return q[i].dist < q[j].dist }
func (q priorityQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *priorityQueue) Push(x any)        { *q = append(*q, x.(queueItem)) }
func (q *priorityQueue) Pop() any {
	old := *q
	item := old[len(old)-1]
	*q = old[:len(old)-1]

	return item
}
