package testutil

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"crawl/internal/domain/entity"
	"crawl/internal/domain/service"

	"github.com/paulmach/orb/geo"
)

// CostCall tracks a call to the cost provider
type CostCall struct {
	From entity.Coordinate
	To   entity.Coordinate
}

// CostProvider is a deterministic RouteCostProvider for tests.
// The walking duration is the Euclidean distance in degrees times Scale minutes.
// It is safe for concurrent use.
type CostProvider struct {
	Scale float64

	mu        sync.Mutex
	failures  map[string]error
	overrides map[string]time.Duration
	calls     []CostCall
}

// NewCostProvider returns a provider with the "euclidean distance * 10 minutes" scale
func NewCostProvider() *CostProvider {
	return &CostProvider{
		Scale:     10,
		failures:  make(map[string]error),
		overrides: make(map[string]time.Duration),
	}
}

func makeKey(from, to entity.Coordinate) string {
	return fmt.Sprintf("%.5f,%.5f->%.5f,%.5f", from.Lat, from.Lng, to.Lat, to.Lng)
}

// Fail makes lookups between a and b, in either direction, return err
func (p *CostProvider) Fail(a, b entity.Coordinate, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.failures[makeKey(a, b)] = err
	p.failures[makeKey(b, a)] = err
}

// SetDuration overrides the duration between a and b in both directions
func (p *CostProvider) SetDuration(a, b entity.Coordinate, d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.overrides[makeKey(a, b)] = d
	p.overrides[makeKey(b, a)] = d
}

// Calls returns a copy of the recorded calls
func (p *CostProvider) Calls() []CostCall {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]CostCall(nil), p.calls...)
}

// Euclidean returns the straight-line distance between two coordinates in degrees
func Euclidean(a, b entity.Coordinate) float64 {
	dLat := b.Lat - a.Lat
	dLng := b.Lng - a.Lng

	return math.Sqrt(dLat*dLat + dLng*dLng)
}

// RouteCost implements service.RouteCostProvider
func (p *CostProvider) RouteCost(ctx context.Context, from, to entity.Coordinate) (*service.RouteCost, error) {
	p.mu.Lock()
	p.calls = append(p.calls, CostCall{From: from, To: to})
	failure, failed := p.failures[makeKey(from, to)]
	override, overridden := p.overrides[makeKey(from, to)]
	p.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if failed {
		return nil, failure
	}

	minutes := Euclidean(from, to) * p.Scale
	duration := time.Duration(minutes * float64(time.Minute))
	if overridden {
		duration = override
	}

	return &service.RouteCost{
		Duration:       duration,
		DistanceMeters: geo.Distance(from.Point(), to.Point()),
		Geometry:       []entity.Coordinate{from, to},
	}, nil
}
