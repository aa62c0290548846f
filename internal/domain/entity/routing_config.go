package entity

// CostMetric selects which part of a route cost becomes the edge weight.
type CostMetric string

const (
	CostMetricDuration CostMetric = "duration" // walking minutes
	CostMetricDistance CostMetric = "distance" // walking kilometers
)

const (
	DefaultMinLength        = 3
	DefaultMaxLength        = 5
	DefaultCostScale        = 0.1
	DefaultNeighborCount    = 3
	DefaultMaxRouteVertices = 5
	DefaultConcurrency      = 5
)

// RoutingConfig holds the tunables of graph construction and path search.
// It is passed by value; callers derive modified copies instead of mutating shared state.
type RoutingConfig struct {
	MinLength        int        // Minimum number of stops on a recorded path
	MaxLength        int        // Maximum number of stops; exploration stops here
	CostScale        float64    // Multiplier applied to every edge cost
	LowestQuality    bool       // Negate the quality term to find the worst-rated crawl
	NeighborCount    int        // Nearest neighbors per vertex used as edge candidates
	MaxRouteVertices int        // Final cap on stops per selected route, 0 disables
	Concurrency      int        // Width of the cost lookup worker pool
	CostMetric       CostMetric // Edge weight source
}

// DefaultRoutingConfig returns the defaults used when nothing is configured.
func DefaultRoutingConfig() RoutingConfig {
	return RoutingConfig{
		MinLength:        DefaultMinLength,
		MaxLength:        DefaultMaxLength,
		CostScale:        DefaultCostScale,
		NeighborCount:    DefaultNeighborCount,
		MaxRouteVertices: DefaultMaxRouteVertices,
		Concurrency:      DefaultConcurrency,
		CostMetric:       CostMetricDuration,
	}
}

// WithLowestQuality returns a copy of the config with the quality sign toggled.
func (c RoutingConfig) WithLowestQuality(lowest bool) RoutingConfig {
	c.LowestQuality = lowest

	return c
}

// QualitySign is +1 when maximising quality and -1 in lowest-quality mode.
func (c RoutingConfig) QualitySign() float64 {
	if c.LowestQuality {
		return -1
	}

	return 1
}
