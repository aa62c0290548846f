package directions

import (
	"context"
	"time"

	"crawl/internal/domain/entity"
	"crawl/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultOK      = "ok"
	resultNoRoute = "no_route"
	resultTimeout = "timeout"
	resultError   = "error"
)

// Metrics counts and times upstream route cost lookups
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics registers the lookup metrics with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "crawl",
				Subsystem: "directions",
				Name:      "requests_total",
				Help:      "Total number of route cost lookups by provider and result",
			},
			[]string{"provider", "result"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "crawl",
				Subsystem: "directions",
				Name:      "request_duration_seconds",
				Help:      "Route cost lookup duration in seconds",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"provider"},
		),
	}
}

// Instrument records every call to next under the provider label
func (m *Metrics) Instrument(provider string, next service.RouteCostProvider) service.RouteCostProvider {
	return service.RouteCostProviderFunc(func(ctx context.Context, from, to entity.Coordinate) (*service.RouteCost, error) {
		start := time.Now()
		cost, err := next.RouteCost(ctx, from, to)

		m.duration.WithLabelValues(provider).Observe(time.Since(start).Seconds())
		m.requests.WithLabelValues(provider, classify(err)).Inc()

		return cost, err
	})
}

func classify(err error) string {
	switch {
	case err == nil:
		return resultOK
	case errors.Is(err, service.ErrNoRoute):
		return resultNoRoute
	case errors.Is(err, context.DeadlineExceeded):
		return resultTimeout
	default:
		return resultError
	}
}
