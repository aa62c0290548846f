// Package directions composes route cost providers with the call policies every
// upstream lookup runs under: per-request timeout, bounded retries, rate limiting
// and metrics.
package directions

import (
	"context"
	"log/slog"
	"time"

	"crawl/internal/domain/entity"
	"crawl/internal/domain/service"
	"crawl/internal/errors"
	"crawl/internal/infra/directions/network"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"
)

// WithTimeout bounds every call to next by d. A non-positive d returns next unchanged.
func WithTimeout(next service.RouteCostProvider, d time.Duration) service.RouteCostProvider {
	if d <= 0 {
		return next
	}

	return service.RouteCostProviderFunc(func(ctx context.Context, from, to entity.Coordinate) (*service.RouteCost, error) {
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()

		return next.RouteCost(ctx, from, to)
	})
}

// RetryPolicy retries failed lookups with exponential backoff
type RetryPolicy struct {
	Retries int           // Attempts after the first one
	Backoff time.Duration // Wait before the first retry, doubled each time
	Logger  *slog.Logger
}

// WithRetry retries next under the policy with exponential backoff. ErrNoRoute, snap
// failures and cancellation of the caller's context are returned immediately.
func WithRetry(next service.RouteCostProvider, policy RetryPolicy) service.RouteCostProvider {
	if policy.Retries <= 0 {
		return next
	}

	logger := policy.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return service.RouteCostProviderFunc(func(ctx context.Context, from, to entity.Coordinate) (*service.RouteCost, error) {
		var cost *service.RouteCost
		attempt := 0

		operation := func() error {
			attempt++

			result, err := next.RouteCost(ctx, from, to)
			if err == nil {
				cost = result

				return nil
			}
			if isPermanent(err) || ctx.Err() != nil {
				return backoff.Permanent(err)
			}

			return err
		}

		notify := func(err error, wait time.Duration) {
			logger.DebugContext(ctx, "Retrying route cost lookup",
				slog.Int("attempt", attempt),
				slog.Duration("wait", wait),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
				slog.Any("error", err),
			)
		}

		err := backoff.RetryNotify(operation, newBackOff(ctx, policy), notify)
		switch {
		case err == nil:
			return cost, nil
		case attempt > policy.Retries:
			return nil, errors.Wrapf(err, "route cost lookup failed after %d attempts", attempt)
		default:
			return nil, err
		}
	})
}

// newBackOff doubles policy.Backoff up to policy.Retries times and stops with ctx
func newBackOff(ctx context.Context, policy RetryPolicy) backoff.BackOff {
	exponential := backoff.NewExponentialBackOff()
	exponential.InitialInterval = policy.Backoff
	exponential.Multiplier = 2
	exponential.RandomizationFactor = 0
	exponential.MaxInterval = policy.Backoff << min(policy.Retries, 16)
	exponential.MaxElapsedTime = 0
	exponential.Reset()

	return backoff.WithContext(backoff.WithMaxRetries(exponential, uint64(policy.Retries)), ctx)
}

// WithRateLimit makes every call to next wait for the limiter. A nil limiter returns
// next unchanged.
func WithRateLimit(next service.RouteCostProvider, limiter *rate.Limiter) service.RouteCostProvider {
	if limiter == nil {
		return next
	}

	return service.RouteCostProviderFunc(func(ctx context.Context, from, to entity.Coordinate) (*service.RouteCost, error) {
		if err := limiter.Wait(ctx); err != nil {
			return nil, errors.Wrap(err, "rate limiter")
		}

		return next.RouteCost(ctx, from, to)
	})
}

// NewLimiter returns a limiter for perSecond requests, or nil when perSecond is not positive
func NewLimiter(perSecond float64, burst int) *rate.Limiter {
	if perSecond <= 0 {
		return nil
	}

	return rate.NewLimiter(rate.Limit(perSecond), max(burst, 1))
}

// isPermanent reports lookup failures that repeat on every attempt
func isPermanent(err error) bool {
	return errors.IsAny(err, service.ErrNoRoute, network.ErrSnapDistanceExceeded, network.ErrEngineNotReady)
}
