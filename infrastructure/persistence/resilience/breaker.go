// Package resilience decorates a ports.DocumentStore with a circuit breaker
// and operation metrics.
package resilience

import (
	"context"
	"errors"
	"time"

	"moviereviews/application/ports"
	apperrors "moviereviews/pkg/errors"
	"moviereviews/pkg/observability"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// BreakerConfig holds configuration for the store circuit breaker
type BreakerConfig struct {
	Name        string
	MaxRequests uint32
	Interval    time.Duration
	Timeout     time.Duration
	// Trip when at least MinRequests were seen and the failure ratio
	// reaches FailureThreshold.
	FailureThreshold float64
	MinRequests      uint32
}

// DefaultBreakerConfig returns a default configuration for the store breaker
func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:             name,
		MaxRequests:      5,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.8,
		MinRequests:      5,
	}
}

// BreakerStore fails fast with 503 while the store keeps failing.
type BreakerStore struct {
	next ports.DocumentStore
	cb   *gobreaker.CircuitBreaker
}

// NewBreakerStore wraps next with a circuit breaker
func NewBreakerStore(next ports.DocumentStore, cfg BreakerConfig, logger *zap.Logger, collector *observability.Collector) *BreakerStore {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			if collector != nil {
				collector.BreakerState.WithLabelValues(name).Set(float64(to))
			}
		},
		IsSuccessful: func(err error) bool {
			// Client-driven outcomes say nothing about store health.
			return err == nil ||
				errors.Is(err, ports.ErrConditionFailed) ||
				errors.Is(err, context.Canceled)
		},
	})

	return &BreakerStore{next: next, cb: cb}
}

var _ ports.DocumentStore = (*BreakerStore)(nil)

// State reports the current breaker state.
func (s *BreakerStore) State() gobreaker.State {
	return s.cb.State()
}

func (s *BreakerStore) run(fn func() error) error {
	_, err := s.cb.Execute(func() (any, error) {
		return nil, fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return apperrors.NewUnavailableError("document store").WithCause(err)
	}
	return err
}

// Get reads one item through the breaker.
func (s *BreakerStore) Get(ctx context.Context, table string, key ports.Key, out any) (bool, error) {
	var found bool
	err := s.run(func() error {
		var err error
		found, err = s.next.Get(ctx, table, key, out)
		return err
	})
	return found, err
}

// Query runs q through the breaker.
func (s *BreakerStore) Query(ctx context.Context, q ports.Query, out any) error {
	return s.run(func() error { return s.next.Query(ctx, q, out) })
}

// Scan reads a whole table through the breaker.
func (s *BreakerStore) Scan(ctx context.Context, table string, out any) error {
	return s.run(func() error { return s.next.Scan(ctx, table, out) })
}

// Put writes one item through the breaker.
func (s *BreakerStore) Put(ctx context.Context, table string, item any) error {
	return s.run(func() error { return s.next.Put(ctx, table, item) })
}

// Update applies u through the breaker.
func (s *BreakerStore) Update(ctx context.Context, u ports.Update) error {
	return s.run(func() error { return s.next.Update(ctx, u) })
}

// Delete removes one item through the breaker.
func (s *BreakerStore) Delete(ctx context.Context, table string, key ports.Key) error {
	return s.run(func() error { return s.next.Delete(ctx, table, key) })
}

// BatchPut writes items through the breaker as a single call.
func (s *BreakerStore) BatchPut(ctx context.Context, table string, items []any) error {
	return s.run(func() error { return s.next.BatchPut(ctx, table, items) })
}
