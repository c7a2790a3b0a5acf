package resilience

import (
	"context"
	"errors"
	"time"

	"moviereviews/application/ports"
	"moviereviews/pkg/observability"

	"go.uber.org/zap"
)

// InstrumentedStore records duration and outcome of every store call.
type InstrumentedStore struct {
	next      ports.DocumentStore
	collector *observability.Collector
	logger    *zap.Logger
}

// NewInstrumentedStore wraps next with metrics and debug logging
func NewInstrumentedStore(next ports.DocumentStore, collector *observability.Collector, logger *zap.Logger) *InstrumentedStore {
	return &InstrumentedStore{next: next, collector: collector, logger: logger}
}

var _ ports.DocumentStore = (*InstrumentedStore)(nil)

func (s *InstrumentedStore) observe(operation, table string, start time.Time, err error) {
	elapsed := time.Since(start)
	s.collector.ObserveDB(operation, table, err, elapsed)

	if err != nil && !errors.Is(err, ports.ErrConditionFailed) {
		s.logger.Warn("Store operation failed",
			zap.String("operation", operation),
			zap.String("table", table),
			zap.Duration("duration", elapsed),
			zap.Error(err),
		)
		return
	}
	s.logger.Debug("Store operation",
		zap.String("operation", operation),
		zap.String("table", table),
		zap.Duration("duration", elapsed),
	)
}

func (s *InstrumentedStore) Get(ctx context.Context, table string, key ports.Key, out any) (found bool, err error) {
	defer func(start time.Time) { s.observe("GetItem", table, start, err) }(time.Now())
	return s.next.Get(ctx, table, key, out)
}

func (s *InstrumentedStore) Query(ctx context.Context, q ports.Query, out any) (err error) {
	defer func(start time.Time) { s.observe("Query", q.Table, start, err) }(time.Now())
	return s.next.Query(ctx, q, out)
}

func (s *InstrumentedStore) Scan(ctx context.Context, table string, out any) (err error) {
	defer func(start time.Time) { s.observe("Scan", table, start, err) }(time.Now())
	return s.next.Scan(ctx, table, out)
}

func (s *InstrumentedStore) Put(ctx context.Context, table string, item any) (err error) {
	defer func(start time.Time) { s.observe("PutItem", table, start, err) }(time.Now())
	return s.next.Put(ctx, table, item)
}

func (s *InstrumentedStore) Update(ctx context.Context, u ports.Update) (err error) {
	defer func(start time.Time) { s.observe("UpdateItem", u.Table, start, err) }(time.Now())
	return s.next.Update(ctx, u)
}

func (s *InstrumentedStore) Delete(ctx context.Context, table string, key ports.Key) (err error) {
	defer func(start time.Time) { s.observe("DeleteItem", table, start, err) }(time.Now())
	return s.next.Delete(ctx, table, key)
}

func (s *InstrumentedStore) BatchPut(ctx context.Context, table string, items []any) (err error) {
	defer func(start time.Time) { s.observe("BatchWriteItem", table, start, err) }(time.Now())
	return s.next.BatchPut(ctx, table, items)
}
