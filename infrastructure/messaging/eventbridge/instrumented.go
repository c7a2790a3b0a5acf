package eventbridge

import (
	"context"

	"moviereviews/application/ports"
	"moviereviews/domain/events"
	"moviereviews/pkg/observability"
)

// InstrumentedPublisher counts published and failed events per type.
type InstrumentedPublisher struct {
	next      ports.EventPublisher
	collector *observability.Collector
}

// NewInstrumentedPublisher wraps next with event counters
func NewInstrumentedPublisher(next ports.EventPublisher, collector *observability.Collector) *InstrumentedPublisher {
	return &InstrumentedPublisher{next: next, collector: collector}
}

var _ ports.EventPublisher = (*InstrumentedPublisher)(nil)

func (p *InstrumentedPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	err := p.next.Publish(ctx, event)
	p.collector.ObserveEvent(event.GetEventType(), err)
	return err
}

func (p *InstrumentedPublisher) PublishBatch(ctx context.Context, domainEvents []events.DomainEvent) error {
	err := p.next.PublishBatch(ctx, domainEvents)
	for _, event := range domainEvents {
		p.collector.ObserveEvent(event.GetEventType(), err)
	}
	return err
}
