package ports

import (
	"context"

	"moviereviews/domain/events"
)

// EventPublisher delivers domain events after a successful write.
type EventPublisher interface {
	Publish(ctx context.Context, event events.DomainEvent) error
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}
