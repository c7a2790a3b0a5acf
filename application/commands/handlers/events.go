package handlers

import (
	"context"

	"moviereviews/application/ports"
	"moviereviews/domain/events"

	"go.uber.org/zap"
)

// publish emits an event after a successful write. Delivery is best effort:
// the write already happened, so failures are only logged.
func publish(ctx context.Context, publisher ports.EventPublisher, logger *zap.Logger, event events.DomainEvent) {
	if err := publisher.Publish(ctx, event); err != nil {
		logger.Warn("Failed to publish event",
			zap.String("eventType", event.GetEventType()),
			zap.String("eventID", event.GetEventID()),
			zap.Error(err),
		)
	}
}
