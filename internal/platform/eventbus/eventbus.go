// Package eventbus provides event infrastructure for inter-module communication.
//
// Two dispatch styles are offered:
//   - InMemoryEventBus delivers events after a transaction has committed. Handlers
//     may perform external side effects (broker publishes) and their failures are
//     logged, never returned.
//   - TransactionalEventBus buffers events inside a transaction and runs the
//     handlers registered in an EventHandlerRegistry before commit. A failing
//     handler rolls the whole transaction back.
package eventbus

import (
	"context"
	"log/slog"
	"sync"

	"github.com/edinson0810/pruebaCasa/modules/shared/events"
)

// InMemoryEventBus implements a simple synchronous event bus.
// Events are delivered synchronously in the publishing goroutine.
type InMemoryEventBus struct {
	mu       sync.RWMutex
	handlers map[events.EventType][]events.Handler
	logger   *slog.Logger
}

func New(logger *slog.Logger) *InMemoryEventBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &InMemoryEventBus{
		handlers: make(map[events.EventType][]events.Handler),
		logger:   logger,
	}
}

// Publish implements events.Publisher.
func (b *InMemoryEventBus) Publish(ctx context.Context, evts ...events.Event) error {
	for _, event := range evts {
		b.mu.RLock()
		handlers := b.handlers[event.EventType()]
		b.mu.RUnlock()

		b.logger.Debug("publishing event",
			slog.String("event_type", event.EventType().String()),
			slog.String("event_id", event.EventID()),
			slog.Int("handler_count", len(handlers)),
		)

		for _, handler := range handlers {
			if err := handler.Handle(ctx, event); err != nil {
				// Continue with the remaining handlers; the state change is already committed.
				b.logger.Error("event handler failed",
					slog.String("event_type", event.EventType().String()),
					slog.String("event_id", event.EventID()),
					slog.Any("error", err),
				)
			}
		}
	}

	return nil
}

// Subscribe implements events.Subscriber.
func (b *InMemoryEventBus) Subscribe(eventType events.EventType, handler events.Handler) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
	b.logger.Debug("subscribed to event", slog.String("event_type", eventType.String()))

	return nil
}

// Compile-time interface checks.
var (
	_ events.Publisher  = (*InMemoryEventBus)(nil)
	_ events.Subscriber = (*InMemoryEventBus)(nil)
)
