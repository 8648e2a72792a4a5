package eventbus

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/edinson0810/pruebaCasa/modules/shared/events"
)

// ErrEventProcessingDepthExceeded is returned when event handlers
// trigger too many nested events.
var ErrEventProcessingDepthExceeded = errors.New("event processing depth exceeded")

// DefaultMaxDepth bounds nested event processing in a single flush.
const DefaultMaxDepth = 10

// TransactionalEventBus buffers events and processes them synchronously
// within a transaction scope. Create a new instance per transaction.
//
// Create it inside the transaction closure: Spanner may retry the closure and
// each attempt must start with an empty buffer.
//
// Example:
//
//	txScope.Execute(ctx, func(ctx context.Context) error {
//	    bus := eventbus.NewTransactional(registry, eventbus.DefaultMaxDepth)
//	    // ... business logic ...
//	    bus.Publish(ctx, order.DomainEvents()...)
//	    return bus.Flush(ctx)
//	})
type TransactionalEventBus struct {
	registry HandlerRegistry
	pending  []events.Event
	mu       sync.Mutex
	maxDepth int
}

// NewTransactional creates a TransactionalEventBus with the given registry.
// maxDepth limits nested event processing to prevent infinite loops.
func NewTransactional(registry HandlerRegistry, maxDepth int) *TransactionalEventBus {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &TransactionalEventBus{
		registry: registry,
		maxDepth: maxDepth,
	}
}

// Publish buffers events for later processing.
// Events are not processed until Flush is called.
func (b *TransactionalEventBus) Publish(ctx context.Context, evts ...events.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = append(b.pending, evts...)
	return nil
}

// Flush processes all buffered events synchronously.
// Handlers may publish additional events, which are processed in the same flush.
// Returns error if any handler fails (caller should rollback transaction).
func (b *TransactionalEventBus) Flush(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.registry == nil {
		b.pending = nil
		return nil
	}

	depth := 0
	for len(b.pending) > 0 {
		if depth >= b.maxDepth {
			return ErrEventProcessingDepthExceeded
		}

		batch := b.pending
		b.pending = nil

		for _, event := range batch {
			for _, handler := range b.registry.HandlersFor(event.EventType()) {
				// Unlock during handler execution to allow Publish calls from handlers
				b.mu.Unlock()
				err := handler.Handle(ctx, event)
				b.mu.Lock()

				if err != nil {
					return fmt.Errorf("handler failed for event %s: %w", event.EventType(), err)
				}
			}
		}

		depth++
	}

	return nil
}

// PendingCount returns the number of buffered events.
func (b *TransactionalEventBus) PendingCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}

// Compile-time interface check.
var _ events.Publisher = (*TransactionalEventBus)(nil)
