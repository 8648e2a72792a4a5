package commands

import (
	"context"
	"log/slog"

	"github.com/edinson0810/pruebaCasa/internal/platform/eventbus"
	"github.com/edinson0810/pruebaCasa/modules/shared/events"
)

// EventDispatch delivers domain events in two phases: in-transaction handlers
// run through a fresh TransactionalEventBus before commit, and the publisher
// receives the same events once the transaction has committed.
type EventDispatch struct {
	registry  eventbus.HandlerRegistry
	publisher events.Publisher
	logger    *slog.Logger
}

// NewEventDispatch accepts a nil registry or publisher; the matching phase
// is skipped.
func NewEventDispatch(registry eventbus.HandlerRegistry, publisher events.Publisher, logger *slog.Logger) *EventDispatch {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventDispatch{registry: registry, publisher: publisher, logger: logger}
}

// InTx must be called inside the transaction closure. A handler error aborts
// the transaction.
func (d *EventDispatch) InTx(ctx context.Context, evts []events.Event) error {
	if d == nil || len(evts) == 0 {
		return nil
	}
	bus := eventbus.NewTransactional(d.registry, eventbus.DefaultMaxDepth)
	if err := bus.Publish(ctx, evts...); err != nil {
		return err
	}
	return bus.Flush(ctx)
}

// AfterCommit never fails the command; delivery problems are logged.
func (d *EventDispatch) AfterCommit(ctx context.Context, evts []events.Event) {
	if d == nil || d.publisher == nil || len(evts) == 0 {
		return
	}
	if err := d.publisher.Publish(ctx, evts...); err != nil {
		d.logger.Warn("failed to publish events after commit",
			slog.Int("count", len(evts)),
			slog.Any("error", err),
		)
	}
}
