package eventbus_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/edinson0810/pruebaCasa/internal/platform/eventbus"
	"github.com/edinson0810/pruebaCasa/modules/shared/events"
)

const (
	testPlaced  events.EventType = "test.Placed"
	testChained events.EventType = "test.Chained"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestInMemoryEventBus_DeliversToSubscribers(t *testing.T) {
	bus := eventbus.New(discardLogger())

	var received []string
	_ = bus.Subscribe(testPlaced, events.HandlerFunc(func(ctx context.Context, e events.Event) error {
		received = append(received, e.AggregateID())
		return nil
	}))

	err := bus.Publish(context.Background(),
		events.NewBaseEvent(testPlaced, "order-1"),
		events.NewBaseEvent(testChained, "ignored"),
		events.NewBaseEvent(testPlaced, "order-2"),
	)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(received) != 2 || received[0] != "order-1" || received[1] != "order-2" {
		t.Errorf("unexpected deliveries: %v", received)
	}
}

func TestInMemoryEventBus_HandlerFailureDoesNotStopOthers(t *testing.T) {
	bus := eventbus.New(discardLogger())

	calls := 0
	_ = bus.Subscribe(testPlaced, events.HandlerFunc(func(ctx context.Context, e events.Event) error {
		calls++
		return errors.New("broker down")
	}))
	_ = bus.Subscribe(testPlaced, events.HandlerFunc(func(ctx context.Context, e events.Event) error {
		calls++
		return nil
	}))

	if err := bus.Publish(context.Background(), events.NewBaseEvent(testPlaced, "order-1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 handler calls, got %d", calls)
	}
}

func TestTransactionalEventBus_FlushRunsNestedEvents(t *testing.T) {
	registry := eventbus.NewEventHandlerRegistry(discardLogger())
	bus := eventbus.NewTransactional(registry, eventbus.DefaultMaxDepth)

	var order []events.EventType
	_ = registry.Subscribe(testPlaced, events.HandlerFunc(func(ctx context.Context, e events.Event) error {
		order = append(order, e.EventType())
		return bus.Publish(ctx, events.NewBaseEvent(testChained, e.AggregateID()))
	}))
	_ = registry.Subscribe(testChained, events.HandlerFunc(func(ctx context.Context, e events.Event) error {
		order = append(order, e.EventType())
		return nil
	}))

	_ = bus.Publish(context.Background(), events.NewBaseEvent(testPlaced, "order-1"))
	if bus.PendingCount() != 1 {
		t.Fatalf("expected 1 pending event, got %d", bus.PendingCount())
	}

	if err := bus.Flush(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != 2 || order[0] != testPlaced || order[1] != testChained {
		t.Errorf("unexpected handling order: %v", order)
	}
	if bus.PendingCount() != 0 {
		t.Errorf("expected empty buffer, got %d", bus.PendingCount())
	}
}

func TestTransactionalEventBus_HandlerErrorIsReturned(t *testing.T) {
	registry := eventbus.NewEventHandlerRegistry(discardLogger())
	errHistory := errors.New("history insert failed")
	_ = registry.Subscribe(testPlaced, events.HandlerFunc(func(ctx context.Context, e events.Event) error {
		return errHistory
	}))

	bus := eventbus.NewTransactional(registry, 0)
	_ = bus.Publish(context.Background(), events.NewBaseEvent(testPlaced, "order-1"))

	if err := bus.Flush(context.Background()); !errors.Is(err, errHistory) {
		t.Errorf("expected errHistory, got %v", err)
	}
}

func TestTransactionalEventBus_DepthExceeded(t *testing.T) {
	registry := eventbus.NewEventHandlerRegistry(discardLogger())
	bus := eventbus.NewTransactional(registry, 3)

	_ = registry.Subscribe(testPlaced, events.HandlerFunc(func(ctx context.Context, e events.Event) error {
		return bus.Publish(ctx, events.NewBaseEvent(testPlaced, e.AggregateID()))
	}))

	_ = bus.Publish(context.Background(), events.NewBaseEvent(testPlaced, "loop"))

	if err := bus.Flush(context.Background()); !errors.Is(err, eventbus.ErrEventProcessingDepthExceeded) {
		t.Errorf("expected ErrEventProcessingDepthExceeded, got %v", err)
	}
}
