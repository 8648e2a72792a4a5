package notifications_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/edinson0810/pruebaCasa/internal/platform/eventbus"
	"github.com/edinson0810/pruebaCasa/modules/notifications"
	"github.com/edinson0810/pruebaCasa/modules/notifications/application/eventhandlers"
	"github.com/edinson0810/pruebaCasa/modules/shared/events"
	"github.com/edinson0810/pruebaCasa/modules/shared/events/contracts"
)

type recordingNotifier struct {
	messages []eventhandlers.BoardMessage
}

func (n *recordingNotifier) Notify(ctx context.Context, msg eventhandlers.BoardMessage) error {
	n.messages = append(n.messages, msg)
	return nil
}

func TestNew_SubscribesToOrderEvents(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bus := eventbus.New(logger)
	notifier := &recordingNotifier{}

	notifications.New(notifications.Config{
		EventSubscriber: bus,
		Notifier:        notifier,
		Logger:          logger,
	})

	err := bus.Publish(context.Background(),
		contracts.OrderPlacedEvent{
			BaseEvent: events.NewBaseEvent(contracts.OrderPlacedEventType, "order-1"),
			OrderID:   "order-1",
		},
		contracts.OrderCancelledEvent{
			BaseEvent: events.NewBaseEvent(contracts.OrderCancelledEventType, "order-2"),
			OrderID:   "order-2",
		},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(notifier.messages) != 2 {
		t.Fatalf("expected 2 board messages, got %d", len(notifier.messages))
	}
	if notifier.messages[1].OrderID != "order-2" {
		t.Errorf("expected order-2, got %s", notifier.messages[1].OrderID)
	}
}
