// Package eventhandlers reacts to order events published after commit.
package eventhandlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/edinson0810/pruebaCasa/modules/shared/events"
	"github.com/edinson0810/pruebaCasa/modules/shared/events/contracts"
)

// BoardMessage tells kitchen and floor screens that an order changed and
// their buckets should be re-fetched.
type BoardMessage struct {
	EventID    string          `json:"event_id"`
	EventType  string          `json:"event_type"`
	OrderID    string          `json:"order_id"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

// BoardNotifier delivers board messages to whatever the screens listen on.
type BoardNotifier interface {
	Notify(ctx context.Context, msg BoardMessage) error
}

// BoardRefreshHandler forwards order lifecycle events to a BoardNotifier.
//
// It runs on the in-memory bus after the transaction has committed, so a
// failed delivery never rolls back the order. Screens also poll
// GET /kitchen/orders, which bounds how stale a missed message can leave them.
type BoardRefreshHandler struct {
	notifier BoardNotifier
	logger   *slog.Logger
}

func NewBoardRefreshHandler(notifier BoardNotifier, logger *slog.Logger) *BoardRefreshHandler {
	return &BoardRefreshHandler{notifier: notifier, logger: logger}
}

// EventTypes lists the order events that change what a board shows.
func (h *BoardRefreshHandler) EventTypes() []events.EventType {
	return []events.EventType{
		contracts.OrderPlacedEventType,
		contracts.OrderUpdatedEventType,
		contracts.OrderStatusChangedEventType,
		contracts.OrderCancelledEventType,
		contracts.OrderDeletedEventType,
	}
}

func (h *BoardRefreshHandler) Handle(ctx context.Context, event events.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding %s event: %w", event.EventType(), err)
	}

	msg := BoardMessage{
		EventID:    event.EventID(),
		EventType:  event.EventType().String(),
		OrderID:    event.AggregateID(),
		OccurredAt: event.OccurredAt(),
		Payload:    payload,
	}
	if err := h.notifier.Notify(ctx, msg); err != nil {
		return fmt.Errorf("notifying boards of %s: %w", msg.EventType, err)
	}

	h.logger.Debug("board notified",
		slog.String("event_type", msg.EventType),
		slog.String("order_id", msg.OrderID),
	)
	return nil
}
