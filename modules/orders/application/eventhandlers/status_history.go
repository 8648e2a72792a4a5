// Package eventhandlers contains in-transaction reactions to order events.
package eventhandlers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/edinson0810/pruebaCasa/modules/orders/domain"
	"github.com/edinson0810/pruebaCasa/modules/shared/events"
	"github.com/edinson0810/pruebaCasa/modules/shared/events/contracts"
)

// HistoryWriter is the slice of the order repository this handler needs.
type HistoryWriter interface {
	AppendHistory(ctx context.Context, entry domain.HistoryEntry) error
}

// StatusHistoryHandler appends to the status log whenever an order is placed,
// moves along the workflow or is cancelled. It runs inside the command's
// transaction, so the log and the order row never disagree.
type StatusHistoryHandler struct {
	repo   HistoryWriter
	logger *slog.Logger
}

func NewStatusHistoryHandler(repo HistoryWriter, logger *slog.Logger) *StatusHistoryHandler {
	return &StatusHistoryHandler{
		repo:   repo,
		logger: logger,
	}
}

// EventTypes lists the events the handler must be subscribed to.
func (h *StatusHistoryHandler) EventTypes() []events.EventType {
	return []events.EventType{
		contracts.OrderPlacedEventType,
		contracts.OrderStatusChangedEventType,
		contracts.OrderCancelledEventType,
	}
}

func (h *StatusHistoryHandler) Handle(ctx context.Context, event events.Event) error {
	var orderID, oldStatus, newStatus string
	switch e := event.(type) {
	case contracts.OrderPlacedEvent:
		orderID, newStatus = e.OrderID, e.Status
	case contracts.OrderStatusChangedEvent:
		orderID, oldStatus, newStatus = e.OrderID, e.OldStatus, e.NewStatus
	case contracts.OrderCancelledEvent:
		orderID, oldStatus, newStatus = e.OrderID, e.OldStatus, domain.StatusCancelled.String()
	default:
		return fmt.Errorf("unexpected event type: %T", event)
	}

	id, err := domain.ParseOrderID(orderID)
	if err != nil {
		return fmt.Errorf("parsing order ID: %w", err)
	}

	entry := domain.HistoryEntry{
		OrderID:   id,
		OldStatus: domain.Status(oldStatus),
		NewStatus: domain.Status(newStatus),
		ChangedAt: event.OccurredAt().UTC().Truncate(time.Microsecond),
	}
	if err := h.repo.AppendHistory(ctx, entry); err != nil {
		return fmt.Errorf("appending status history: %w", err)
	}

	h.logger.Debug("recorded status change",
		slog.String("order_id", orderID),
		slog.String("old_status", oldStatus),
		slog.String("new_status", newStatus),
	)
	return nil
}
