// Package contracts defines public event contracts for inter-module communication.
// Modules should import event types from here, NOT from other module's domain packages.
package contracts

import "github.com/edinson0810/pruebaCasa/modules/shared/events"

const (
	OrderPlacedEventType        events.EventType = "orders.OrderPlaced"
	OrderUpdatedEventType       events.EventType = "orders.OrderUpdated"
	OrderStatusChangedEventType events.EventType = "orders.OrderStatusChanged"
	OrderCancelledEventType     events.EventType = "orders.OrderCancelled"
	OrderDeletedEventType       events.EventType = "orders.OrderDeleted"
)

// OrderPlacedEvent is published when a new order has been persisted.
type OrderPlacedEvent struct {
	events.BaseEvent
	OrderID     string `json:"order_id"`
	ServerID    int64  `json:"server_id"`
	TableID     int64  `json:"table_id"`
	Status      string `json:"status"`
	TotalAmount int64  `json:"total_amount"`
	Currency    string `json:"currency"`
}

// OrderUpdatedEvent is published when header fields or line items change.
type OrderUpdatedEvent struct {
	events.BaseEvent
	OrderID     string `json:"order_id"`
	TotalAmount int64  `json:"total_amount"`
	Currency    string `json:"currency"`
}

// OrderStatusChangedEvent is published after a workflow transition.
// Kitchen boards re-fetch their buckets when they receive it.
type OrderStatusChangedEvent struct {
	events.BaseEvent
	OrderID   string `json:"order_id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

// OrderCancelledEvent is published when an order leaves the workflow early.
type OrderCancelledEvent struct {
	events.BaseEvent
	OrderID   string `json:"order_id"`
	OldStatus string `json:"old_status"`
}

// OrderDeletedEvent is published when an order and its items are removed.
type OrderDeletedEvent struct {
	events.BaseEvent
	OrderID string `json:"order_id"`
}
