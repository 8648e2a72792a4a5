package domain

import (
	"github.com/edinson0810/pruebaCasa/modules/shared/events"
	"github.com/edinson0810/pruebaCasa/modules/shared/events/contracts"
)

func NewOrderPlacedEvent(order *Order) contracts.OrderPlacedEvent {
	return contracts.OrderPlacedEvent{
		BaseEvent:   events.NewBaseEventAt(contracts.OrderPlacedEventType, order.ID().String(), order.UpdatedAt()),
		OrderID:     order.ID().String(),
		ServerID:    order.ServerID(),
		TableID:     order.TableID(),
		Status:      order.Status().String(),
		TotalAmount: order.Total().Amount(),
		Currency:    order.Total().Currency(),
	}
}

// NewOrderUpdatedEvent carries the total as it stands when the event is
// recorded; handlers that need the final state re-read the order.
func NewOrderUpdatedEvent(order *Order) contracts.OrderUpdatedEvent {
	return contracts.OrderUpdatedEvent{
		BaseEvent:   events.NewBaseEventAt(contracts.OrderUpdatedEventType, order.ID().String(), order.UpdatedAt()),
		OrderID:     order.ID().String(),
		TotalAmount: order.Total().Amount(),
		Currency:    order.Total().Currency(),
	}
}

func NewOrderStatusChangedEvent(order *Order, old Status) contracts.OrderStatusChangedEvent {
	return contracts.OrderStatusChangedEvent{
		BaseEvent: events.NewBaseEventAt(contracts.OrderStatusChangedEventType, order.ID().String(), order.UpdatedAt()),
		OrderID:   order.ID().String(),
		OldStatus: old.String(),
		NewStatus: order.Status().String(),
	}
}

func NewOrderCancelledEvent(order *Order, old Status) contracts.OrderCancelledEvent {
	return contracts.OrderCancelledEvent{
		BaseEvent: events.NewBaseEventAt(contracts.OrderCancelledEventType, order.ID().String(), order.UpdatedAt()),
		OrderID:   order.ID().String(),
		OldStatus: old.String(),
	}
}

func NewOrderDeletedEvent(id OrderID) contracts.OrderDeletedEvent {
	return contracts.OrderDeletedEvent{
		BaseEvent: events.NewBaseEvent(contracts.OrderDeletedEventType, id.String()),
		OrderID:   id.String(),
	}
}
