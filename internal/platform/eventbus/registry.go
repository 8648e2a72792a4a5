package eventbus

import (
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/edinson0810/pruebaCasa/modules/shared/events"
)

// ErrNilHandler is returned when subscribing a nil handler.
var ErrNilHandler = errors.New("nil event handler")

// HandlerRegistry is what a TransactionalEventBus dispatches through.
type HandlerRegistry interface {
	HandlersFor(eventType events.EventType) []events.Handler
}

// EventHandlerRegistry holds the handlers that must run inside the command's
// transaction, such as the order status log. Modules subscribe once at
// startup; each command's TransactionalEventBus reads it on flush.
type EventHandlerRegistry struct {
	mu       sync.RWMutex
	handlers map[events.EventType][]events.Handler
	logger   *slog.Logger
}

func NewEventHandlerRegistry(logger *slog.Logger) *EventHandlerRegistry {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventHandlerRegistry{
		handlers: make(map[events.EventType][]events.Handler),
		logger:   logger,
	}
}

// Subscribe implements events.Subscriber. Handlers run in subscription order.
func (r *EventHandlerRegistry) Subscribe(eventType events.EventType, handler events.Handler) error {
	if handler == nil {
		return ErrNilHandler
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.handlers[eventType] = append(r.handlers[eventType], handler)
	r.logger.Debug("registered transactional handler",
		slog.String("event_type", eventType.String()),
		slog.Int("handlers", len(r.handlers[eventType])),
	)

	return nil
}

// HandlersFor returns a copy, so a flush never sees a concurrent Subscribe.
func (r *EventHandlerRegistry) HandlersFor(eventType events.EventType) []events.Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.handlers[eventType])
}

// EventTypes lists every event type with at least one handler, sorted.
func (r *EventHandlerRegistry) EventTypes() []events.EventType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]events.EventType, 0, len(r.handlers))
	for t := range r.handlers {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}

var (
	_ events.Subscriber = (*EventHandlerRegistry)(nil)
	_ HandlerRegistry   = (*EventHandlerRegistry)(nil)
)
