// Package events holds the event types modules exchange. A module publishes
// facts about its aggregates and never learns which other modules react.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventType names a kind of event, e.g. "orders.OrderStatusChanged".
type EventType string

func (t EventType) String() string { return string(t) }

// Event is an immutable fact recorded by an aggregate.
type Event interface {
	EventID() string
	EventType() EventType
	// OccurredAt is the aggregate's change time, not the publish time.
	OccurredAt() time.Time
	AggregateID() string
}

// BaseEvent carries the envelope fields. Concrete events embed it.
type BaseEvent struct {
	ID          string    `json:"id"`
	Type        EventType `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	AggregateId string    `json:"aggregate_id"`
}

// NewBaseEvent stamps the event with the current time.
func NewBaseEvent(eventType EventType, aggregateID string) BaseEvent {
	return NewBaseEventAt(eventType, aggregateID, time.Now())
}

// NewBaseEventAt stamps the event with the time the aggregate changed, so
// the event and the stored row agree on when it happened.
func NewBaseEventAt(eventType EventType, aggregateID string, at time.Time) BaseEvent {
	return BaseEvent{
		ID:          newEventID(),
		Type:        eventType,
		Timestamp:   at.UTC(),
		AggregateId: aggregateID,
	}
}

// newEventID returns a time-ordered UUIDv7 so broker consumers can sort by id.
func newEventID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func (e BaseEvent) EventID() string       { return e.ID }
func (e BaseEvent) EventType() EventType  { return e.Type }
func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }
func (e BaseEvent) AggregateID() string   { return e.AggregateId }

type Publisher interface {
	Publish(ctx context.Context, evts ...Event) error
}

type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, event Event) error

func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

type Subscriber interface {
	Subscribe(eventType EventType, handler Handler) error
}
