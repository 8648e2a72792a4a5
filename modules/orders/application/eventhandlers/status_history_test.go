package eventhandlers_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/edinson0810/pruebaCasa/modules/orders/application/eventhandlers"
	"github.com/edinson0810/pruebaCasa/modules/orders/domain"
	"github.com/edinson0810/pruebaCasa/modules/shared/events"
	"github.com/edinson0810/pruebaCasa/modules/shared/events/contracts"
)

type mockHistoryWriter struct {
	appendFn func(ctx context.Context, entry domain.HistoryEntry) error
}

func (m *mockHistoryWriter) AppendHistory(ctx context.Context, entry domain.HistoryEntry) error {
	return m.appendFn(ctx, entry)
}

func TestStatusHistoryHandler_Handle(t *testing.T) {
	orderID := domain.NewOrderID().String()

	tests := []struct {
		name    string
		event   events.Event
		wantOld domain.Status
		wantNew domain.Status
	}{
		{
			name: "order placed",
			event: contracts.OrderPlacedEvent{
				BaseEvent: events.NewBaseEvent(contracts.OrderPlacedEventType, orderID),
				OrderID:   orderID,
				Status:    "pending",
			},
			wantOld: "",
			wantNew: domain.StatusPending,
		},
		{
			name: "status changed",
			event: contracts.OrderStatusChangedEvent{
				BaseEvent: events.NewBaseEvent(contracts.OrderStatusChangedEventType, orderID),
				OrderID:   orderID,
				OldStatus: "pending",
				NewStatus: "preparing",
			},
			wantOld: domain.StatusPending,
			wantNew: domain.StatusPreparing,
		},
		{
			name: "order cancelled",
			event: contracts.OrderCancelledEvent{
				BaseEvent: events.NewBaseEvent(contracts.OrderCancelledEventType, orderID),
				OrderID:   orderID,
				OldStatus: "preparing",
			},
			wantOld: domain.StatusPreparing,
			wantNew: domain.StatusCancelled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got domain.HistoryEntry
			writer := &mockHistoryWriter{
				appendFn: func(ctx context.Context, entry domain.HistoryEntry) error {
					got = entry
					return nil
				},
			}
			handler := eventhandlers.NewStatusHistoryHandler(writer, slog.Default())

			if err := handler.Handle(context.Background(), tt.event); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got.OrderID.String() != orderID {
				t.Errorf("expected order %s, got %s", orderID, got.OrderID)
			}
			if got.OldStatus != tt.wantOld || got.NewStatus != tt.wantNew {
				t.Errorf("expected %q -> %q, got %q -> %q", tt.wantOld, tt.wantNew, got.OldStatus, got.NewStatus)
			}
			if got.ChangedAt.IsZero() {
				t.Error("expected ChangedAt to be set")
			}
		})
	}
}

func TestStatusHistoryHandler_WriteFailure(t *testing.T) {
	errStore := errors.New("disk full")
	writer := &mockHistoryWriter{
		appendFn: func(ctx context.Context, entry domain.HistoryEntry) error { return errStore },
	}
	handler := eventhandlers.NewStatusHistoryHandler(writer, slog.Default())
	orderID := domain.NewOrderID().String()

	err := handler.Handle(context.Background(), contracts.OrderPlacedEvent{
		BaseEvent: events.NewBaseEvent(contracts.OrderPlacedEventType, orderID),
		OrderID:   orderID,
		Status:    "pending",
	})

	if !errors.Is(err, errStore) {
		t.Errorf("expected store error to propagate, got %v", err)
	}
}

func TestStatusHistoryHandler_UnexpectedEvent(t *testing.T) {
	writer := &mockHistoryWriter{
		appendFn: func(ctx context.Context, entry domain.HistoryEntry) error {
			t.Fatal("must not write for unrelated events")
			return nil
		},
	}
	handler := eventhandlers.NewStatusHistoryHandler(writer, slog.Default())

	err := handler.Handle(context.Background(), contracts.OrderDeletedEvent{
		BaseEvent: events.NewBaseEvent(contracts.OrderDeletedEventType, "x"),
	})

	if err == nil {
		t.Error("expected an error for an unexpected event type")
	}
}
