package commands_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/edinson0810/pruebaCasa/modules/orders/application/commands"
	"github.com/edinson0810/pruebaCasa/modules/orders/domain"
	"github.com/edinson0810/pruebaCasa/modules/shared/events"
	"github.com/edinson0810/pruebaCasa/modules/shared/events/contracts"
)

func TestTransitionStatusHandler_Handle(t *testing.T) {
	tests := []struct {
		name      string
		from      domain.Status
		requested string
		wantErr   error
	}{
		{"pending to preparing", domain.StatusPending, "preparing", nil},
		{"preparing to ready", domain.StatusPreparing, "ready", nil},
		{"ready to delivered", domain.StatusReady, "delivered", nil},
		{"skip rejected", domain.StatusPending, "delivered", domain.ErrInvalidTransition},
		{"backward rejected", domain.StatusReady, "preparing", domain.ErrInvalidTransition},
		{"repeat rejected", domain.StatusPending, "pending", domain.ErrInvalidTransition},
		{"terminal rejected", domain.StatusDelivered, "pending", domain.ErrInvalidTransition},
		{"unknown status", domain.StatusPending, "served", domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := storedOrder(t, tt.from)
			var stored struct{ from, to domain.Status }
			var published []events.Event

			repo := &mockOrderRepository{
				findByIDFn: func(ctx context.Context, id domain.OrderID) (*domain.Order, error) {
					return order, nil
				},
				transitionStatusFn: func(ctx context.Context, id domain.OrderID, from, to domain.Status) error {
					stored.from, stored.to = from, to
					return nil
				},
			}
			dispatch := commands.NewEventDispatch(nil, recordingPublisher(&published), slog.Default())
			handler := commands.NewTransitionStatusHandler(repo, passthroughScope(), dispatch)

			err := handler.Handle(context.Background(), commands.TransitionStatusCommand{
				OrderID: order.ID().String(),
				Status:  tt.requested,
			})

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.wantErr != nil {
				if stored.to != "" {
					t.Error("rejected transition must not be stored")
				}
				if len(published) != 0 {
					t.Error("rejected transition must not publish events")
				}
				return
			}
			if stored.from != tt.from || stored.to != domain.Status(tt.requested) {
				t.Errorf("expected conditional update %s -> %s, got %s -> %s", tt.from, tt.requested, stored.from, stored.to)
			}
			if len(published) != 1 {
				t.Fatalf("expected 1 event, got %d", len(published))
			}
			if _, ok := published[0].(contracts.OrderStatusChangedEvent); !ok {
				t.Errorf("expected OrderStatusChangedEvent, got %T", published[0])
			}
		})
	}
}

func TestTransitionStatusHandler_Handle_NotFound(t *testing.T) {
	repo := &mockOrderRepository{
		findByIDFn: func(ctx context.Context, id domain.OrderID) (*domain.Order, error) {
			return nil, domain.ErrOrderNotFound
		},
	}
	handler := commands.NewTransitionStatusHandler(repo, passthroughScope(), nil)

	err := handler.Handle(context.Background(), commands.TransitionStatusCommand{
		OrderID: domain.NewOrderID().String(),
		Status:  "preparing",
	})

	if !errors.Is(err, domain.ErrOrderNotFound) {
		t.Errorf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestTransitionStatusHandler_Handle_ConcurrentChange(t *testing.T) {
	order := storedOrder(t, domain.StatusPending)
	repo := &mockOrderRepository{
		findByIDFn: func(ctx context.Context, id domain.OrderID) (*domain.Order, error) {
			return order, nil
		},
		transitionStatusFn: func(ctx context.Context, id domain.OrderID, from, to domain.Status) error {
			return domain.ErrStatusChanged
		},
	}
	handler := commands.NewTransitionStatusHandler(repo, passthroughScope(), nil)

	err := handler.Handle(context.Background(), commands.TransitionStatusCommand{
		OrderID: order.ID().String(),
		Status:  "preparing",
	})

	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("expected lost race to surface as invalid transition, got %v", err)
	}
}

func TestTransitionStatusHandler_Handle_InvalidID(t *testing.T) {
	handler := commands.NewTransitionStatusHandler(&mockOrderRepository{}, passthroughScope(), nil)

	err := handler.Handle(context.Background(), commands.TransitionStatusCommand{OrderID: "42", Status: "ready"})

	if !errors.Is(err, domain.ErrInvalidOrderID) {
		t.Errorf("expected ErrInvalidOrderID, got %v", err)
	}
}
