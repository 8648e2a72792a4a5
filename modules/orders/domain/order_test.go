package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/edinson0810/pruebaCasa/modules/orders/domain"
	"github.com/edinson0810/pruebaCasa/modules/shared/events/contracts"
	"github.com/edinson0810/pruebaCasa/modules/shared/types"
)

func usd(amount int64) types.Money {
	return types.MustNewMoney(amount, "USD")
}

func lineItem(t *testing.T, menuItemID int64, quantity int, price types.Money) domain.LineItem {
	t.Helper()
	item, err := domain.NewLineItem(menuItemID, quantity, price)
	if err != nil {
		t.Fatalf("failed to create line item: %v", err)
	}
	return item
}

func createTestOrder(t *testing.T, status domain.Status) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder(1, 2, status, []domain.LineItem{lineItem(t, 5, 2, usd(950))})
	if err != nil {
		t.Fatalf("failed to create order: %v", err)
	}
	order.PopDomainEvents()
	return order
}

func TestNewOrder(t *testing.T) {
	order, err := domain.NewOrder(1, 2, "", []domain.LineItem{lineItem(t, 5, 2, usd(950))})
	if err != nil {
		t.Fatalf("failed to create order: %v", err)
	}

	if order.ID().IsZero() {
		t.Error("expected order to have an ID")
	}
	if order.Status() != domain.StatusPending {
		t.Errorf("expected status 'pending', got '%s'", order.Status())
	}
	if order.Total().Amount() != 1900 {
		t.Errorf("expected total 1900, got %d", order.Total().Amount())
	}
	if order.Total().String() != "19.00 USD" {
		t.Errorf("expected '19.00 USD', got '%s'", order.Total().String())
	}

	evts := order.PopDomainEvents()
	if len(evts) != 1 {
		t.Fatalf("expected 1 event, got %d", len(evts))
	}
	placed, ok := evts[0].(contracts.OrderPlacedEvent)
	if !ok {
		t.Fatalf("expected OrderPlacedEvent, got %T", evts[0])
	}
	if placed.TotalAmount != 1900 || placed.TableID != 2 {
		t.Errorf("unexpected event payload: %+v", placed)
	}
}

func TestNewOrder_TotalIsSumOfLines(t *testing.T) {
	items := []domain.LineItem{
		lineItem(t, 1, 3, usd(250)),
		lineItem(t, 2, 1, usd(1199)),
		lineItem(t, 3, 4, usd(5)),
	}

	order, err := domain.NewOrder(1, 1, domain.StatusPending, items)
	if err != nil {
		t.Fatalf("failed to create order: %v", err)
	}

	if order.Total().Amount() != 750+1199+20 {
		t.Errorf("expected total %d, got %d", 750+1199+20, order.Total().Amount())
	}
}

func TestNewOrder_Validation(t *testing.T) {
	valid := []domain.LineItem{{MenuItemID: 5, Quantity: 1, UnitPrice: usd(100)}}

	tests := []struct {
		name     string
		serverID int64
		tableID  int64
		status   domain.Status
		items    []domain.LineItem
		wantErr  error
	}{
		{"missing server", 0, 2, "", valid, domain.ErrServerRequired},
		{"missing table", 1, 0, "", valid, domain.ErrTableRequired},
		{"no items", 1, 2, "", nil, domain.ErrOrderEmpty},
		{"zero quantity", 1, 2, "", []domain.LineItem{{MenuItemID: 5, Quantity: 0, UnitPrice: usd(100)}}, domain.ErrInvalidQuantity},
		{"unknown status", 1, 2, "served", valid, domain.ErrInvalidStatus},
		{"created cancelled", 1, 2, domain.StatusCancelled, valid, domain.ErrInvalidStatus},
		{
			"mixed currencies", 1, 2, "",
			[]domain.LineItem{
				{MenuItemID: 5, Quantity: 1, UnitPrice: usd(100)},
				{MenuItemID: 6, Quantity: 1, UnitPrice: types.MustNewMoney(100, "EUR")},
			},
			domain.ErrMixedCurrencies,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewOrder(tt.serverID, tt.tableID, tt.status, tt.items)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("expected a validation error, got %v", err)
			}
		})
	}
}

func TestNewOrder_ExplicitStatus(t *testing.T) {
	order := createTestOrder(t, domain.StatusReady)

	if order.Status() != domain.StatusReady {
		t.Errorf("expected status 'ready', got '%s'", order.Status())
	}
}

func TestNewLineItem_Validation(t *testing.T) {
	if _, err := domain.NewLineItem(0, 1, usd(100)); !errors.Is(err, domain.ErrInvalidMenuItem) {
		t.Errorf("expected ErrInvalidMenuItem, got %v", err)
	}
	if _, err := domain.NewLineItem(1, -1, usd(100)); !errors.Is(err, domain.ErrInvalidQuantity) {
		t.Errorf("expected ErrInvalidQuantity, got %v", err)
	}
	if _, err := domain.NewLineItem(1, 1, usd(-1)); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestNewLineItem_SubtotalOutOfRange(t *testing.T) {
	_, err := domain.NewLineItem(5, 9709037002529238, usd(950))

	if !errors.Is(err, domain.ErrQuantityTooLarge) {
		t.Fatalf("expected ErrQuantityTooLarge, got %v", err)
	}
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected a validation error, got %v", err)
	}
}

func TestNewOrder_TotalOutOfRange(t *testing.T) {
	// Each line fits on its own; their sum does not.
	line := domain.LineItem{MenuItemID: 5, Quantity: 9000000000000000, UnitPrice: usd(950)}

	_, err := domain.NewOrder(1, 2, "", []domain.LineItem{line, line})

	if !errors.Is(err, domain.ErrQuantityTooLarge) {
		t.Fatalf("expected ErrQuantityTooLarge, got %v", err)
	}
}

func TestOrder_ReplaceItems_TotalOutOfRange(t *testing.T) {
	order, err := domain.NewOrder(1, 2, "", []domain.LineItem{{MenuItemID: 5, Quantity: 2, UnitPrice: usd(950)}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = order.ReplaceItems([]domain.LineItem{{MenuItemID: 5, Quantity: 9709037002529238, UnitPrice: usd(950)}})

	if !errors.Is(err, domain.ErrQuantityTooLarge) {
		t.Fatalf("expected ErrQuantityTooLarge, got %v", err)
	}
	if order.Total().Amount() != 1900 {
		t.Errorf("expected total to stay 1900, got %d", order.Total().Amount())
	}
}

func TestOrder_TransitionTo(t *testing.T) {
	order := createTestOrder(t, domain.StatusPending)

	if err := order.TransitionTo(domain.StatusPreparing); err != nil {
		t.Fatalf("failed to transition: %v", err)
	}
	if order.Status() != domain.StatusPreparing {
		t.Errorf("expected status 'preparing', got '%s'", order.Status())
	}

	evts := order.PopDomainEvents()
	if len(evts) != 1 {
		t.Fatalf("expected 1 event, got %d", len(evts))
	}
	changed := evts[0].(contracts.OrderStatusChangedEvent)
	if changed.OldStatus != "pending" || changed.NewStatus != "preparing" {
		t.Errorf("unexpected event payload: %+v", changed)
	}
}

func TestOrder_TransitionTo_SkipRejected(t *testing.T) {
	order := createTestOrder(t, domain.StatusPending)

	err := order.TransitionTo(domain.StatusDelivered)

	var transitionErr *domain.TransitionError
	if !errors.As(err, &transitionErr) {
		t.Fatalf("expected TransitionError, got %v", err)
	}
	if transitionErr.From != domain.StatusPending || transitionErr.To != domain.StatusDelivered {
		t.Errorf("unexpected error detail: %+v", transitionErr)
	}
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Error("expected error to match ErrInvalidTransition")
	}
	if order.Status() != domain.StatusPending {
		t.Errorf("status must be unchanged, got '%s'", order.Status())
	}
	if len(order.DomainEvents()) != 0 {
		t.Error("expected no events after a rejected transition")
	}
}

func TestOrder_Cancel(t *testing.T) {
	tests := []struct {
		from    domain.Status
		wantErr bool
	}{
		{domain.StatusPending, false},
		{domain.StatusPreparing, false},
		{domain.StatusReady, true},
		{domain.StatusDelivered, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.from), func(t *testing.T) {
			order := createTestOrder(t, tt.from)

			err := order.Cancel()

			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidTransition) {
					t.Errorf("expected ErrInvalidTransition, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("failed to cancel: %v", err)
			}
			if order.Status() != domain.StatusCancelled {
				t.Errorf("expected status 'cancelled', got '%s'", order.Status())
			}
		})
	}
}

func TestOrder_ReplaceItems(t *testing.T) {
	order := createTestOrder(t, domain.StatusPending)

	err := order.ReplaceItems([]domain.LineItem{lineItem(t, 7, 3, usd(400))})
	if err != nil {
		t.Fatalf("failed to replace items: %v", err)
	}

	if order.Total().Amount() != 1200 {
		t.Errorf("expected total 1200, got %d", order.Total().Amount())
	}
	if len(order.Items()) != 1 || order.Items()[0].MenuItemID != 7 {
		t.Errorf("unexpected items: %+v", order.Items())
	}
}

func TestOrder_ReplaceItems_NotPending(t *testing.T) {
	order := createTestOrder(t, domain.StatusPreparing)

	err := order.ReplaceItems([]domain.LineItem{lineItem(t, 7, 3, usd(400))})

	if !errors.Is(err, domain.ErrOrderNotEditable) {
		t.Errorf("expected ErrOrderNotEditable, got %v", err)
	}
	if order.Total().Amount() != 1900 {
		t.Errorf("total must be unchanged, got %d", order.Total().Amount())
	}
}

func TestOrder_ReplaceItems_Empty(t *testing.T) {
	order := createTestOrder(t, domain.StatusPending)

	if err := order.ReplaceItems(nil); !errors.Is(err, domain.ErrOrderEmpty) {
		t.Errorf("expected ErrOrderEmpty, got %v", err)
	}
}

func TestOrder_UpdateEventsCoalesce(t *testing.T) {
	order := createTestOrder(t, domain.StatusPending)

	_ = order.AssignServer(9)
	_ = order.MoveToTable(4)
	_ = order.ReplaceItems([]domain.LineItem{lineItem(t, 5, 1, usd(950))})

	evts := order.PopDomainEvents()
	if len(evts) != 1 {
		t.Fatalf("expected 1 coalesced event, got %d", len(evts))
	}
	if evts[0].EventType() != contracts.OrderUpdatedEventType {
		t.Errorf("expected OrderUpdated, got %s", evts[0].EventType())
	}
}

func TestOrder_VerifyTotal(t *testing.T) {
	order := createTestOrder(t, domain.StatusPending)

	if err := order.VerifyTotal(usd(1900)); err != nil {
		t.Errorf("expected matching total to pass, got %v", err)
	}
	if err := order.VerifyTotal(usd(1800)); !errors.Is(err, domain.ErrTotalMismatch) {
		t.Errorf("expected ErrTotalMismatch, got %v", err)
	}
}

func TestReconstitute(t *testing.T) {
	id := domain.NewOrderID()
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	items := []domain.LineItem{{MenuItemID: 5, Quantity: 2, UnitPrice: usd(950)}}

	order := domain.Reconstitute(id, 1, 2, domain.StatusReady, items, usd(1900), created, created)

	if order.ID() != id || order.Status() != domain.StatusReady || !order.CreatedAt().Equal(created) {
		t.Errorf("unexpected reconstituted order: %+v", order)
	}
	if len(order.DomainEvents()) != 0 {
		t.Error("reconstituted orders must not carry events")
	}
}

func TestParseOrderID(t *testing.T) {
	id := domain.NewOrderID()

	parsed, err := domain.ParseOrderID(id.String())
	if err != nil || parsed != id {
		t.Errorf("expected %s, got %s (%v)", id, parsed, err)
	}

	if _, err := domain.ParseOrderID("not-a-uuid"); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}
