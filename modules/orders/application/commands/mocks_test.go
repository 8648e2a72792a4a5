package commands_test

import (
	"context"
	"testing"

	"github.com/edinson0810/pruebaCasa/modules/orders/domain"
	"github.com/edinson0810/pruebaCasa/modules/shared/events"
	"github.com/edinson0810/pruebaCasa/modules/shared/types"
)

// --- Mocks ---

type mockOrderRepository struct {
	createFn           func(ctx context.Context, order *domain.Order) error
	findByIDFn         func(ctx context.Context, id domain.OrderID) (*domain.Order, error)
	updateFieldsFn     func(ctx context.Context, id domain.OrderID, fields domain.OrderFields) error
	replaceItemsFn     func(ctx context.Context, id domain.OrderID, items []domain.LineItem, total types.Money) error
	transitionStatusFn func(ctx context.Context, id domain.OrderID, from, to domain.Status) error
	deleteFn           func(ctx context.Context, id domain.OrderID) error
}

func (m *mockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	return m.createFn(ctx, order)
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id domain.OrderID) (*domain.Order, error) {
	return m.findByIDFn(ctx, id)
}

func (m *mockOrderRepository) UpdateFields(ctx context.Context, id domain.OrderID, fields domain.OrderFields) error {
	return m.updateFieldsFn(ctx, id, fields)
}

func (m *mockOrderRepository) ReplaceItems(ctx context.Context, id domain.OrderID, items []domain.LineItem, total types.Money) error {
	return m.replaceItemsFn(ctx, id, items, total)
}

func (m *mockOrderRepository) TransitionStatus(ctx context.Context, id domain.OrderID, from, to domain.Status) error {
	return m.transitionStatusFn(ctx, id, from, to)
}

func (m *mockOrderRepository) Delete(ctx context.Context, id domain.OrderID) error {
	return m.deleteFn(ctx, id)
}

func (m *mockOrderRepository) AppendHistory(ctx context.Context, entry domain.HistoryEntry) error {
	return nil
}

type mockMenuLookup struct {
	items map[int64]domain.MenuItemSnapshot
	err   error
}

func (m *mockMenuLookup) LookupMenuItem(ctx context.Context, id int64) (domain.MenuItemSnapshot, bool, error) {
	if m.err != nil {
		return domain.MenuItemSnapshot{}, false, m.err
	}
	item, ok := m.items[id]
	return item, ok, nil
}

type mockDirectory struct {
	servers map[int64]bool
	tables  map[int64]bool
}

func (m *mockDirectory) ServerExists(ctx context.Context, id int64) (bool, error) {
	return m.servers[id], nil
}

func (m *mockDirectory) TableExists(ctx context.Context, id int64) (bool, error) {
	return m.tables[id], nil
}

type mockTransactionScope struct {
	executeFn func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTransactionScope) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.executeFn(ctx, fn)
}

func passthroughScope() *mockTransactionScope {
	return &mockTransactionScope{
		executeFn: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		},
	}
}

type mockPublisher struct {
	publishFn func(ctx context.Context, evts ...events.Event) error
}

func (m *mockPublisher) Publish(ctx context.Context, evts ...events.Event) error {
	return m.publishFn(ctx, evts...)
}

// recordingPublisher collects everything published after commit.
func recordingPublisher(out *[]events.Event) *mockPublisher {
	return &mockPublisher{
		publishFn: func(ctx context.Context, evts ...events.Event) error {
			*out = append(*out, evts...)
			return nil
		},
	}
}

type mockRegistry struct {
	handlers map[events.EventType][]events.Handler
}

func (m *mockRegistry) HandlersFor(eventType events.EventType) []events.Handler {
	return m.handlers[eventType]
}

// --- Fixtures ---

func usd(amount int64) types.Money {
	return types.MustNewMoney(amount, "USD")
}

// testMenu holds menu item 5 at 9.50 and item 6 at 4.25; item 7 is withdrawn.
func testMenu() *mockMenuLookup {
	return &mockMenuLookup{items: map[int64]domain.MenuItemSnapshot{
		5: {ID: 5, Name: "Burger", Price: usd(950), Available: true},
		6: {ID: 6, Name: "Fries", Price: usd(425), Available: true},
		7: {ID: 7, Name: "Seasonal Soup", Price: usd(600), Available: false},
	}}
}

func testDirectory() *mockDirectory {
	return &mockDirectory{
		servers: map[int64]bool{1: true, 3: true},
		tables:  map[int64]bool{2: true, 4: true},
	}
}

func storedOrder(t *testing.T, status domain.Status) *domain.Order {
	t.Helper()
	item, err := domain.NewLineItem(5, 2, usd(950))
	if err != nil {
		t.Fatalf("failed to create line item: %v", err)
	}
	order, err := domain.NewOrder(1, 2, status, []domain.LineItem{item})
	if err != nil {
		t.Fatalf("failed to create order: %v", err)
	}
	return domain.Reconstitute(order.ID(), 1, 2, status, order.Items(), order.Total(), order.CreatedAt(), order.UpdatedAt())
}
