package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/edinson0810/pruebaCasa/modules/menu/application/commands"
	"github.com/edinson0810/pruebaCasa/modules/menu/domain"
	"github.com/edinson0810/pruebaCasa/modules/shared/types"
)

// --- Mocks ---

type mockMenuRepository struct {
	createFn   func(ctx context.Context, item *domain.MenuItem) error
	updateFn   func(ctx context.Context, item *domain.MenuItem) error
	findByIDFn func(ctx context.Context, id int64) (*domain.MenuItem, error)
}

func (m *mockMenuRepository) Create(ctx context.Context, item *domain.MenuItem) error {
	return m.createFn(ctx, item)
}

func (m *mockMenuRepository) Update(ctx context.Context, item *domain.MenuItem) error {
	return m.updateFn(ctx, item)
}

func (m *mockMenuRepository) FindByID(ctx context.Context, id int64) (*domain.MenuItem, error) {
	return m.findByIDFn(ctx, id)
}

func (m *mockMenuRepository) FindAll(ctx context.Context, filter domain.ListFilter) ([]*domain.MenuItem, error) {
	return nil, nil
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

func storedItem(id int64, available bool) *domain.MenuItem {
	details := domain.Details{Name: "Burger", Category: "mains", Price: types.MustNewMoney(950, "USD")}
	return domain.Reconstitute(id, details, available, time.Now(), time.Now())
}

// --- Tests ---

func TestCreateMenuItemHandler_Handle(t *testing.T) {
	var saved *domain.MenuItem
	repo := &mockMenuRepository{
		createFn: func(ctx context.Context, item *domain.MenuItem) error {
			item.AssignID(12)
			saved = item
			return nil
		},
	}
	handler := commands.NewCreateMenuItemHandler(repo, "USD")

	id, err := handler.Handle(context.Background(), commands.CreateMenuItemCommand{
		Name:  "Burger",
		Price: "9.50",
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 12 {
		t.Errorf("expected id 12, got %d", id)
	}
	if saved.Price().Amount() != 950 || saved.Price().Currency() != "USD" {
		t.Errorf("expected 9.50 USD, got %s", saved.Price())
	}
}

func TestCreateMenuItemHandler_Handle_InvalidPrice(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		currency string
		wantErr  error
	}{
		{"missing", "", "", domain.ErrPriceRequired},
		{"not a number", "nine", "", domain.ErrInvalidPrice},
		{"too precise", "9.505", "", domain.ErrInvalidPrice},
		{"negative", "-1.00", "", domain.ErrNegativePrice},
		{"zero-decimal currency", "1200", "JPY", domain.ErrInvalidPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockMenuRepository{
				createFn: func(ctx context.Context, item *domain.MenuItem) error {
					t.Fatal("Create should not be called for invalid input")
					return nil
				},
			}
			handler := commands.NewCreateMenuItemHandler(repo, "USD")

			_, err := handler.Handle(context.Background(), commands.CreateMenuItemCommand{Name: "Soup", Price: tt.price, Currency: tt.currency})

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestUpdateMenuItemHandler_Handle(t *testing.T) {
	var updated *domain.MenuItem
	repo := &mockMenuRepository{
		findByIDFn: func(ctx context.Context, id int64) (*domain.MenuItem, error) {
			return storedItem(id, true), nil
		},
		updateFn: func(ctx context.Context, item *domain.MenuItem) error {
			updated = item
			return nil
		},
	}
	handler := commands.NewUpdateMenuItemHandler(repo, passthroughScope(), "USD")
	unavailable := false

	err := handler.Handle(context.Background(), commands.UpdateMenuItemCommand{
		MenuItemID: "5",
		Name:       "Cheeseburger",
		Price:      "11",
		Available:  &unavailable,
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Name() != "Cheeseburger" || updated.Price().Amount() != 1100 {
		t.Errorf("unexpected item after update: %s %s", updated.Name(), updated.Price())
	}
	if updated.Available() {
		t.Error("expected item to be unavailable")
	}
}

func TestUpdateMenuItemHandler_Handle_NotFound(t *testing.T) {
	repo := &mockMenuRepository{
		findByIDFn: func(ctx context.Context, id int64) (*domain.MenuItem, error) {
			return nil, domain.ErrMenuItemNotFound
		},
	}
	handler := commands.NewUpdateMenuItemHandler(repo, passthroughScope(), "USD")

	err := handler.Handle(context.Background(), commands.UpdateMenuItemCommand{MenuItemID: "99", Name: "Soup", Price: "3.00"})

	if !errors.Is(err, domain.ErrMenuItemNotFound) {
		t.Errorf("expected ErrMenuItemNotFound, got %v", err)
	}
}

func TestWithdrawMenuItemHandler_Handle(t *testing.T) {
	calls := 0
	repo := &mockMenuRepository{
		findByIDFn: func(ctx context.Context, id int64) (*domain.MenuItem, error) {
			return storedItem(id, true), nil
		},
		updateFn: func(ctx context.Context, item *domain.MenuItem) error {
			calls++
			if item.Available() {
				t.Error("expected withdrawn item to be unavailable")
			}
			return nil
		},
	}
	handler := commands.NewWithdrawMenuItemHandler(repo, passthroughScope())

	if err := handler.Handle(context.Background(), commands.WithdrawMenuItemCommand{MenuItemID: "5"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 update, got %d", calls)
	}
}

func TestWithdrawMenuItemHandler_Handle_AlreadyWithdrawn(t *testing.T) {
	repo := &mockMenuRepository{
		findByIDFn: func(ctx context.Context, id int64) (*domain.MenuItem, error) {
			return storedItem(id, false), nil
		},
		updateFn: func(ctx context.Context, item *domain.MenuItem) error {
			t.Fatal("Update should not be called for a withdrawn item")
			return nil
		},
	}
	handler := commands.NewWithdrawMenuItemHandler(repo, passthroughScope())

	if err := handler.Handle(context.Background(), commands.WithdrawMenuItemCommand{MenuItemID: "5"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWithdrawMenuItemHandler_Handle_TransactionError(t *testing.T) {
	errTx := errors.New("transaction failed")
	scope := &mockTransactionScope{
		executeFn: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return errTx
		},
	}
	handler := commands.NewWithdrawMenuItemHandler(nil, scope)

	err := handler.Handle(context.Background(), commands.WithdrawMenuItemCommand{MenuItemID: "5"})

	if !errors.Is(err, errTx) {
		t.Errorf("expected errTx, got %v", err)
	}
}
