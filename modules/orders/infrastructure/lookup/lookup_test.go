package lookup_test

import (
	"context"
	"errors"
	"testing"

	"github.com/edinson0810/pruebaCasa/modules/menu"
	"github.com/edinson0810/pruebaCasa/modules/orders/infrastructure/lookup"
	"github.com/edinson0810/pruebaCasa/modules/shared/types"
)

type mockCatalog struct {
	lookupFn func(ctx context.Context, id int64) (menu.Item, bool, error)
}

func (m *mockCatalog) LookupItem(ctx context.Context, id int64) (menu.Item, bool, error) {
	return m.lookupFn(ctx, id)
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

func TestMenuLookup(t *testing.T) {
	catalog := &mockCatalog{
		lookupFn: func(ctx context.Context, id int64) (menu.Item, bool, error) {
			if id != 5 {
				return menu.Item{}, false, nil
			}
			return menu.Item{ID: 5, Name: "Burger", Price: types.MustNewMoney(950, "USD"), Available: true}, true, nil
		},
	}
	l := lookup.NewMenuLookup(catalog)

	snap, found, err := l.LookupMenuItem(context.Background(), 5)
	if err != nil || !found {
		t.Fatalf("expected item 5, got found=%v err=%v", found, err)
	}
	if snap.Name != "Burger" || snap.Price.Amount() != 950 || !snap.Available {
		t.Errorf("unexpected snapshot: %+v", snap)
	}

	_, found, err = l.LookupMenuItem(context.Background(), 6)
	if err != nil || found {
		t.Errorf("expected item 6 to be missing, got found=%v err=%v", found, err)
	}
}

func TestMenuLookup_Error(t *testing.T) {
	errStore := errors.New("store unavailable")
	l := lookup.NewMenuLookup(&mockCatalog{
		lookupFn: func(ctx context.Context, id int64) (menu.Item, bool, error) {
			return menu.Item{}, false, errStore
		},
	})

	_, _, err := l.LookupMenuItem(context.Background(), 5)

	if !errors.Is(err, errStore) {
		t.Errorf("expected errStore, got %v", err)
	}
}

func TestStaffDirectory(t *testing.T) {
	d := lookup.NewStaffDirectory(&mockDirectory{
		servers: map[int64]bool{1: true},
		tables:  map[int64]bool{2: true},
	})
	ctx := context.Background()

	if ok, _ := d.ServerExists(ctx, 1); !ok {
		t.Error("expected server 1 to exist")
	}
	if ok, _ := d.ServerExists(ctx, 2); ok {
		t.Error("expected server 2 to be missing")
	}
	if ok, _ := d.TableExists(ctx, 2); !ok {
		t.Error("expected table 2 to exist")
	}
}
