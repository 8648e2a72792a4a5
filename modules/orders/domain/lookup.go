package domain

import (
	"context"

	"github.com/edinson0810/pruebaCasa/modules/shared/types"
)

// MenuItemSnapshot is the menu data captured when an order is priced.
type MenuItemSnapshot struct {
	ID        int64
	Name      string
	Price     types.Money
	Available bool
}

// MenuLookup resolves menu items by id. found is false for unknown ids.
type MenuLookup interface {
	LookupMenuItem(ctx context.Context, id int64) (item MenuItemSnapshot, found bool, err error)
}

// StaffDirectory answers existence checks for servers and tables.
type StaffDirectory interface {
	ServerExists(ctx context.Context, id int64) (bool, error)
	TableExists(ctx context.Context, id int64) (bool, error)
}
