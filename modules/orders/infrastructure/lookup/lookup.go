// Package lookup adapts the public APIs of the menu and staff modules to the
// ports the order domain consumes.
package lookup

import (
	"context"

	"github.com/edinson0810/pruebaCasa/modules/menu"
	"github.com/edinson0810/pruebaCasa/modules/orders/domain"
	"github.com/edinson0810/pruebaCasa/modules/staff"
)

// MenuLookup resolves prices through the menu module's catalog.
type MenuLookup struct {
	catalog menu.Catalog
}

func NewMenuLookup(catalog menu.Catalog) *MenuLookup {
	return &MenuLookup{catalog: catalog}
}

func (l *MenuLookup) LookupMenuItem(ctx context.Context, id int64) (domain.MenuItemSnapshot, bool, error) {
	item, found, err := l.catalog.LookupItem(ctx, id)
	if err != nil || !found {
		return domain.MenuItemSnapshot{}, found, err
	}
	return domain.MenuItemSnapshot{
		ID:        item.ID,
		Name:      item.Name,
		Price:     item.Price,
		Available: item.Available,
	}, true, nil
}

// StaffDirectory checks servers and tables through the staff module.
type StaffDirectory struct {
	directory staff.Directory
}

func NewStaffDirectory(directory staff.Directory) *StaffDirectory {
	return &StaffDirectory{directory: directory}
}

func (d *StaffDirectory) ServerExists(ctx context.Context, id int64) (bool, error) {
	return d.directory.ServerExists(ctx, id)
}

func (d *StaffDirectory) TableExists(ctx context.Context, id int64) (bool, error) {
	return d.directory.TableExists(ctx, id)
}

// Compile-time interface checks.
var (
	_ domain.MenuLookup     = (*MenuLookup)(nil)
	_ domain.StaffDirectory = (*StaffDirectory)(nil)
)
