package domain

import "context"

// ListFilter narrows FindAll. Zero value lists the whole menu.
type ListFilter struct {
	Category      string
	AvailableOnly bool
}

// MenuRepository is the persistence port for menu items.
type MenuRepository interface {
	// Create stores a new item and assigns its generated id.
	Create(ctx context.Context, item *MenuItem) error

	// Update overwrites an existing item. Returns ErrMenuItemNotFound if it doesn't exist.
	Update(ctx context.Context, item *MenuItem) error

	// FindByID returns ErrMenuItemNotFound if the item doesn't exist.
	FindByID(ctx context.Context, id int64) (*MenuItem, error)

	// FindAll lists items ordered by category then name.
	FindAll(ctx context.Context, filter ListFilter) ([]*MenuItem, error)
}
