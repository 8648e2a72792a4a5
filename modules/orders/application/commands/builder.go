// Package commands contains write use cases for the orders module.
package commands

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/edinson0810/pruebaCasa/modules/orders/domain"
)

// DefaultLookupConcurrency bounds parallel menu lookups while pricing an order.
const DefaultLookupConcurrency = 4

// ItemRequest is one requested line before pricing.
type ItemRequest struct {
	MenuItemID int64
	Quantity   int
}

// BuildRequest is the validated input for assembling a new order.
type BuildRequest struct {
	ServerID int64
	TableID  int64
	// Status is optional and defaults to pending.
	Status string
	Items  []ItemRequest
}

// OrderBuilder turns a request into a priced order. It reads the menu and
// the staff directory but never writes.
type OrderBuilder struct {
	menu        domain.MenuLookup
	directory   domain.StaffDirectory
	concurrency int
}

func NewOrderBuilder(menu domain.MenuLookup, directory domain.StaffDirectory) *OrderBuilder {
	return &OrderBuilder{
		menu:        menu,
		directory:   directory,
		concurrency: DefaultLookupConcurrency,
	}
}

// Build validates req, checks every reference and snapshots current menu
// prices into the line items.
func (b *OrderBuilder) Build(ctx context.Context, req BuildRequest) (*domain.Order, error) {
	if req.ServerID <= 0 {
		return nil, domain.ErrServerRequired
	}
	if req.TableID <= 0 {
		return nil, domain.ErrTableRequired
	}

	var status domain.Status
	if req.Status != "" {
		parsed, err := domain.ParseStatus(req.Status)
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	if err := validateItems(req.Items); err != nil {
		return nil, err
	}
	if err := b.CheckServer(ctx, req.ServerID); err != nil {
		return nil, err
	}
	if err := b.CheckTable(ctx, req.TableID); err != nil {
		return nil, err
	}

	lines, err := b.PriceItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	return domain.NewOrder(req.ServerID, req.TableID, status, lines)
}

// PriceItems resolves the current menu price of every item. Lookups run
// concurrently; the result keeps the request order.
func (b *OrderBuilder) PriceItems(ctx context.Context, items []ItemRequest) ([]domain.LineItem, error) {
	if err := validateItems(items); err != nil {
		return nil, err
	}

	lines := make([]domain.LineItem, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i, item := range items {
		g.Go(func() error {
			snapshot, found, err := b.menu.LookupMenuItem(gctx, item.MenuItemID)
			if err != nil {
				return domain.NewPersistenceError(fmt.Sprintf("looking up menu item %d", item.MenuItemID), err)
			}
			if !found || !snapshot.Available {
				return &domain.ReferenceError{Kind: domain.RefMenuItem, ID: item.MenuItemID}
			}

			line, err := domain.NewLineItem(item.MenuItemID, item.Quantity, snapshot.Price)
			if err != nil {
				return err
			}
			lines[i] = line
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return lines, nil
}

// CheckServer fails with a ReferenceError when the server does not exist.
func (b *OrderBuilder) CheckServer(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrServerRequired
	}
	ok, err := b.directory.ServerExists(ctx, id)
	if err != nil {
		return domain.NewPersistenceError("checking server", err)
	}
	if !ok {
		return &domain.ReferenceError{Kind: domain.RefServer, ID: id}
	}
	return nil
}

// CheckTable fails with a ReferenceError when the table does not exist.
func (b *OrderBuilder) CheckTable(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrTableRequired
	}
	ok, err := b.directory.TableExists(ctx, id)
	if err != nil {
		return domain.NewPersistenceError("checking table", err)
	}
	if !ok {
		return &domain.ReferenceError{Kind: domain.RefTable, ID: id}
	}
	return nil
}

func validateItems(items []ItemRequest) error {
	if len(items) == 0 {
		return domain.ErrOrderEmpty
	}
	for _, item := range items {
		if item.MenuItemID <= 0 {
			return domain.ErrInvalidMenuItem
		}
		if item.Quantity <= 0 {
			return domain.ErrInvalidQuantity
		}
	}
	return nil
}
