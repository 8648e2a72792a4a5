package domain

import (
	"context"
	"time"

	"github.com/edinson0810/pruebaCasa/modules/shared/types"
)

// OrderFields is the subset of header columns a partial update may touch.
// Nil fields are left unchanged.
type OrderFields struct {
	ServerID *int64
	TableID  *int64
	Status   *Status
	Total    *types.Money
}

func (f OrderFields) IsEmpty() bool {
	return f.ServerID == nil && f.TableID == nil && f.Status == nil && f.Total == nil
}

// HistoryEntry is one row of the status audit log.
type HistoryEntry struct {
	OrderID   OrderID
	OldStatus Status
	NewStatus Status
	ChangedAt time.Time
}

// OrderRepository defines persistence operations for orders.
// Implementations join the transaction carried by ctx when there is one.
type OrderRepository interface {
	// Create stores the header and every line item atomically.
	Create(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id OrderID) (*Order, error)
	// UpdateFields fails with ErrNoFieldsToUpdate when fields is empty and
	// with ErrOrderNotFound when no row matches.
	UpdateFields(ctx context.Context, id OrderID, fields OrderFields) error
	// ReplaceItems rewrites the item set and the stored total together.
	ReplaceItems(ctx context.Context, id OrderID, items []LineItem, total types.Money) error
	// TransitionStatus moves the order only if its stored status still equals
	// from. A mismatch yields ErrStatusChanged.
	TransitionStatus(ctx context.Context, id OrderID, from, to Status) error
	// Delete removes the order; line items and history go with it.
	Delete(ctx context.Context, id OrderID) error
	AppendHistory(ctx context.Context, entry HistoryEntry) error
}
