// Package domain contains business entities and rules for orders.
package domain

import (
	"errors"
	"time"

	shareddomain "github.com/edinson0810/pruebaCasa/modules/shared/domain"
	"github.com/edinson0810/pruebaCasa/modules/shared/events/contracts"
	"github.com/edinson0810/pruebaCasa/modules/shared/types"
)

// LineItem is one product quantity within an order. UnitPrice is the menu
// price at the moment the order was built and never follows later menu edits.
type LineItem struct {
	MenuItemID int64
	Quantity   int
	UnitPrice  types.Money
}

// NewLineItem validates a single priced line.
func NewLineItem(menuItemID int64, quantity int, unitPrice types.Money) (LineItem, error) {
	if menuItemID <= 0 {
		return LineItem{}, ErrInvalidMenuItem
	}
	if quantity <= 0 {
		return LineItem{}, ErrInvalidQuantity
	}
	if unitPrice.IsNegative() {
		return LineItem{}, &ValidationError{Field: "unit_price", Reason: "must not be negative"}
	}
	item := LineItem{MenuItemID: menuItemID, Quantity: quantity, UnitPrice: unitPrice}
	if _, err := item.Subtotal(); err != nil {
		return LineItem{}, err
	}
	return item, nil
}

// Subtotal is UnitPrice × Quantity. A product that does not fit the amount
// range is a ValidationError on quantity.
func (i LineItem) Subtotal() (types.Money, error) {
	subtotal, err := i.UnitPrice.Multiply(int64(i.Quantity))
	if err != nil {
		return types.Money{}, ErrQuantityTooLarge
	}
	return subtotal, nil
}

// Order is the aggregate root for the order bounded context.
type Order struct {
	shareddomain.AggregateRoot

	id        OrderID
	serverID  int64
	tableID   int64
	status    Status
	items     []LineItem
	total     types.Money
	createdAt time.Time
	updatedAt time.Time
}

// NewOrder assembles a priced order. The status defaults to pending and the
// total is always derived from the items.
func NewOrder(serverID, tableID int64, status Status, items []LineItem) (*Order, error) {
	if serverID <= 0 {
		return nil, ErrServerRequired
	}
	if tableID <= 0 {
		return nil, ErrTableRequired
	}
	if status == "" {
		status = StatusPending
	}
	if !status.IsWorkflow() {
		return nil, ErrInvalidStatus
	}
	total, err := sumItems(items)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	o := &Order{
		id:        NewOrderID(),
		serverID:  serverID,
		tableID:   tableID,
		status:    status,
		items:     append([]LineItem(nil), items...),
		total:     total,
		createdAt: now,
		updatedAt: now,
	}
	o.AddDomainEvent(NewOrderPlacedEvent(o))
	return o, nil
}

// Reconstitute rebuilds an order from persistence.
func Reconstitute(
	id OrderID,
	serverID, tableID int64,
	status Status,
	items []LineItem,
	total types.Money,
	createdAt, updatedAt time.Time,
) *Order {
	return &Order{
		id:        id,
		serverID:  serverID,
		tableID:   tableID,
		status:    status,
		items:     items,
		total:     total,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (o *Order) ID() OrderID          { return o.id }
func (o *Order) ServerID() int64      { return o.serverID }
func (o *Order) TableID() int64       { return o.tableID }
func (o *Order) Status() Status       { return o.status }
func (o *Order) Total() types.Money   { return o.total }
func (o *Order) CreatedAt() time.Time { return o.createdAt }
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

func (o *Order) Items() []LineItem {
	return append([]LineItem(nil), o.items...)
}

// TransitionTo advances the order one step along the workflow.
func (o *Order) TransitionTo(next Status) error {
	if !next.IsValid() {
		return ErrInvalidStatus
	}
	if !o.status.CanTransitionTo(next) {
		return &TransitionError{From: o.status, To: next}
	}
	old := o.status
	o.status = next
	o.touch()
	o.AddDomainEvent(NewOrderStatusChangedEvent(o, old))
	return nil
}

// Cancel takes a pending or preparing order out of the workflow.
func (o *Order) Cancel() error {
	if !o.status.CanCancel() {
		return &TransitionError{From: o.status, To: StatusCancelled}
	}
	old := o.status
	o.status = StatusCancelled
	o.touch()
	o.AddDomainEvent(NewOrderCancelledEvent(o, old))
	return nil
}

// ReplaceItems swaps the whole item set and recomputes the total.
// Items are fixed once the kitchen has started on the order.
func (o *Order) ReplaceItems(items []LineItem) error {
	if o.status != StatusPending {
		return ErrOrderNotEditable
	}
	total, err := sumItems(items)
	if err != nil {
		return err
	}
	o.items = append([]LineItem(nil), items...)
	o.total = total
	o.touch()
	o.markUpdated()
	return nil
}

func (o *Order) AssignServer(serverID int64) error {
	if serverID <= 0 {
		return ErrServerRequired
	}
	if serverID == o.serverID {
		return nil
	}
	o.serverID = serverID
	o.touch()
	o.markUpdated()
	return nil
}

func (o *Order) MoveToTable(tableID int64) error {
	if tableID <= 0 {
		return ErrTableRequired
	}
	if tableID == o.tableID {
		return nil
	}
	o.tableID = tableID
	o.touch()
	o.markUpdated()
	return nil
}

// VerifyTotal checks a client-supplied total against the derived one.
func (o *Order) VerifyTotal(total types.Money) error {
	if !total.Equals(o.total) {
		return ErrTotalMismatch
	}
	return nil
}

func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
}

// markUpdated records at most one OrderUpdated event per unit of work.
func (o *Order) markUpdated() {
	for _, e := range o.DomainEvents() {
		if e.EventType() == contracts.OrderUpdatedEventType {
			return
		}
	}
	o.AddDomainEvent(NewOrderUpdatedEvent(o))
}

func sumItems(items []LineItem) (types.Money, error) {
	if len(items) == 0 {
		return types.Money{}, ErrOrderEmpty
	}
	var total types.Money
	for i, item := range items {
		if item.Quantity <= 0 {
			return types.Money{}, ErrInvalidQuantity
		}
		subtotal, err := item.Subtotal()
		if err != nil {
			return types.Money{}, err
		}
		if i == 0 {
			total = subtotal
			continue
		}
		sum, err := total.Add(subtotal)
		if errors.Is(err, types.ErrAmountOverflow) {
			return types.Money{}, ErrQuantityTooLarge
		}
		if err != nil {
			return types.Money{}, ErrMixedCurrencies
		}
		total = sum
	}
	return total, nil
}
