package domain

import (
	"github.com/google/uuid"
)

// OrderID is the public identifier of an order, a UUID in canonical form.
type OrderID struct {
	value string
}

// NewOrderID returns a time-ordered UUIDv7, which keeps the orders primary
// key roughly in creation order.
func NewOrderID() OrderID {
	id, err := uuid.NewV7()
	if err != nil {
		return OrderID{value: uuid.NewString()}
	}
	return OrderID{value: id.String()}
}

// ParseOrderID validates s and normalises it to the canonical lowercase form.
func ParseOrderID(s string) (OrderID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return OrderID{}, ErrInvalidOrderID
	}
	return OrderID{value: id.String()}, nil
}

func (id OrderID) String() string { return id.value }
func (id OrderID) IsZero() bool   { return id.value == "" }
