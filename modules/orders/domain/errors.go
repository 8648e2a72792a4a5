package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the orders module matches exactly one
// of these through errors.Is.
var (
	ErrValidation        = errors.New("validation failed")
	ErrReference         = errors.New("referenced entity does not exist")
	ErrOrderNotFound     = errors.New("order not found")
	ErrPersistence       = errors.New("persistence failure")
	ErrInvalidTransition = errors.New("invalid status transition")
)

var (
	ErrInvalidOrderID   = &ValidationError{Field: "id", Reason: "must be a UUID"}
	ErrServerRequired   = &ValidationError{Field: "server_id", Reason: "is required"}
	ErrTableRequired    = &ValidationError{Field: "table_id", Reason: "is required"}
	ErrOrderEmpty       = &ValidationError{Field: "items", Reason: "must contain at least one item"}
	ErrInvalidMenuItem  = &ValidationError{Field: "menu_item_id", Reason: "is required"}
	ErrInvalidQuantity  = &ValidationError{Field: "quantity", Reason: "must be a positive integer"}
	ErrQuantityTooLarge = &ValidationError{Field: "quantity", Reason: "makes the order total out of range"}
	ErrInvalidStatus    = &ValidationError{Field: "status", Reason: "is not a known status"}
	ErrNoFieldsToUpdate = &ValidationError{Field: "body", Reason: "contains no updatable fields"}
	ErrTotalMismatch    = &ValidationError{Field: "total", Reason: "must equal the sum of the line items"}
	ErrMixedCurrencies  = &ValidationError{Field: "items", Reason: "must share one currency"}

	ErrOrderNotEditable = &TransitionError{Reason: "items can only be replaced while the order is pending"}
	ErrStatusChanged    = &TransitionError{Reason: "status was changed by another request"}
)

// ValidationError reports a missing or invalid input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string { return e.Field + " " + e.Reason }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// ReferenceKind names the entity a ReferenceError points at.
type ReferenceKind string

const (
	RefMenuItem ReferenceKind = "menu_item"
	RefServer   ReferenceKind = "server"
	RefTable    ReferenceKind = "table"
)

// ReferenceError reports a menu item, server or table that does not exist.
type ReferenceError struct {
	Kind ReferenceKind
	ID   int64
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s %d does not exist", e.Kind, e.ID)
}

func (e *ReferenceError) Is(target error) bool { return target == ErrReference }

// TransitionError reports a status change the workflow does not allow.
type TransitionError struct {
	From   Status
	To     Status
	Reason string
}

func (e *TransitionError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return fmt.Sprintf("cannot move order from %s to %s", e.From, e.To)
}

func (e *TransitionError) Is(target error) bool { return target == ErrInvalidTransition }

// NewPersistenceError wraps a storage failure so it matches ErrPersistence
// while keeping the driver error in the chain.
func NewPersistenceError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrPersistence, err)
}

// AsPersistence classifies an error escaping a transaction scope. Errors that
// already carry a kind are returned unchanged; anything else (begin, commit,
// driver failures) becomes a persistence error.
func AsPersistence(err error) error {
	if err == nil || HasKind(err) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrPersistence, err)
}

// HasKind reports whether err matches one of the error kinds.
func HasKind(err error) bool {
	for _, kind := range []error{ErrValidation, ErrReference, ErrOrderNotFound, ErrPersistence, ErrInvalidTransition} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
