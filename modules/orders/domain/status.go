package domain

import "strings"

// Status is the kitchen-visible stage of an order.
//
// The workflow is a strict chain: pending -> preparing -> ready -> delivered.
// An order may also be cancelled while pending or preparing. delivered and
// cancelled are terminal.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

var successors = map[Status]Status{
	StatusPending:   StatusPreparing,
	StatusPreparing: StatusReady,
	StatusReady:     StatusDelivered,
}

// BoardStatuses are the buckets of the kitchen board, in display order.
var BoardStatuses = []Status{StatusPending, StatusPreparing, StatusReady}

// ParseStatus accepts a status name case-insensitively.
func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPreparing, StatusReady, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

// Next returns the immediate successor in the workflow.
func (s Status) Next() (Status, bool) {
	next, ok := successors[s]
	return next, ok
}

// CanTransitionTo reports whether to is the immediate successor of s.
// Skips, backward moves and repeats are rejected.
func (s Status) CanTransitionTo(to Status) bool {
	next, ok := s.Next()
	return ok && next == to
}

// CanCancel reports whether an order in status s may be cancelled.
func (s Status) CanCancel() bool {
	return s == StatusPending || s == StatusPreparing
}

// IsTerminal reports whether no further transitions are defined.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// IsWorkflow reports whether s is part of the linear chain (creation may
// start an order at any of these).
func (s Status) IsWorkflow() bool {
	return s != StatusCancelled && s.IsValid()
}
