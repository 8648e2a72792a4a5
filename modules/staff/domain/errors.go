package domain

import "errors"

// Domain errors - business rule violations.
var (
	// Staff errors
	ErrStaffNotFound  = errors.New("staff member not found")
	ErrStaffDeleted   = errors.New("staff member has been deleted")
	ErrInvalidStaffID = errors.New("invalid staff ID")

	// Email errors
	ErrEmailRequired = errors.New("email is required")
	ErrEmailInvalid  = errors.New("email format is invalid")
	ErrEmailExists   = errors.New("email already exists")

	// Name errors
	ErrNameRequired = errors.New("name is required")
	ErrNameLength   = errors.New("name must be 2-100 characters")

	ErrInvalidRole = errors.New("role must be one of waiter, chef, cashier, manager")

	// Table errors
	ErrTableNotFound   = errors.New("table not found")
	ErrInvalidTableID  = errors.New("invalid table ID")
	ErrTableNumber     = errors.New("table number must be positive")
	ErrTableSeats      = errors.New("table seats must be between 1 and 50")
	ErrTableNumberUsed = errors.New("table number already exists")
)
