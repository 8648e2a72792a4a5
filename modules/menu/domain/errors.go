package domain

import "errors"

var (
	ErrMenuItemNotFound  = errors.New("menu item not found")
	ErrInvalidMenuItemID = errors.New("invalid menu item ID")

	ErrNameRequired  = errors.New("name is required")
	ErrNameLength    = errors.New("name must be at most 200 characters")
	ErrPriceRequired = errors.New("price is required")
	ErrNegativePrice = errors.New("price must not be negative")
	ErrInvalidPrice  = errors.New("price is not a valid amount")
)

// IsValidationError reports whether err is a rejected input rather than a storage failure.
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrInvalidMenuItemID, ErrNameRequired, ErrNameLength,
		ErrPriceRequired, ErrNegativePrice, ErrInvalidPrice,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
