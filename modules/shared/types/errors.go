package types

import "errors"

// Sentinel errors for shared value objects.
var (
	ErrInvalidMoney        = errors.New("invalid monetary amount")
	ErrCurrencyMismatch    = errors.New("currency mismatch")
	ErrAmountOverflow      = errors.New("monetary amount out of range")
	ErrUnsupportedCurrency = errors.New("unsupported currency")
)
