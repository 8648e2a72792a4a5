// Package types provides shared value objects used across modules (Shared Kernel pattern).
package types

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// MinorUnitDigits is the number of decimal places in the smallest currency
// unit. Amounts are stored as int64 counts of that unit, so only currencies
// with a two-digit minor unit are accepted.
const MinorUnitDigits = 2

const minorUnitExp = MinorUnitDigits

// nonDecimalMinorUnits lists ISO 4217 codes whose minor unit is not 1/100.
var nonDecimalMinorUnits = map[string]int{
	"BIF": 0, "CLP": 0, "DJF": 0, "GNF": 0, "ISK": 0, "JPY": 0, "KMF": 0,
	"KRW": 0, "PYG": 0, "RWF": 0, "UGX": 0, "UYI": 0, "VND": 0, "VUV": 0,
	"XAF": 0, "XOF": 0, "XPF": 0,
	"BHD": 3, "IQD": 3, "JOD": 3, "KWD": 3, "LYD": 3, "OMR": 3, "TND": 3,
	"CLF": 4, "UYW": 4,
}

// ValidateCurrency normalises an ISO 4217 code and rejects currencies whose
// minor unit is not two decimal places.
func ValidateCurrency(currency string) (string, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		return "", fmt.Errorf("%w: currency is required", ErrInvalidMoney)
	}
	if len(currency) != 3 {
		return "", fmt.Errorf("%w: currency must be 3-letter ISO code", ErrInvalidMoney)
	}
	if digits, ok := nonDecimalMinorUnits[currency]; ok {
		return "", fmt.Errorf("%w: %s has %d minor unit digits, want %d", ErrUnsupportedCurrency, currency, digits, MinorUnitDigits)
	}
	return currency, nil
}

// Money represents a monetary value with currency.
// Immutable value object - all operations return new instances.
type Money struct {
	amount   int64  // Amount in smallest currency unit (cents)
	currency string // ISO 4217 currency code
}

func NewMoney(amount int64, currency string) (Money, error) {
	currency, err := ValidateCurrency(currency)
	if err != nil {
		return Money{}, err
	}
	return Money{amount: amount, currency: currency}, nil
}

func MustNewMoney(amount int64, currency string) Money {
	m, err := NewMoney(amount, currency)
	if err != nil {
		panic(err)
	}
	return m
}

// ParseMoney parses a decimal string such as "9.50" into Money.
// Amounts with more precision than the minor unit are rejected rather than rounded.
func ParseMoney(value, currency string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q is not a decimal number", ErrInvalidMoney, value)
	}
	return FromDecimal(d, currency)
}

// FromDecimal converts a decimal amount in major units into Money.
func FromDecimal(d decimal.Decimal, currency string) (Money, error) {
	minor := d.Shift(minorUnitExp)
	if !minor.Equal(minor.Truncate(0)) {
		return Money{}, fmt.Errorf("%w: %s has more than %d decimal places", ErrInvalidMoney, d.String(), minorUnitExp)
	}
	if !minor.BigInt().IsInt64() {
		return Money{}, fmt.Errorf("%w: %s is out of range", ErrInvalidMoney, d.String())
	}
	return NewMoney(minor.IntPart(), currency)
}

func (m Money) Amount() int64    { return m.amount }
func (m Money) Currency() string { return m.currency }
func (m Money) IsZero() bool     { return m.amount == 0 }
func (m Money) IsNegative() bool { return m.amount < 0 }

// Decimal returns the amount in major units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.amount, -minorUnitExp)
}

func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("%w: cannot add %s and %s", ErrCurrencyMismatch, m.currency, other.currency)
	}
	if (other.amount > 0 && m.amount > math.MaxInt64-other.amount) ||
		(other.amount < 0 && m.amount < math.MinInt64-other.amount) {
		return Money{}, fmt.Errorf("%w: %s + %s", ErrAmountOverflow, m, other)
	}
	return Money{amount: m.amount + other.amount, currency: m.currency}, nil
}

func (m Money) Subtract(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("%w: cannot subtract %s from %s", ErrCurrencyMismatch, other.currency, m.currency)
	}
	if (other.amount < 0 && m.amount > math.MaxInt64+other.amount) ||
		(other.amount > 0 && m.amount < math.MinInt64+other.amount) {
		return Money{}, fmt.Errorf("%w: %s - %s", ErrAmountOverflow, m, other)
	}
	return Money{amount: m.amount - other.amount, currency: m.currency}, nil
}

// Multiply scales the amount, failing with ErrAmountOverflow instead of
// wrapping around when the product does not fit in int64.
func (m Money) Multiply(factor int64) (Money, error) {
	if m.amount == 0 || factor == 0 {
		return Money{amount: 0, currency: m.currency}, nil
	}
	product := m.amount * factor
	if product/factor != m.amount || (m.amount == -1 && factor == math.MinInt64) || (factor == -1 && m.amount == math.MinInt64) {
		return Money{}, fmt.Errorf("%w: %s x %d", ErrAmountOverflow, m, factor)
	}
	return Money{amount: product, currency: m.currency}, nil
}

func (m Money) Equals(other Money) bool {
	return m.amount == other.amount && m.currency == other.currency
}

// String renders the amount in major units, e.g. "19.00 USD".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Decimal().StringFixed(minorUnitExp), m.currency)
}
