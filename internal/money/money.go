// Package money provides currency-aware value objects so prices from
// different marketplaces cannot be mixed without an explicit conversion.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrNegativeAmount   = errors.New("money: amount cannot be negative")
	ErrCurrencyMismatch = errors.New("money: currency mismatch")
	ErrInvalidRate      = errors.New("money: exchange rate must be positive")
	ErrUnknownCurrency  = errors.New("money: unknown currency code")
)

// Currency is an ISO 4217 code.
type Currency string

const (
	USD Currency = "USD"
	JPY Currency = "JPY"
	EUR Currency = "EUR"
)

// ParseCurrency validates a currency code string.
func ParseCurrency(s string) (Currency, error) {
	switch Currency(strings.ToUpper(strings.TrimSpace(s))) {
	case USD:
		return USD, nil
	case JPY:
		return JPY, nil
	case EUR:
		return EUR, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCurrency, s)
	}
}

// Amount is a non-negative quantity of a single currency.
type Amount struct {
	value    decimal.Decimal
	currency Currency
}

// NewAmount creates an Amount, rejecting negative values.
func NewAmount(value decimal.Decimal, currency Currency) (Amount, error) {
	if value.IsNegative() {
		return Amount{}, fmt.Errorf("%w: %s", ErrNegativeAmount, value)
	}
	return Amount{value: value, currency: currency}, nil
}

// MustAmount is NewAmount that panics; for constants and tests.
func MustAmount(value decimal.Decimal, currency Currency) Amount {
	a, err := NewAmount(value, currency)
	if err != nil {
		panic(err)
	}
	return a
}

// Zero returns the zero amount of a currency.
func Zero(currency Currency) Amount {
	return Amount{value: decimal.Zero, currency: currency}
}

func (a Amount) Value() decimal.Decimal { return a.value }
func (a Amount) Currency() Currency     { return a.currency }
func (a Amount) IsZero() bool           { return a.value.IsZero() }

// Add returns a+b, failing on a currency mismatch.
func (a Amount) Add(b Amount) (Amount, error) {
	if a.currency != b.currency {
		return Amount{}, fmt.Errorf("%w: %s + %s", ErrCurrencyMismatch, a.currency, b.currency)
	}
	return Amount{value: a.value.Add(b.value), currency: a.currency}, nil
}

// Sub returns a-b. The result may not go negative.
func (a Amount) Sub(b Amount) (Amount, error) {
	if a.currency != b.currency {
		return Amount{}, fmt.Errorf("%w: %s - %s", ErrCurrencyMismatch, a.currency, b.currency)
	}
	out := a.value.Sub(b.value)
	if out.IsNegative() {
		return Amount{}, fmt.Errorf("%w: %s - %s", ErrNegativeAmount, a.value, b.value)
	}
	return Amount{value: out, currency: a.currency}, nil
}

// Mul scales the amount by a non-negative factor.
func (a Amount) Mul(factor decimal.Decimal) (Amount, error) {
	if factor.IsNegative() {
		return Amount{}, fmt.Errorf("%w: factor %s", ErrNegativeAmount, factor)
	}
	return Amount{value: a.value.Mul(factor), currency: a.currency}, nil
}

func (a Amount) String() string {
	if a.currency == JPY {
		return fmt.Sprintf("¥%s", a.value.StringFixed(0))
	}
	return fmt.Sprintf("%s %s", a.currency, a.value.StringFixed(2))
}

// ExchangeRate converts amounts from one currency to another.
type ExchangeRate struct {
	from Currency
	to   Currency
	rate decimal.Decimal
}

// NewExchangeRate creates a rate; it must be strictly positive.
func NewExchangeRate(from, to Currency, rate decimal.Decimal) (ExchangeRate, error) {
	if !rate.IsPositive() {
		return ExchangeRate{}, fmt.Errorf("%w: %s", ErrInvalidRate, rate)
	}
	return ExchangeRate{from: from, to: to, rate: rate}, nil
}

func (r ExchangeRate) From() Currency        { return r.from }
func (r ExchangeRate) To() Currency          { return r.to }
func (r ExchangeRate) Rate() decimal.Decimal { return r.rate }

// Convert applies the rate to an amount in the source currency.
func (r ExchangeRate) Convert(a Amount) (Amount, error) {
	if a.currency != r.from {
		return Amount{}, fmt.Errorf("%w: rate is %s->%s, amount is %s", ErrCurrencyMismatch, r.from, r.to, a.currency)
	}
	return Amount{value: a.value.Mul(r.rate), currency: r.to}, nil
}
