package kernel

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"storefront/internal/pkg/errs"
)

// DefaultCurrency is the store currency used when none is configured.
const DefaultCurrency = "EUR"

var ErrCurrencyMismatch = errors.New("currency mismatch")

// Money is an amount in minor units (cents) of an ISO 4217 currency.
type Money struct {
	cents    int64
	currency string
}

func NewMoney(cents int64, currency string) (Money, error) {
	if cents < 0 {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", cents, 0, "unbounded")
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if len(currency) != 3 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("currency", fmt.Errorf("%q is not an ISO 4217 code", currency))
	}
	return Money{cents: cents, currency: currency}, nil
}

// MustMoney panics on invalid input; for constants and values read back from storage.
func MustMoney(cents int64, currency string) Money {
	m, err := NewMoney(cents, currency)
	if err != nil {
		panic(err)
	}
	return m
}

// ParseMoney reads a decimal amount such as "12.5" or "12.50". More than two
// fractional digits are rejected.
func ParseMoney(amount, currency string) (Money, error) {
	amount = strings.TrimSpace(amount)
	whole, frac, hasFrac := strings.Cut(amount, ".")
	if whole == "" || (hasFrac && (frac == "" || len(frac) > 2)) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%q is not a decimal amount", amount))
	}
	for len(frac) < 2 {
		frac += "0"
	}
	cents, err := strconv.ParseInt(whole+frac, 10, 64)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(cents, currency)
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Currency() string {
	return m.currency
}

func (m Money) IsZero() bool {
	return m.cents == 0
}

func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.currency, other.currency)
	}
	return Money{cents: m.cents + other.cents, currency: m.currency}, nil
}

func (m Money) Multiply(quantity int) Money {
	return Money{cents: m.cents * int64(quantity), currency: m.currency}
}

func (m Money) GreaterThan(other Money) bool {
	return m.currency == other.currency && m.cents > other.cents
}

func (m Money) IsEqual(other Money) bool {
	return m.currency == other.currency && m.cents == other.cents
}

// Float64 is for third-party payloads that expect a JSON number.
func (m Money) Float64() float64 {
	return float64(m.cents) / 100
}

// String renders the amount with two fractional digits, e.g. "12.50".
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}
