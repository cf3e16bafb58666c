package ingest

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Failure is a raw message the parser could not turn into a record. Failures
// are kept for manual resolution; nothing is silently dropped.
type Failure struct {
	ID         uuid.UUID
	RawMessage string
	Reason     string
	Resolved   bool
	CreatedAt  time.Time
}

var (
	ErrUnknownCurrency = errors.New("no exchange rate for currency")
	ErrFailureNotFound = errors.New("parsing failure not found")
)

// Rates maps a currency code to how many units of it buy one US dollar.
// USD itself must be present with rate 1.
type Rates map[string]decimal.Decimal

// ToUSDCents converts an amount in minor units of currency to US cents.
// Minor units and cents carry the same 10^2 scale, so the rate applies
// directly.
func (r Rates) ToUSDCents(amount int64, currency string) (int64, error) {
	rate, ok := r[currency]
	if !ok || rate.IsZero() {
		return 0, fmt.Errorf("%w: %s", ErrUnknownCurrency, currency)
	}

	return decimal.NewFromInt(amount).Div(rate).Round(0).IntPart(), nil
}
