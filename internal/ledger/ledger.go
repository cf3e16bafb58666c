package ledger

import (
	"errors"
	"time"
)

// Entry is one double-entry journal record. Both legs describe the same
// economic event; native amounts may be in different currencies, AmountUSD is
// the canonical cross-currency value. Entries are immutable once written —
// corrections are new counter-entries.
type Entry struct {
	ID              string
	Date            time.Time
	Description     string
	DebitAccountID  string
	CreditAccountID string
	DebitAmount     int64 // minor units of the debit account currency
	CreditAmount    int64 // minor units of the credit account currency
	AmountUSD       int64 // cents
	CreatedAt       time.Time
}

var (
	ErrNotFound       = errors.New("entry not found")
	ErrInvalidAmount  = errors.New("amount must be positive")
	ErrSameAccount    = errors.New("debit and credit accounts must differ")
	ErrUnknownAccount = errors.New("unknown account")
	ErrGroupAccount   = errors.New("cannot post to a group account")
)
