package record

import (
	"errors"
	"time"
)

// Kind is the required discriminant of the record union: a physical cash
// movement or a USDT (stablecoin) movement.
type Kind string

const (
	KindCash Kind = "cash"
	KindUSDT Kind = "usdt"
)

// Valid reports whether k is a known record kind.
func (k Kind) Valid() bool {
	return k == KindCash || k == KindUSDT
}

// Type is the direction of the movement from the business's point of view.
type Type string

const (
	TypeCredit Type = "credit" // money received
	TypeDebit  Type = "debit"  // money paid out
)

// Status is the reconciliation state of a record.
//
// unmatched -> matched -> used, with cancelled as the alternate terminal.
type Status string

const (
	StatusUnmatched Status = "unmatched"
	StatusMatched   Status = "matched"
	StatusUsed      Status = "used"
	StatusCancelled Status = "cancelled"
)

// Record is an unattributed money movement awaiting reconciliation. It is
// created by ingestion, already posted against the suspense account, and
// mutated only by assignment, unassignment and cancellation.
type Record struct {
	ID              string
	Kind            Kind
	Type            Type
	Date            time.Time
	Amount          int64 // minor units of Currency
	Currency        string
	AmountUSD       int64 // cents
	Status          Status
	Flagged         bool // sender hit the blacklist at ingestion; needs manual review
	ClientID        *int64
	TransferEntryID *string // set exactly once on match, cleared only by unassign
	SuspenseBefore  *int64  // suspense balance snapshots around the transfer, USD cents
	SuspenseAfter   *int64
	SenderName      string
	RawMessage      string
	CreatedAt       time.Time
}

var (
	ErrNotFound       = errors.New("record not found")
	ErrInvalidKind    = errors.New("invalid record kind")
	ErrInvalidAmount  = errors.New("record amount must be positive")
	ErrAlreadyMatched = errors.New("record already matched")
	ErrNotAssigned    = errors.New("record has no transfer entry")
	ErrTerminal       = errors.New("record is in a terminal state")
)
