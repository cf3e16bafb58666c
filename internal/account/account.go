package account

import (
	"errors"
	"strconv"
	"time"
)

// Type classifies an account within the chart of accounts.
type Type string

const (
	TypeAssets      Type = "assets"
	TypeLiabilities Type = "liabilities"
	TypeEquity      Type = "equity"
	TypeIncome      Type = "income"
	TypeExpenses    Type = "expenses"
)

// Valid reports whether t is one of the five known account types.
func (t Type) Valid() bool {
	switch t {
	case TypeAssets, TypeLiabilities, TypeEquity, TypeIncome, TypeExpenses:
		return true
	}

	return false
}

// Side is one leg of a double-entry posting.
type Side string

const (
	SideDebit  Side = "debit"
	SideCredit Side = "credit"
)

// NormalBalance returns the side on which the account type increases.
// Assets and expenses are debit-normal; liabilities, equity and income are
// credit-normal. Balance computation applies this uniformly per type, so
// suspense and client liability accounts always grow on the credit side.
func (t Type) NormalBalance() Side {
	switch t {
	case TypeAssets, TypeExpenses:
		return SideDebit
	default:
		return SideCredit
	}
}

// Account is one node of the chart of accounts. Group accounts structure the
// chart and never receive postings; only leaves carry entries.
type Account struct {
	ID        string
	Name      string
	Type      Type
	IsGroup   bool
	Currency  string // empty for groups and currency-agnostic leaves
	ParentID  string // empty for root groups
	CreatedAt time.Time
}

var (
	ErrNotFound       = errors.New("account not found")
	ErrExists         = errors.New("account already exists")
	ErrInvalid        = errors.New("invalid account")
	ErrInvalidType    = errors.New("invalid account type")
	ErrParentNotGroup = errors.New("parent is not a group account")
	ErrGroupTarget    = errors.New("group account cannot receive postings")
)

// ClientAccountID derives the liability account id for a client. The
// "6000<clientID>" naming convention is confined to this function; everything
// else goes through the registry lookup.
func ClientAccountID(clientID int64) string {
	return CodeClientsGroup + strconv.FormatInt(clientID, 10)
}
