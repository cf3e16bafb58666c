package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lux2ube/Customer-service-sub002/internal/account"
	"github.com/lux2ube/Customer-service-sub002/internal/ids"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=ledger
type Repository interface {
	CreateEntry(ctx context.Context, entry *Entry) error
	GetEntry(ctx context.Context, id string) (*Entry, error)
	ListEntries(ctx context.Context, filter ListFilter) ([]*Entry, error)
	EntriesForAccount(ctx context.Context, accountID string, since *time.Time) ([]*Entry, error)
}

// AccountDirectory resolves accounts for posting validation and sign
// conventions. Satisfied by account.Service.
type AccountDirectory interface {
	Get(ctx context.Context, id string) (*account.Account, error)
}

type Service struct {
	repo     Repository
	accounts AccountDirectory
}

func NewService(repo Repository, accounts AccountDirectory) *Service {
	return &Service{repo: repo, accounts: accounts}
}

type PostParams struct {
	Date            time.Time
	Description     string
	DebitAccountID  string
	CreditAccountID string
	DebitAmount     int64
	CreditAmount    int64
	AmountUSD       int64
}

type ListFilter struct {
	AccountID *string
	StartDate *time.Time
	EndDate   *time.Time
}

// BalanceOptions restricts a balance scan. Since is the period boundary,
// passed explicitly by the caller; nil means full history.
type BalanceOptions struct {
	Since *time.Time
}

// Post writes one journal entry. Both legs land in a single insert, so there
// is no observable state with only one leg.
func (s *Service) Post(ctx context.Context, params PostParams) (*Entry, error) {
	if params.DebitAmount <= 0 || params.CreditAmount <= 0 || params.AmountUSD <= 0 {
		return nil, fmt.Errorf("%w: debit=%d credit=%d usd=%d",
			ErrInvalidAmount, params.DebitAmount, params.CreditAmount, params.AmountUSD)
	}

	if params.DebitAccountID == params.CreditAccountID {
		return nil, fmt.Errorf("%w: %s", ErrSameAccount, params.DebitAccountID)
	}

	for _, id := range []string{params.DebitAccountID, params.CreditAccountID} {
		acct, err := s.accounts.Get(ctx, id)
		if err != nil {
			if errors.Is(err, account.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrUnknownAccount, id)
			}

			// Store failures stay retryable; only a confirmed miss
			// is a validation error.
			return nil, fmt.Errorf("resolving account %s: %w", id, err)
		}

		if acct.IsGroup {
			return nil, fmt.Errorf("%w: %s", ErrGroupAccount, id)
		}
	}

	entry := &Entry{
		ID:              ids.New(),
		Date:            params.Date,
		Description:     params.Description,
		DebitAccountID:  params.DebitAccountID,
		CreditAccountID: params.CreditAccountID,
		DebitAmount:     params.DebitAmount,
		CreditAmount:    params.CreditAmount,
		AmountUSD:       params.AmountUSD,
	}
	if err := s.repo.CreateEntry(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Entry, error) {
	return s.repo.GetEntry(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Entry, error) {
	return s.repo.ListEntries(ctx, filter)
}

// Balance derives the account balance in USD cents from entry history. The
// sign convention is the account type's normal balance: credit-normal accounts
// (liabilities, suspense, client accounts) grow on credits and shrink on
// debits; debit-normal accounts the opposite. Balances are never stored.
func (s *Service) Balance(ctx context.Context, accountID string, opts BalanceOptions) (int64, error) {
	lines, err := s.Breakdown(ctx, accountID, opts)
	if err != nil {
		return 0, err
	}

	if len(lines) == 0 {
		return 0, nil
	}

	return lines[len(lines)-1].Running, nil
}

// Line is one row of an audit breakdown: the entry, which side hit the
// account, the signed USD delta and the running total after it.
type Line struct {
	Entry   *Entry
	Side    account.Side
	Delta   int64
	Running int64
}

// Breakdown returns the per-entry audit trail for an account, ordered by date
// with entry id breaking ties so repeated scans are deterministic.
func (s *Service) Breakdown(ctx context.Context, accountID string, opts BalanceOptions) ([]Line, error) {
	acct, err := s.accounts.Get(ctx, accountID)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownAccount, accountID)
		}

		return nil, fmt.Errorf("resolving account %s: %w", accountID, err)
	}

	entries, err := s.repo.EntriesForAccount(ctx, accountID, opts.Since)
	if err != nil {
		return nil, err
	}

	normal := acct.Type.NormalBalance()

	var (
		lines   []Line
		running int64
	)

	for _, entry := range entries {
		side := account.SideDebit
		if entry.CreditAccountID == accountID {
			side = account.SideCredit
		}

		delta := entry.AmountUSD
		if side != normal {
			delta = -delta
		}

		running += delta
		lines = append(lines, Line{Entry: entry, Side: side, Delta: delta, Running: running})
	}

	return lines, nil
}
