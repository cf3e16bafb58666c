package period

import (
	"context"
	"fmt"
	"time"

	"github.com/lux2ube/Customer-service-sub002/internal/account"
	"github.com/lux2ube/Customer-service-sub002/internal/ledger"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=period
type Repository interface {
	// PeriodStart returns the current financial period boundary, nil if no
	// period has ever been closed.
	PeriodStart(ctx context.Context) (*time.Time, error)

	// Close persists the closing snapshots and advances the boundary in one
	// store transaction.
	Close(ctx context.Context, closedAt time.Time, snapshots []Snapshot) error

	// LatestSnapshots returns the snapshots of the most recent close.
	LatestSnapshots(ctx context.Context) ([]Snapshot, error)
}

type Accounts interface {
	List(ctx context.Context, filter account.ListFilter) ([]*account.Account, error)
}

type Ledger interface {
	Balance(ctx context.Context, accountID string, opts ledger.BalanceOptions) (int64, error)
}

// Snapshot is a leaf account's balance frozen at a period close. History is
// never deleted; snapshots exist so closed periods remain auditable without
// rescanning from genesis.
type Snapshot struct {
	AccountID string
	Balance   int64 // USD cents
	ClosedAt  time.Time
}

type Service struct {
	repo     Repository
	accounts Accounts
	ledger   Ledger
}

func NewService(repo Repository, accounts Accounts, ledger Ledger) *Service {
	return &Service{repo: repo, accounts: accounts, ledger: ledger}
}

// Boundary returns the default period boundary callers pass into balance
// queries. Nil means full history.
func (s *Service) Boundary(ctx context.Context) (*time.Time, error) {
	return s.repo.PeriodStart(ctx)
}

type CloseResult struct {
	ClosedAt  time.Time
	Snapshots []Snapshot
}

// Close snapshots every leaf account's current-period balance and advances
// the boundary to now. Not reversible; a later Close simply advances the
// boundary again. Entries dated before the boundary stay queryable by passing
// an explicit nil boundary.
func (s *Service) Close(ctx context.Context) (*CloseResult, error) {
	boundary, err := s.repo.PeriodStart(ctx)
	if err != nil {
		return nil, err
	}

	isGroup := false

	leaves, err := s.accounts.List(ctx, account.ListFilter{IsGroup: &isGroup})
	if err != nil {
		return nil, fmt.Errorf("listing leaf accounts: %w", err)
	}

	closedAt := time.Now().UTC()

	snapshots := make([]Snapshot, 0, len(leaves))

	for _, leaf := range leaves {
		bal, err := s.ledger.Balance(ctx, leaf.ID, ledger.BalanceOptions{Since: boundary})
		if err != nil {
			return nil, fmt.Errorf("computing closing balance for %s: %w", leaf.ID, err)
		}

		snapshots = append(snapshots, Snapshot{AccountID: leaf.ID, Balance: bal, ClosedAt: closedAt})
	}

	if err := s.repo.Close(ctx, closedAt, snapshots); err != nil {
		return nil, err
	}

	return &CloseResult{ClosedAt: closedAt, Snapshots: snapshots}, nil
}

// ClosedBalances returns the snapshots taken at the most recent close.
func (s *Service) ClosedBalances(ctx context.Context) ([]Snapshot, error) {
	return s.repo.LatestSnapshots(ctx)
}
