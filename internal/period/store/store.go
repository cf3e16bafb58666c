package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lux2ube/Customer-service-sub002/internal/period"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) PeriodStart(ctx context.Context) (*time.Time, error) {
	var start sql.NullTime

	err := s.db.QueryRowContext(ctx,
		`SELECT financial_period_start_date FROM settings WHERE id = 1`,
	).Scan(&start)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("reading period start: %w", err)
	}

	if !start.Valid {
		return nil, nil
	}

	return &start.Time, nil
}

// Close writes all snapshots and the new boundary in one transaction, so a
// half-closed period is never observable.
func (s *Store) Close(ctx context.Context, closedAt time.Time, snapshots []period.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning period close: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, snap := range snapshots {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO closed_balances (account_id, balance, closed_at)
			VALUES ($1, $2, $3)
		`, snap.AccountID, snap.Balance, closedAt); err != nil {
			return fmt.Errorf("inserting closed balance for %s: %w", snap.AccountID, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO settings (id, financial_period_start_date)
		VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET financial_period_start_date = EXCLUDED.financial_period_start_date
	`, closedAt); err != nil {
		return fmt.Errorf("advancing period boundary: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing period close: %w", err)
	}

	return nil
}

func (s *Store) LatestSnapshots(ctx context.Context) ([]period.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT account_id, balance, closed_at
		FROM closed_balances
		WHERE closed_at = (SELECT MAX(closed_at) FROM closed_balances)
		ORDER BY account_id
	`)
	if err != nil {
		return nil, fmt.Errorf("listing closed balances: %w", err)
	}
	defer rows.Close()

	var snapshots []period.Snapshot

	for rows.Next() {
		var snap period.Snapshot
		if err := rows.Scan(&snap.AccountID, &snap.Balance, &snap.ClosedAt); err != nil {
			return nil, fmt.Errorf("scanning closed balance: %w", err)
		}

		snapshots = append(snapshots, snap)
	}

	return snapshots, rows.Err()
}
