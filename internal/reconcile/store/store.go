package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lux2ube/Customer-service-sub002/internal/reconcile"
	"github.com/lux2ube/Customer-service-sub002/internal/record"
)

// Store runs the reconciliation writes. Each operation is one serializable
// SQL transaction: the journal entry insert and the guarded record update
// land together or not at all. Handlers in other processes race on the same
// record only through these conditional updates, never through process
// memory.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const insertEntryQuery = `
	INSERT INTO journal_entries
		(id, date, description, debit_account_id, credit_account_id, debit_amount, credit_amount, amount_usd, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
`

func (s *Store) Assign(ctx context.Context, update reconcile.AssignUpdate) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("beginning assign: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	entry := update.Entry
	if _, err := tx.ExecContext(ctx, insertEntryQuery,
		entry.ID, entry.Date, entry.Description,
		entry.DebitAccountID, entry.CreditAccountID,
		entry.DebitAmount, entry.CreditAmount, entry.AmountUSD,
	); err != nil {
		return fmt.Errorf("inserting transfer entry: %w", err)
	}

	// The idempotency guard: only an unclaimed record row matches. A
	// concurrent assign that committed first leaves zero rows here and the
	// whole transaction, entry included, rolls back.
	res, err := tx.ExecContext(ctx, `
		UPDATE records
		SET client_id = $2, status = $3, transfer_entry_id = $4,
			suspense_before = $5, suspense_after = $6
		WHERE id = $1 AND client_id IS NULL AND transfer_entry_id IS NULL AND status = $7
	`, update.RecordID, update.ClientID, record.StatusMatched, entry.ID,
		update.SuspenseBefore, update.SuspenseAfter, record.StatusUnmatched)
	if err != nil {
		return fmt.Errorf("claiming record: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("claiming record: %w", err)
	}

	if n == 0 {
		return fmt.Errorf("%w: %s", record.ErrAlreadyMatched, update.RecordID)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing assign: %w", err)
	}

	return nil
}

func (s *Store) Unassign(ctx context.Context, update reconcile.UnassignUpdate) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("beginning unassign: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	entry := update.Entry
	if _, err := tx.ExecContext(ctx, insertEntryQuery,
		entry.ID, entry.Date, entry.Description,
		entry.DebitAccountID, entry.CreditAccountID,
		entry.DebitAmount, entry.CreditAmount, entry.AmountUSD,
	); err != nil {
		return fmt.Errorf("inserting reversing entry: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE records
		SET client_id = NULL, status = $2, transfer_entry_id = NULL,
			suspense_before = NULL, suspense_after = NULL
		WHERE id = $1 AND transfer_entry_id IS NOT NULL AND status = $3
	`, update.RecordID, record.StatusUnmatched, record.StatusMatched)
	if err != nil {
		return fmt.Errorf("resetting record: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("resetting record: %w", err)
	}

	if n == 0 {
		return fmt.Errorf("%w: %s", record.ErrNotAssigned, update.RecordID)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing unassign: %w", err)
	}

	return nil
}

var _ reconcile.Repository = (*Store)(nil)
