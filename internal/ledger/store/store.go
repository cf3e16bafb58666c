package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lux2ube/Customer-service-sub002/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, date, description, debit_account_id,
// credit_account_id, debit_amount, credit_amount, amount_usd, created_at
func scanEntry(s scanner) (*ledger.Entry, error) {
	var entry ledger.Entry

	if err := s.Scan(
		&entry.ID, &entry.Date, &entry.Description,
		&entry.DebitAccountID, &entry.CreditAccountID,
		&entry.DebitAmount, &entry.CreditAmount, &entry.AmountUSD,
		&entry.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &entry, nil
}

const selectEntryColumns = `
	id, date, description, debit_account_id, credit_account_id,
	debit_amount, credit_amount, amount_usd, created_at
`

func (s *Store) CreateEntry(ctx context.Context, entry *ledger.Entry) error {
	query := `
		INSERT INTO journal_entries
			(id, date, description, debit_account_id, credit_account_id, debit_amount, credit_amount, amount_usd, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		entry.ID,
		entry.Date,
		entry.Description,
		entry.DebitAccountID,
		entry.CreditAccountID,
		entry.DebitAmount,
		entry.CreditAmount,
		entry.AmountUSD,
	).Scan(&entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating journal entry: %w", err)
	}

	return nil
}

func (s *Store) GetEntry(ctx context.Context, id string) (*ledger.Entry, error) {
	query := `SELECT ` + selectEntryColumns + ` FROM journal_entries WHERE id = $1`

	entry, err := scanEntry(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ledger.ErrNotFound
		}

		return nil, fmt.Errorf("getting journal entry: %w", err)
	}

	return entry, nil
}

func (s *Store) ListEntries(ctx context.Context, filter ledger.ListFilter) ([]*ledger.Entry, error) {
	query := `SELECT ` + selectEntryColumns + ` FROM journal_entries`

	var conds []string

	var args []any

	argIdx := 1

	if filter.AccountID != nil {
		conds = append(conds, fmt.Sprintf("(debit_account_id = $%d OR credit_account_id = $%d)", argIdx, argIdx))
		args = append(args, *filter.AccountID)
		argIdx++
	}

	if filter.StartDate != nil {
		conds = append(conds, fmt.Sprintf("date >= $%d", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		conds = append(conds, fmt.Sprintf("date <= $%d", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	query += " ORDER BY date, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing journal entries: %w", err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

func (s *Store) EntriesForAccount(ctx context.Context, accountID string, since *time.Time) ([]*ledger.Entry, error) {
	query := `SELECT ` + selectEntryColumns + `
		FROM journal_entries
		WHERE (debit_account_id = $1 OR credit_account_id = $1)`

	args := []any{accountID}

	if since != nil {
		query += " AND date >= $2"
		args = append(args, *since)
	}

	query += " ORDER BY date, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("scanning account entries: %w", err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

func collectEntries(rows *sql.Rows) ([]*ledger.Entry, error) {
	var entries []*ledger.Entry

	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning journal entry: %w", err)
		}

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
