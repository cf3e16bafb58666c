package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lux2ube/Customer-service-sub002/internal/account"
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

// scanAccount reads an account row from the scanner.
// Expected column order: id, name, type, is_group, currency, parent_id, created_at
func scanAccount(s scanner) (*account.Account, error) {
	var acct account.Account

	var typeStr string

	var currency, parentID sql.NullString

	if err := s.Scan(&acct.ID, &acct.Name, &typeStr, &acct.IsGroup, &currency, &parentID, &acct.CreatedAt); err != nil {
		return nil, err
	}

	acct.Type = account.Type(typeStr)
	acct.Currency = currency.String
	acct.ParentID = parentID.String

	return &acct, nil
}

const selectAccountColumns = `id, name, type, is_group, currency, parent_id, created_at`

func (s *Store) CreateAccount(ctx context.Context, acct *account.Account) error {
	query := `
		INSERT INTO accounts (id, name, type, is_group, currency, parent_id, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), NOW())
		ON CONFLICT (id) DO NOTHING
		RETURNING created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		acct.ID,
		acct.Name,
		acct.Type,
		acct.IsGroup,
		acct.Currency,
		acct.ParentID,
	).Scan(&acct.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return account.ErrExists
		}

		return fmt.Errorf("creating account: %w", err)
	}

	return nil
}

func (s *Store) GetAccount(ctx context.Context, id string) (*account.Account, error) {
	query := `SELECT ` + selectAccountColumns + ` FROM accounts WHERE id = $1`

	acct, err := scanAccount(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, account.ErrNotFound
		}

		return nil, fmt.Errorf("getting account: %w", err)
	}

	return acct, nil
}

func (s *Store) ListAccounts(ctx context.Context, filter account.ListFilter) ([]*account.Account, error) {
	query := `SELECT ` + selectAccountColumns + ` FROM accounts`

	var conds []string

	var args []any

	argIdx := 1

	if filter.IsGroup != nil {
		conds = append(conds, fmt.Sprintf("is_group = $%d", argIdx))
		args = append(args, *filter.IsGroup)
		argIdx++
	}

	if filter.Type != nil {
		conds = append(conds, fmt.Sprintf("type = $%d", argIdx))
		args = append(args, *filter.Type)
		argIdx++
	}

	if filter.Currency != nil {
		conds = append(conds, fmt.Sprintf("currency = $%d", argIdx))
		args = append(args, *filter.Currency)
		argIdx++
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	query += " ORDER BY id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var accts []*account.Account

	for rows.Next() {
		acct, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}

		accts = append(accts, acct)
	}

	return accts, rows.Err()
}
