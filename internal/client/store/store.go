package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/lux2ube/Customer-service-sub002/internal/client"
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

// Expected column order: id, name, phone, account_id, created_at
func scanClient(s scanner) (*client.Client, error) {
	var c client.Client

	var phone, accountID sql.NullString

	if err := s.Scan(&c.ID, &c.Name, &phone, &accountID, &c.CreatedAt); err != nil {
		return nil, err
	}

	c.Phone = phone.String
	c.AccountID = accountID.String

	return &c, nil
}

const selectClientColumns = `id, name, phone, account_id, created_at`

func (s *Store) CreateClient(ctx context.Context, c *client.Client) error {
	query := `
		INSERT INTO clients (name, phone, created_at)
		VALUES ($1, NULLIF($2, ''), NOW())
		RETURNING id, created_at
	`

	if err := s.db.QueryRowContext(ctx, query, c.Name, c.Phone).Scan(&c.ID, &c.CreatedAt); err != nil {
		return fmt.Errorf("creating client: %w", err)
	}

	return nil
}

func (s *Store) GetClient(ctx context.Context, id int64) (*client.Client, error) {
	query := `SELECT ` + selectClientColumns + ` FROM clients WHERE id = $1`

	c, err := scanClient(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, client.ErrNotFound
		}

		return nil, fmt.Errorf("getting client: %w", err)
	}

	return c, nil
}

func (s *Store) UpdateAccountID(ctx context.Context, id int64, accountID string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE clients SET account_id = $2 WHERE id = $1`, id, accountID)
	if err != nil {
		return fmt.Errorf("linking client account: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return client.ErrNotFound
	}

	return nil
}

func (s *Store) ListClients(ctx context.Context) ([]*client.Client, error) {
	query := `SELECT ` + selectClientColumns + ` FROM clients ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	defer rows.Close()

	return collectClients(rows)
}

func (s *Store) FindByPhone(ctx context.Context, phone string) (*client.Client, error) {
	query := `SELECT ` + selectClientColumns + ` FROM clients WHERE phone = $1`

	c, err := scanClient(s.db.QueryRowContext(ctx, query, phone))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, client.ErrNotFound
		}

		return nil, fmt.Errorf("finding client by phone: %w", err)
	}

	return c, nil
}

func (s *Store) FindByName(ctx context.Context, name string) (*client.Client, error) {
	query := `SELECT ` + selectClientColumns + ` FROM clients WHERE LOWER(name) = LOWER($1)`

	c, err := scanClient(s.db.QueryRowContext(ctx, query, name))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, client.ErrNotFound
		}

		return nil, fmt.Errorf("finding client by name: %w", err)
	}

	return c, nil
}

func (s *Store) SearchByName(ctx context.Context, fragment string) ([]*client.Client, error) {
	query := `SELECT ` + selectClientColumns + `
		FROM clients
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY LENGTH(name), id
	`

	rows, err := s.db.QueryContext(ctx, query, fragment)
	if err != nil {
		return nil, fmt.Errorf("searching clients: %w", err)
	}
	defer rows.Close()

	return collectClients(rows)
}

func collectClients(rows *sql.Rows) ([]*client.Client, error) {
	var clients []*client.Client

	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning client: %w", err)
		}

		clients = append(clients, c)
	}

	return clients, rows.Err()
}

func (s *Store) AddBlacklistEntry(ctx context.Context, entry *client.BlacklistEntry) error {
	entry.ID = uuid.New()

	query := `
		INSERT INTO blacklist (id, kind, value, reason, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING created_at
	`

	if err := s.db.QueryRowContext(ctx, query, entry.ID, entry.Kind, entry.Value, entry.Reason).Scan(&entry.CreatedAt); err != nil {
		return fmt.Errorf("adding blacklist entry: %w", err)
	}

	return nil
}

func (s *Store) FindBlacklistEntry(ctx context.Context, kind client.BlacklistKind, value string) (*client.BlacklistEntry, error) {
	query := `
		SELECT id, kind, value, reason, created_at
		FROM blacklist
		WHERE kind = $1 AND LOWER(value) = LOWER($2)
	`

	var entry client.BlacklistEntry

	err := s.db.QueryRowContext(ctx, query, kind, value).
		Scan(&entry.ID, &entry.Kind, &entry.Value, &entry.Reason, &entry.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("finding blacklist entry: %w", err)
	}

	return &entry, nil
}

func (s *Store) ListBlacklist(ctx context.Context) ([]*client.BlacklistEntry, error) {
	query := `SELECT id, kind, value, reason, created_at FROM blacklist ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing blacklist: %w", err)
	}
	defer rows.Close()

	var entries []*client.BlacklistEntry

	for rows.Next() {
		var entry client.BlacklistEntry
		if err := rows.Scan(&entry.ID, &entry.Kind, &entry.Value, &entry.Reason, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning blacklist entry: %w", err)
		}

		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}
