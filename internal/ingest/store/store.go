package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/lux2ube/Customer-service-sub002/internal/ingest"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateFailure(ctx context.Context, f *ingest.Failure) error {
	query := `
		INSERT INTO parsing_failures (id, raw_message, reason, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING created_at
	`

	if err := s.db.QueryRowContext(ctx, query, f.ID, f.RawMessage, f.Reason).Scan(&f.CreatedAt); err != nil {
		return fmt.Errorf("creating parsing failure: %w", err)
	}

	return nil
}

func (s *Store) ListFailures(ctx context.Context, includeResolved bool) ([]*ingest.Failure, error) {
	query := `
		SELECT id, raw_message, reason, resolved, created_at
		FROM parsing_failures
	`

	if !includeResolved {
		query += ` WHERE NOT resolved`
	}

	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing parsing failures: %w", err)
	}
	defer rows.Close()

	var failures []*ingest.Failure

	for rows.Next() {
		var f ingest.Failure
		if err := rows.Scan(&f.ID, &f.RawMessage, &f.Reason, &f.Resolved, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning parsing failure: %w", err)
		}

		failures = append(failures, &f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating parsing failures: %w", err)
	}

	return failures, nil
}

func (s *Store) ResolveFailure(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `UPDATE parsing_failures SET resolved = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("resolving parsing failure: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return ingest.ErrFailureNotFound
	}

	return nil
}
