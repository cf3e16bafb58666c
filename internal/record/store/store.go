package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lux2ube/Customer-service-sub002/internal/record"
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

// Expected column order: id, kind, type, date, amount, currency, amount_usd,
// status, flagged, client_id, transfer_entry_id, suspense_before,
// suspense_after, sender_name, raw_message, created_at
func scanRecord(s scanner) (*record.Record, error) {
	var rec record.Record

	var kindStr, typeStr, statusStr string

	var clientID sql.NullInt64

	var transferEntryID, senderName, rawMessage sql.NullString

	var suspenseBefore, suspenseAfter sql.NullInt64

	if err := s.Scan(
		&rec.ID, &kindStr, &typeStr, &rec.Date, &rec.Amount, &rec.Currency, &rec.AmountUSD,
		&statusStr, &rec.Flagged, &clientID, &transferEntryID, &suspenseBefore, &suspenseAfter,
		&senderName, &rawMessage, &rec.CreatedAt,
	); err != nil {
		return nil, err
	}

	rec.Kind = record.Kind(kindStr)
	rec.Type = record.Type(typeStr)
	rec.Status = record.Status(statusStr)
	rec.SenderName = senderName.String
	rec.RawMessage = rawMessage.String

	if clientID.Valid {
		rec.ClientID = &clientID.Int64
	}

	if transferEntryID.Valid {
		rec.TransferEntryID = &transferEntryID.String
	}

	if suspenseBefore.Valid {
		rec.SuspenseBefore = &suspenseBefore.Int64
	}

	if suspenseAfter.Valid {
		rec.SuspenseAfter = &suspenseAfter.Int64
	}

	return &rec, nil
}

const selectRecordColumns = `
	id, kind, type, date, amount, currency, amount_usd, status, flagged,
	client_id, transfer_entry_id, suspense_before, suspense_after,
	sender_name, raw_message, created_at
`

func (s *Store) CreateRecord(ctx context.Context, rec *record.Record) error {
	query := `
		INSERT INTO records
			(id, kind, type, date, amount, currency, amount_usd, status, sender_name, raw_message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), NULLIF($10, ''), NOW())
		RETURNING created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		rec.ID, rec.Kind, rec.Type, rec.Date, rec.Amount, rec.Currency, rec.AmountUSD,
		rec.Status, rec.SenderName, rec.RawMessage,
	).Scan(&rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating record: %w", err)
	}

	return nil
}

func (s *Store) GetRecord(ctx context.Context, id string) (*record.Record, error) {
	query := `SELECT ` + selectRecordColumns + ` FROM records WHERE id = $1`

	rec, err := scanRecord(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, record.ErrNotFound
		}

		return nil, fmt.Errorf("getting record: %w", err)
	}

	return rec, nil
}

func (s *Store) ListRecords(ctx context.Context, filter record.ListFilter) ([]*record.Record, error) {
	query := `SELECT ` + selectRecordColumns + ` FROM records`

	var conds []string

	var args []any

	argIdx := 1

	if filter.Status != nil {
		conds = append(conds, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.Kind != nil {
		conds = append(conds, fmt.Sprintf("kind = $%d", argIdx))
		args = append(args, *filter.Kind)
		argIdx++
	}

	if filter.ClientID != nil {
		conds = append(conds, fmt.Sprintf("client_id = $%d", argIdx))
		args = append(args, *filter.ClientID)
		argIdx++
	}

	if filter.Flagged != nil {
		conds = append(conds, fmt.Sprintf("flagged = $%d", argIdx))
		args = append(args, *filter.Flagged)
		argIdx++
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	query += " ORDER BY date DESC, id DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	defer rows.Close()

	var recs []*record.Record

	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}

		recs = append(recs, rec)
	}

	return recs, rows.Err()
}

func (s *Store) FlagRecord(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE records SET flagged = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("flagging record: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("flagging record: %w", err)
	}

	if n == 0 {
		return record.ErrNotFound
	}

	return nil
}

func (s *Store) TransitionStatus(ctx context.Context, id string, from []record.Status, to record.Status) error {
	placeholders := make([]string, len(from))

	args := []any{id, to}

	for i, status := range from {
		placeholders[i] = fmt.Sprintf("$%d", i+3)
		args = append(args, status)
	}

	query := fmt.Sprintf(
		`UPDATE records SET status = $2 WHERE id = $1 AND status IN (%s)`,
		strings.Join(placeholders, ", "),
	)

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("transitioning record status: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("transitioning record status: %w", err)
	}

	if n == 0 {
		// Either the record does not exist or it is not in an allowed state.
		if _, err := s.GetRecord(ctx, id); err != nil {
			return err
		}

		return record.ErrTerminal
	}

	return nil
}
