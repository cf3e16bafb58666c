package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Schema is the full DDL. Every statement is idempotent, so Migrate is safe
// to run on every startup.
const Schema = `
CREATE TABLE IF NOT EXISTS accounts (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    type       TEXT NOT NULL,
    is_group   BOOLEAN NOT NULL DEFAULT FALSE,
    currency   TEXT,
    parent_id  TEXT REFERENCES accounts(id),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_accounts_parent ON accounts(parent_id);

CREATE TABLE IF NOT EXISTS journal_entries (
    id                TEXT PRIMARY KEY,
    date              TIMESTAMPTZ NOT NULL,
    description       TEXT NOT NULL,
    debit_account_id  TEXT NOT NULL REFERENCES accounts(id),
    credit_account_id TEXT NOT NULL REFERENCES accounts(id),
    debit_amount      BIGINT NOT NULL CHECK (debit_amount > 0),
    credit_amount     BIGINT NOT NULL CHECK (credit_amount > 0),
    amount_usd        BIGINT NOT NULL CHECK (amount_usd > 0),
    created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    CHECK (debit_account_id <> credit_account_id)
);

CREATE INDEX IF NOT EXISTS idx_entries_debit ON journal_entries(debit_account_id, date);
CREATE INDEX IF NOT EXISTS idx_entries_credit ON journal_entries(credit_account_id, date);
CREATE INDEX IF NOT EXISTS idx_entries_date ON journal_entries(date, id);

CREATE TABLE IF NOT EXISTS clients (
    id         BIGSERIAL PRIMARY KEY,
    name       TEXT NOT NULL,
    phone      TEXT,
    account_id TEXT REFERENCES accounts(id),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_clients_phone ON clients(phone);
CREATE INDEX IF NOT EXISTS idx_clients_name ON clients(LOWER(name));

CREATE TABLE IF NOT EXISTS records (
    id                TEXT PRIMARY KEY,
    kind              TEXT NOT NULL,
    type              TEXT NOT NULL,
    date              TIMESTAMPTZ NOT NULL,
    amount            BIGINT NOT NULL CHECK (amount > 0),
    currency          TEXT NOT NULL,
    amount_usd        BIGINT NOT NULL CHECK (amount_usd > 0),
    status            TEXT NOT NULL,
    flagged           BOOLEAN NOT NULL DEFAULT FALSE,
    client_id         BIGINT REFERENCES clients(id),
    transfer_entry_id TEXT REFERENCES journal_entries(id),
    suspense_before   BIGINT,
    suspense_after    BIGINT,
    sender_name       TEXT,
    raw_message       TEXT,
    created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_records_status ON records(status);
CREATE INDEX IF NOT EXISTS idx_records_client ON records(client_id);

CREATE TABLE IF NOT EXISTS blacklist (
    id         UUID PRIMARY KEY,
    kind       TEXT NOT NULL,
    value      TEXT NOT NULL,
    reason     TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (kind, value)
);

CREATE TABLE IF NOT EXISTS settings (
    id                          INT PRIMARY KEY,
    financial_period_start_date TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS closed_balances (
    id         BIGSERIAL PRIMARY KEY,
    account_id TEXT NOT NULL REFERENCES accounts(id),
    balance    BIGINT NOT NULL,
    closed_at  TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_closed_balances_account ON closed_balances(account_id, closed_at);

CREATE TABLE IF NOT EXISTS parsing_failures (
    id          UUID PRIMARY KEY,
    raw_message TEXT NOT NULL,
    reason      TEXT NOT NULL,
    resolved    BOOLEAN NOT NULL DEFAULT FALSE,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// Migrate creates any missing tables and indexes.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("applying schema: %w", err)
	}

	return nil
}
