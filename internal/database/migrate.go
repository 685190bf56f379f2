package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Migrate brings the schema up to the current version. Versions already
// applied are skipped.
func Migrate(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning migration: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		)
	`); err != nil {
		return fmt.Errorf("create schema_version: %w", err)
	}

	var version int
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	if version < 1 {
		if err := migrateV1(ctx, tx); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return tx.Commit()
}

func migrateV1(ctx context.Context, tx *sql.Tx) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS tenants (
			id         BIGSERIAL PRIMARY KEY,
			name       TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS accounts (
			id             BIGSERIAL PRIMARY KEY,
			tenant_id      BIGINT NOT NULL REFERENCES tenants(id),
			name           TEXT NOT NULL,
			type           TEXT NOT NULL CHECK (type IN ('Asset','Liability','Equity','Income','Expense')),
			subtype        TEXT CHECK (subtype IN ('Bank','Credit Card')),
			cached_balance NUMERIC(19,4) NOT NULL DEFAULT 0,
			created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_accounts_tenant ON accounts(tenant_id)`,

		`CREATE TABLE IF NOT EXISTS customers (
			id          BIGSERIAL PRIMARY KEY,
			tenant_id   BIGINT NOT NULL REFERENCES tenants(id),
			name        TEXT NOT NULL,
			first_name  TEXT NOT NULL DEFAULT '',
			last_name   TEXT NOT NULL DEFAULT '',
			is_business BOOLEAN NOT NULL DEFAULT FALSE,
			email       TEXT NOT NULL DEFAULT '',
			phone       TEXT NOT NULL DEFAULT '',
			address     TEXT NOT NULL DEFAULT '',
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_customers_tenant ON customers(tenant_id)`,

		`CREATE TABLE IF NOT EXISTS transactions (
			id          BIGSERIAL PRIMARY KEY,
			tenant_id   BIGINT NOT NULL REFERENCES tenants(id),
			date        DATE NOT NULL,
			sequence    BIGINT NOT NULL DEFAULT 0,
			payee       TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			customer_id BIGINT REFERENCES customers(id),
			deleted_at  TIMESTAMPTZ,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at  TIMESTAMPTZ
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_tenant_date ON transactions(tenant_id, date, sequence)`,

		// Hard deletes cascade to lines; accounts referenced by lines are
		// protected, which is what makes in-use account deletion fail.
		`CREATE TABLE IF NOT EXISTS transaction_lines (
			id             BIGSERIAL PRIMARY KEY,
			transaction_id BIGINT NOT NULL REFERENCES transactions(id) ON DELETE CASCADE,
			account_id     BIGINT NOT NULL REFERENCES accounts(id) ON DELETE RESTRICT,
			amount         NUMERIC(19,4) NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_lines_transaction ON transaction_lines(transaction_id)`,
		`CREATE INDEX IF NOT EXISTS idx_lines_account ON transaction_lines(account_id)`,

		`INSERT INTO schema_version (version) VALUES (1)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing %q: %w", stmt[:40], err)
		}
	}

	return nil
}
