package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tidybooks/tidybooks/internal/ledger"
)

const selectAccountColumns = `
	a.id, a.tenant_id, a.name, a.type, a.subtype, a.cached_balance, a.created_at
`

func scanAccount(s scanner) (*ledger.Account, error) {
	var a ledger.Account

	var typeStr string

	var subtype sql.NullString

	if err := s.Scan(&a.ID, &a.TenantID, &a.Name, &typeStr, &subtype, &a.CachedBalance, &a.CreatedAt); err != nil {
		return nil, err
	}

	a.Type = ledger.AccountType(typeStr)

	if subtype.Valid {
		st := ledger.Subtype(subtype.String)
		a.Subtype = &st
	}

	return &a, nil
}

func (q *queries) GetAccount(ctx context.Context, tenantID, id int64) (*ledger.Account, error) {
	query := `SELECT ` + selectAccountColumns + `
		FROM accounts a
		WHERE a.id = $1 AND a.tenant_id = $2`

	a, err := scanAccount(q.q.QueryRowContext(ctx, query, id, tenantID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ledger.ErrAccountNotFound
		}

		return nil, fmt.Errorf("getting account: %w", err)
	}

	return a, nil
}

func (q *queries) FindAccountByName(ctx context.Context, tenantID int64, name string, typ ledger.AccountType) (*ledger.Account, error) {
	query := `SELECT ` + selectAccountColumns + `
		FROM accounts a
		WHERE a.tenant_id = $1 AND a.name = $2 AND a.type = $3
		ORDER BY a.id
		LIMIT 1`

	a, err := scanAccount(q.q.QueryRowContext(ctx, query, tenantID, name, typ))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ledger.ErrAccountNotFound
		}

		return nil, fmt.Errorf("finding account by name: %w", err)
	}

	return a, nil
}

func (q *queries) ListAccounts(ctx context.Context, tenantID int64, registerOnly bool) ([]*ledger.Account, error) {
	query := `SELECT ` + selectAccountColumns + `
		FROM accounts a
		WHERE a.tenant_id = $1`

	if registerOnly {
		query += ` AND a.subtype IN ('Bank', 'Credit Card')`
	}

	query += ` ORDER BY a.id`

	rows, err := q.q.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*ledger.Account

	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}

		accounts = append(accounts, a)
	}

	return accounts, rows.Err()
}

func (q *queries) CreateAccount(ctx context.Context, a *ledger.Account) error {
	query := `
		INSERT INTO accounts (tenant_id, name, type, subtype, cached_balance, created_at)
		VALUES ($1, $2, $3, $4, 0, NOW())
		RETURNING id, cached_balance, created_at
	`

	var subtype *string
	if a.Subtype != nil {
		s := string(*a.Subtype)
		subtype = &s
	}

	err := q.q.QueryRowContext(ctx, query, a.TenantID, a.Name, a.Type, subtype).
		Scan(&a.ID, &a.CachedBalance, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating account: %w", err)
	}

	return nil
}

func (q *queries) UpdateAccount(ctx context.Context, a *ledger.Account) error {
	query := `
		UPDATE accounts
		SET name = $1, type = $2
		WHERE id = $3 AND tenant_id = $4
	`

	_, err := q.q.ExecContext(ctx, query, a.Name, a.Type, a.ID, a.TenantID)
	if err != nil {
		return fmt.Errorf("updating account: %w", err)
	}

	return nil
}

func (q *queries) DeleteAccount(ctx context.Context, tenantID, id int64) error {
	query := `DELETE FROM accounts WHERE id = $1 AND tenant_id = $2`

	_, err := q.q.ExecContext(ctx, query, id, tenantID)
	if err != nil {
		if foreignKeyViolation(err) {
			return ledger.ErrAccountInUse
		}

		return fmt.Errorf("deleting account: %w", err)
	}

	return nil
}

// RecalculateBalance recomputes the cached balance from non-deleted lines
// and persists it. The read and the write run on the same querier, so
// inside WithTx both belong to the caller's atomic unit.
func (q *queries) RecalculateBalance(ctx context.Context, tenantID, accountID int64) (decimal.Decimal, error) {
	sumQuery := `
		SELECT COALESCE(SUM(l.amount), 0)
		FROM transaction_lines l
		JOIN transactions t ON t.id = l.transaction_id
		WHERE l.account_id = $1 AND t.tenant_id = $2 AND t.deleted_at IS NULL
	`

	var balance decimal.Decimal
	if err := q.q.QueryRowContext(ctx, sumQuery, accountID, tenantID).Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("summing lines: %w", err)
	}

	updateQuery := `UPDATE accounts SET cached_balance = $1 WHERE id = $2 AND tenant_id = $3`
	if _, err := q.q.ExecContext(ctx, updateQuery, balance, accountID, tenantID); err != nil {
		return decimal.Zero, fmt.Errorf("writing cached balance: %w", err)
	}

	return balance, nil
}
