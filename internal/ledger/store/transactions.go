package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tidybooks/tidybooks/internal/ledger"
)

const selectTransactionColumns = `
	t.id, t.tenant_id, t.date, t.sequence, t.payee, t.description,
	t.customer_id, t.deleted_at, t.created_at, t.updated_at
`

func scanTransaction(s scanner) (*ledger.Transaction, error) {
	var t ledger.Transaction

	if err := s.Scan(
		&t.ID, &t.TenantID, &t.Date, &t.Sequence, &t.Payee, &t.Description,
		&t.CustomerID, &t.DeletedAt, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &t, nil
}

// GetTransaction loads a transaction with its lines, deleted or not, so
// lifecycle checks and restore can see soft-deleted rows.
func (q *queries) GetTransaction(ctx context.Context, tenantID, id int64) (*ledger.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		WHERE t.id = $1 AND t.tenant_id = $2`

	t, err := scanTransaction(q.q.QueryRowContext(ctx, query, id, tenantID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ledger.ErrTransactionNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	lines, err := q.linesForTransaction(ctx, t.ID)
	if err != nil {
		return nil, err
	}

	t.Lines = lines

	return t, nil
}

func (q *queries) linesForTransaction(ctx context.Context, transactionID int64) ([]ledger.Line, error) {
	query := `
		SELECT l.id, l.transaction_id, l.account_id, l.amount, a.name, a.type
		FROM transaction_lines l
		JOIN accounts a ON a.id = l.account_id
		WHERE l.transaction_id = $1
		ORDER BY l.id
	`

	rows, err := q.q.QueryContext(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("listing lines: %w", err)
	}
	defer rows.Close()

	var lines []ledger.Line

	for rows.Next() {
		var l ledger.Line

		var typeStr string

		if err := rows.Scan(&l.ID, &l.TransactionID, &l.AccountID, &l.Amount, &l.AccountName, &typeStr); err != nil {
			return nil, fmt.Errorf("scanning line: %w", err)
		}

		l.AccountType = ledger.AccountType(typeStr)
		lines = append(lines, l)
	}

	return lines, rows.Err()
}

func (q *queries) ListTransactionsByAccount(ctx context.Context, tenantID, accountID int64, ascending bool) ([]*ledger.Transaction, error) {
	query := `SELECT DISTINCT ` + selectTransactionColumns + `
		FROM transactions t
		JOIN transaction_lines l ON l.transaction_id = t.id
		WHERE t.tenant_id = $1 AND t.deleted_at IS NULL AND l.account_id = $2`

	if ascending {
		query += ` ORDER BY t.date ASC, t.sequence ASC, t.id ASC`
	} else {
		query += ` ORDER BY t.date DESC, t.sequence DESC, t.id DESC`
	}

	rows, err := q.q.QueryContext(ctx, query, tenantID, accountID)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*ledger.Transaction

	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}

	for _, t := range txs {
		lines, err := q.linesForTransaction(ctx, t.ID)
		if err != nil {
			return nil, err
		}

		t.Lines = lines
	}

	return txs, nil
}

func (q *queries) CreateTransaction(ctx context.Context, t *ledger.Transaction) error {
	query := `
		INSERT INTO transactions (tenant_id, date, sequence, payee, description, customer_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err := q.q.QueryRowContext(ctx, query,
		t.TenantID, t.Date, t.Sequence, t.Payee, t.Description, t.CustomerID,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return q.insertLines(ctx, t.ID, t.Lines)
}

func (q *queries) insertLines(ctx context.Context, transactionID int64, lines []ledger.Line) error {
	query := `
		INSERT INTO transaction_lines (transaction_id, account_id, amount)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	for i := range lines {
		lines[i].TransactionID = transactionID

		err := q.q.QueryRowContext(ctx, query, transactionID, lines[i].AccountID, lines[i].Amount).
			Scan(&lines[i].ID)
		if err != nil {
			return fmt.Errorf("creating line %d: %w", i, err)
		}
	}

	return nil
}

func (q *queries) UpdateTransactionHeader(ctx context.Context, t *ledger.Transaction) error {
	query := `
		UPDATE transactions
		SET date = $1, sequence = $2, payee = $3, description = $4, customer_id = $5, updated_at = NOW()
		WHERE id = $6 AND tenant_id = $7
	`

	_, err := q.q.ExecContext(ctx, query,
		t.Date, t.Sequence, t.Payee, t.Description, t.CustomerID, t.ID, t.TenantID,
	)
	if err != nil {
		return fmt.Errorf("updating transaction: %w", err)
	}

	return nil
}

// ReplaceLines swaps the full line set: delete all, recreate. Updates are
// a full replace, never a line-by-line diff.
func (q *queries) ReplaceLines(ctx context.Context, transactionID int64, lines []ledger.Line) error {
	if _, err := q.q.ExecContext(ctx, `DELETE FROM transaction_lines WHERE transaction_id = $1`, transactionID); err != nil {
		return fmt.Errorf("deleting lines: %w", err)
	}

	return q.insertLines(ctx, transactionID, lines)
}

func (q *queries) SetDeletedAt(ctx context.Context, tenantID, id int64, deletedAt *time.Time) error {
	query := `
		UPDATE transactions
		SET deleted_at = $1, updated_at = NOW()
		WHERE id = $2 AND tenant_id = $3
	`

	_, err := q.q.ExecContext(ctx, query, deletedAt, id, tenantID)
	if err != nil {
		return fmt.Errorf("setting deleted_at: %w", err)
	}

	return nil
}

// MaxSequence spans deleted transactions too: sequences are monotonic per
// day and never reused.
func (q *queries) MaxSequence(ctx context.Context, tenantID int64, date time.Time) (int64, error) {
	query := `
		SELECT COALESCE(MAX(sequence), 0)
		FROM transactions
		WHERE tenant_id = $1 AND date = $2
	`

	var max int64
	if err := q.q.QueryRowContext(ctx, query, tenantID, date).Scan(&max); err != nil {
		return 0, fmt.Errorf("reading max sequence: %w", err)
	}

	return max, nil
}

func (q *queries) ListActiveIDsOnDate(ctx context.Context, tenantID int64, date time.Time, excludeID int64) ([]int64, error) {
	query := `
		SELECT id
		FROM transactions
		WHERE tenant_id = $1 AND date = $2 AND deleted_at IS NULL AND id <> $3
		ORDER BY sequence ASC, id ASC
	`

	rows, err := q.q.QueryContext(ctx, query, tenantID, date, excludeID)
	if err != nil {
		return nil, fmt.Errorf("listing transactions on date: %w", err)
	}
	defer rows.Close()

	var ids []int64

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning transaction id: %w", err)
		}

		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func (q *queries) UpdateOrdering(ctx context.Context, tenantID, id int64, date time.Time, sequence int64) error {
	query := `
		UPDATE transactions
		SET date = $1, sequence = $2, updated_at = NOW()
		WHERE id = $3 AND tenant_id = $4
	`

	_, err := q.q.ExecContext(ctx, query, date, sequence, id, tenantID)
	if err != nil {
		return fmt.Errorf("updating ordering: %w", err)
	}

	return nil
}
