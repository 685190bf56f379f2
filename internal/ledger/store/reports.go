package store

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tidybooks/tidybooks/internal/ledger"
)

func (q *queries) SumBalancesByType(ctx context.Context, tenantID int64, typ ledger.AccountType) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(cached_balance), 0)
		FROM accounts
		WHERE tenant_id = $1 AND type = $2
	`

	var sum decimal.Decimal
	if err := q.q.QueryRowContext(ctx, query, tenantID, typ).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("summing balances by type: %w", err)
	}

	return sum, nil
}

// SumLineAmountsByType sums absolute line amounts of active transactions
// for accounts of the given type, the profit & loss input.
func (q *queries) SumLineAmountsByType(ctx context.Context, tenantID int64, typ ledger.AccountType) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(ABS(l.amount)), 0)
		FROM transaction_lines l
		JOIN transactions t ON t.id = l.transaction_id
		JOIN accounts a ON a.id = l.account_id
		WHERE a.tenant_id = $1 AND a.type = $2 AND t.deleted_at IS NULL
	`

	var sum decimal.Decimal
	if err := q.q.QueryRowContext(ctx, query, tenantID, typ).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("summing line amounts by type: %w", err)
	}

	return sum, nil
}
