package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tidybooks/tidybooks/internal/auth"
)

// TransactionParams is the user input for creating or updating a
// transaction, before sign resolution.
type TransactionParams struct {
	Date        time.Time
	Payee       string
	Description string
	AccountID   int64
	Amount      decimal.Decimal
	Type        Direction
	CustomerID  *int64
	Splits      []SplitInput
}

// CreateTransaction resolves a balanced line set, assigns the next
// sequence on the date, persists the transaction and recalculates every
// touched account, all in one atomic unit.
func (s *Service) CreateTransaction(ctx context.Context, rc auth.RequestContext, params TransactionParams) (*Transaction, error) {
	var created *Transaction

	err := s.repo.WithTx(ctx, func(tx Tx) error {
		if _, err := tx.GetAccount(ctx, rc.TenantID, params.AccountID); err != nil {
			return err
		}

		lines, err := ResolveLines(params.AccountID, params.Amount, params.Type, params.Splits)
		if err != nil {
			return err
		}

		if err := checkBalanced(lines); err != nil {
			return err
		}

		date := dayOf(params.Date)

		maxSeq, err := tx.MaxSequence(ctx, rc.TenantID, date)
		if err != nil {
			return err
		}

		t := &Transaction{
			TenantID:    rc.TenantID,
			Date:        date,
			Sequence:    maxSeq + 1,
			Payee:       params.Payee,
			Description: params.Description,
			CustomerID:  params.CustomerID,
			Lines:       lines,
		}

		if err := tx.CreateTransaction(ctx, t); err != nil {
			return err
		}

		if err := recalculateAll(ctx, tx, rc.TenantID, lineAccountIDs(lines)); err != nil {
			return err
		}

		created = t

		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// UpdateTransaction replaces the transaction's entire line set and header.
// Accounts appearing in the old or the new line set are each recalculated
// exactly once, after both sets are in their final state.
func (s *Service) UpdateTransaction(ctx context.Context, rc auth.RequestContext, id int64, params TransactionParams) (*Transaction, error) {
	var updated *Transaction

	err := s.repo.WithTx(ctx, func(tx Tx) error {
		orig, err := tx.GetTransaction(ctx, rc.TenantID, id)
		if err != nil {
			return err
		}

		if _, err := tx.GetAccount(ctx, rc.TenantID, params.AccountID); err != nil {
			return err
		}

		lines, err := ResolveLines(params.AccountID, params.Amount, params.Type, params.Splits)
		if err != nil {
			return err
		}

		if err := checkBalanced(lines); err != nil {
			return err
		}

		orig.Payee = params.Payee
		orig.Description = params.Description
		orig.CustomerID = params.CustomerID

		// A date change joins the new day's group at the end, like a
		// fresh entry on that day.
		newDate := dayOf(params.Date)
		if !newDate.Equal(orig.Date) {
			maxSeq, err := tx.MaxSequence(ctx, rc.TenantID, newDate)
			if err != nil {
				return err
			}

			orig.Date = newDate
			orig.Sequence = maxSeq + 1
		}

		if err := tx.UpdateTransactionHeader(ctx, orig); err != nil {
			return err
		}

		if err := tx.ReplaceLines(ctx, orig.ID, lines); err != nil {
			return err
		}

		affected := append(lineAccountIDs(orig.Lines), lineAccountIDs(lines)...)
		if err := recalculateAll(ctx, tx, rc.TenantID, affected); err != nil {
			return err
		}

		orig.Lines = lines
		updated = orig

		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// SoftDeleteTransaction marks the transaction deleted and recalculates the
// accounts its lines reference, so their balances drop the excluded lines.
func (s *Service) SoftDeleteTransaction(ctx context.Context, rc auth.RequestContext, id int64) error {
	return s.repo.WithTx(ctx, func(tx Tx) error {
		t, err := tx.GetTransaction(ctx, rc.TenantID, id)
		if err != nil {
			return err
		}

		if t.Deleted() {
			return ErrAlreadyDeleted
		}

		now := s.now().UTC()
		if err := tx.SetDeletedAt(ctx, rc.TenantID, id, &now); err != nil {
			return err
		}

		return recalculateAll(ctx, tx, rc.TenantID, lineAccountIDs(t.Lines))
	})
}

// RestoreTransaction clears the deletion mark and recalculates the same
// accounts. A delete followed by a restore leaves every balance exactly
// where it was.
func (s *Service) RestoreTransaction(ctx context.Context, rc auth.RequestContext, id int64) error {
	return s.repo.WithTx(ctx, func(tx Tx) error {
		t, err := tx.GetTransaction(ctx, rc.TenantID, id)
		if err != nil {
			return err
		}

		if !t.Deleted() {
			return ErrNotDeleted
		}

		if err := tx.SetDeletedAt(ctx, rc.TenantID, id, nil); err != nil {
			return err
		}

		return recalculateAll(ctx, tx, rc.TenantID, lineAccountIDs(t.Lines))
	})
}

// ReorderTransaction moves a transaction to position within the given
// date's group, renumbering the whole group 0..n. Only ordering metadata
// changes; line amounts and balances are untouched, balances are
// date-independent sums.
func (s *Service) ReorderTransaction(ctx context.Context, rc auth.RequestContext, id int64, newDate time.Time, position int) error {
	return s.repo.WithTx(ctx, func(tx Tx) error {
		t, err := tx.GetTransaction(ctx, rc.TenantID, id)
		if err != nil {
			return err
		}

		date := dayOf(newDate)

		ids, err := tx.ListActiveIDsOnDate(ctx, rc.TenantID, date, t.ID)
		if err != nil {
			return err
		}

		for seq, tid := range SpliceOrder(ids, t.ID, position) {
			if err := tx.UpdateOrdering(ctx, rc.TenantID, tid, date, int64(seq)); err != nil {
				return err
			}
		}

		return nil
	})
}

// ListTransactions returns the register view of an account: each active
// transaction annotated with its direction and absolute amount relative to
// the account, other legs exposed as splits. Ordered by (date, sequence,
// id) descending unless ascending is requested for a running-balance view.
func (s *Service) ListTransactions(ctx context.Context, rc auth.RequestContext, accountID int64, ascending bool) ([]TransactionView, error) {
	if _, err := s.repo.GetAccount(ctx, rc.TenantID, accountID); err != nil {
		return nil, err
	}

	txs, err := s.repo.ListTransactionsByAccount(ctx, rc.TenantID, accountID, ascending)
	if err != nil {
		return nil, err
	}

	views := make([]TransactionView, 0, len(txs))

	for _, t := range txs {
		view := TransactionView{
			ID:          t.ID,
			Date:        t.Date,
			Sequence:    t.Sequence,
			Payee:       t.Payee,
			Description: t.Description,
			CustomerID:  t.CustomerID,
			AccountID:   accountID,
		}

		mainFound := false

		for _, l := range t.Lines {
			if l.AccountID == accountID && !mainFound {
				mainFound = true
				view.Amount = l.Amount.Abs()
				view.Type = DirectionForAmount(l.Amount)

				continue
			}

			view.Splits = append(view.Splits, SplitView{
				AccountID:   l.AccountID,
				AccountName: l.AccountName,
				AccountType: l.AccountType,
				Amount:      l.Amount.Abs(),
			})
		}

		views = append(views, view)
	}

	return views, nil
}

// checkBalanced is the engine's own zero-sum check, independent of the
// resolver having already guaranteed it.
func checkBalanced(lines []Line) error {
	if len(lines) < 2 {
		return validationf("transaction needs at least 2 lines, got %d", len(lines))
	}

	if sum := sumLines(lines); !sum.IsZero() {
		return validationf("lines do not balance: sum is %s", sum)
	}

	return nil
}
