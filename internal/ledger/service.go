package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Reader is the read side of the store, usable outside an atomic unit.
// Every query is tenant-filtered; ids from other tenants behave as absent.
type Reader interface {
	GetAccount(ctx context.Context, tenantID, id int64) (*Account, error)
	ListAccounts(ctx context.Context, tenantID int64, registerOnly bool) ([]*Account, error)

	// ListTransactionsByAccount returns active transactions with at least
	// one line on the account, lines included, ordered by
	// (date, sequence, id) descending by default or ascending when asked.
	ListTransactionsByAccount(ctx context.Context, tenantID, accountID int64, ascending bool) ([]*Transaction, error)

	SumBalancesByType(ctx context.Context, tenantID int64, typ AccountType) (decimal.Decimal, error)
	SumLineAmountsByType(ctx context.Context, tenantID int64, typ AccountType) (decimal.Decimal, error)
}

// Tx is the store surface available inside one atomic unit. Everything a
// mutating operation touches, lines, headers, sequences and recalculated
// balances, commits or rolls back together.
type Tx interface {
	Reader

	CreateAccount(ctx context.Context, a *Account) error
	UpdateAccount(ctx context.Context, a *Account) error
	DeleteAccount(ctx context.Context, tenantID, id int64) error
	FindAccountByName(ctx context.Context, tenantID int64, name string, typ AccountType) (*Account, error)

	GetTransaction(ctx context.Context, tenantID, id int64) (*Transaction, error)
	CreateTransaction(ctx context.Context, t *Transaction) error
	UpdateTransactionHeader(ctx context.Context, t *Transaction) error
	ReplaceLines(ctx context.Context, transactionID int64, lines []Line) error
	SetDeletedAt(ctx context.Context, tenantID, id int64, deletedAt *time.Time) error

	// MaxSequence returns the highest sequence ever assigned on the date,
	// deleted transactions included, so sequences are never reused.
	MaxSequence(ctx context.Context, tenantID int64, date time.Time) (int64, error)
	ListActiveIDsOnDate(ctx context.Context, tenantID int64, date time.Time, excludeID int64) ([]int64, error)
	UpdateOrdering(ctx context.Context, tenantID, id int64, date time.Time, sequence int64) error

	// RecalculateBalance recomputes the account's cached balance from its
	// non-deleted lines, persists it and returns the new value.
	RecalculateBalance(ctx context.Context, tenantID, accountID int64) (decimal.Decimal, error)
}

// Repository is the persistence boundary of the ledger. WithTx runs fn in
// one atomic unit; a non-nil error from fn rolls the whole unit back.
type Repository interface {
	Reader

	WithTx(ctx context.Context, fn func(Tx) error) error
}

// Service owns the transaction lifecycle and everything that derives from
// it: balanced line construction, balance recalculation, ordering, account
// and category management, and report reads.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// recalculateAll recomputes the balance of every distinct account in
// accountIDs, each exactly once, inside the caller's atomic unit.
func recalculateAll(ctx context.Context, tx Tx, tenantID int64, accountIDs []int64) error {
	seen := make(map[int64]struct{}, len(accountIDs))

	for _, id := range accountIDs {
		if _, done := seen[id]; done {
			continue
		}

		seen[id] = struct{}{}

		if _, err := tx.RecalculateBalance(ctx, tenantID, id); err != nil {
			return err
		}
	}

	return nil
}

// lineAccountIDs collects the account ids referenced by lines, in order,
// duplicates included. recalculateAll deduplicates.
func lineAccountIDs(lines []Line) []int64 {
	ids := make([]int64, len(lines))
	for i, l := range lines {
		ids[i] = l.AccountID
	}

	return ids
}
