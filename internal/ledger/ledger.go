package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies an account within the chart of accounts.
type AccountType string

const (
	TypeAsset     AccountType = "Asset"
	TypeLiability AccountType = "Liability"
	TypeEquity    AccountType = "Equity"
	TypeIncome    AccountType = "Income"
	TypeExpense   AccountType = "Expense"
)

// ValidType reports whether t is one of the five account types.
func ValidType(t AccountType) bool {
	switch t {
	case TypeAsset, TypeLiability, TypeEquity, TypeIncome, TypeExpense:
		return true
	}

	return false
}

// Subtype marks register accounts, the ones shown on the dashboard with
// their own transaction register. Accounts without a subtype are plain
// categories.
type Subtype string

const (
	SubtypeBank       Subtype = "Bank"
	SubtypeCreditCard Subtype = "Credit Card"
)

// Account is a node in the chart of accounts. CachedBalance is derived:
// it always equals the sum of line amounts over the account's non-deleted
// transactions and is only ever written by balance recalculation.
type Account struct {
	ID            int64
	TenantID      int64
	Name          string
	Type          AccountType
	Subtype       *Subtype
	CachedBalance decimal.Decimal
	CreatedAt     time.Time
}

// Line is one signed leg of a transaction. Debit is stored positive,
// credit negative, for every account type.
type Line struct {
	ID            int64
	TransactionID int64
	AccountID     int64
	Amount        decimal.Decimal

	// Populated on reads via JOIN, never persisted from here.
	AccountName string
	AccountType AccountType
}

// Transaction is a balanced set of lines posted on a calendar date.
// Sequence orders transactions sharing a date; DeletedAt implements
// soft delete.
type Transaction struct {
	ID          int64
	TenantID    int64
	Date        time.Time
	Sequence    int64
	Payee       string
	Description string
	CustomerID  *int64
	Lines       []Line
	DeletedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// Deleted reports whether the transaction is soft-deleted.
func (t *Transaction) Deleted() bool { return t.DeletedAt != nil }

// SplitView is a category leg of a transaction as shown in a register,
// with the sign stripped.
type SplitView struct {
	AccountID   int64
	AccountName string
	AccountType AccountType
	Amount      decimal.Decimal
}

// TransactionView is a transaction as seen from one account's register:
// a direction and an absolute amount relative to that account, with the
// remaining legs exposed as splits.
type TransactionView struct {
	ID          int64
	Date        time.Time
	Sequence    int64
	Payee       string
	Description string
	CustomerID  *int64
	AccountID   int64
	Amount      decimal.Decimal
	Type        Direction
	Splits      []SplitView
}

// BalanceSheet aggregates cached balances by type. Liabilities and equity
// are reported as absolute values.
type BalanceSheet struct {
	Assets      decimal.Decimal
	Liabilities decimal.Decimal
	Equity      decimal.Decimal
}

// ProfitLoss aggregates income and expense line amounts over active
// transactions.
type ProfitLoss struct {
	Income    decimal.Decimal
	Expenses  decimal.Decimal
	NetIncome decimal.Decimal
}

// dayOf truncates t to its calendar date in UTC. Sequences are scoped to
// (tenant, day), so every stored date goes through this.
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// sumLines adds up the signed line amounts with exact decimal arithmetic.
func sumLines(lines []Line) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Amount)
	}

	return sum
}
