package ledger_test

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tidybooks/tidybooks/internal/ledger"
)

// memoryStore implements ledger.Repository and ledger.Tx over plain maps.
// WithTx snapshots both maps and restores them when fn fails, so rollback
// semantics match the real store. Not safe for concurrent use; tests are
// single-goroutine.
type memoryStore struct {
	nextAccountID int64
	nextTxID      int64
	nextLineID    int64

	accounts     map[int64]*ledger.Account
	transactions map[int64]*ledger.Transaction
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		accounts:     make(map[int64]*ledger.Account),
		transactions: make(map[int64]*ledger.Transaction),
	}
}

func (m *memoryStore) WithTx(ctx context.Context, fn func(ledger.Tx) error) error {
	accounts := make(map[int64]*ledger.Account, len(m.accounts))
	for id, a := range m.accounts {
		accounts[id] = copyAccount(a)
	}

	transactions := make(map[int64]*ledger.Transaction, len(m.transactions))
	for id, t := range m.transactions {
		transactions[id] = copyTransaction(t)
	}

	if err := fn(m); err != nil {
		m.accounts = accounts
		m.transactions = transactions

		return err
	}

	return nil
}

func copyAccount(a *ledger.Account) *ledger.Account {
	cp := *a
	if a.Subtype != nil {
		sub := *a.Subtype
		cp.Subtype = &sub
	}

	return &cp
}

func copyTransaction(t *ledger.Transaction) *ledger.Transaction {
	cp := *t

	if t.CustomerID != nil {
		cid := *t.CustomerID
		cp.CustomerID = &cid
	}

	if t.DeletedAt != nil {
		del := *t.DeletedAt
		cp.DeletedAt = &del
	}

	cp.Lines = append([]ledger.Line(nil), t.Lines...)

	return &cp
}

func (m *memoryStore) GetAccount(_ context.Context, tenantID, id int64) (*ledger.Account, error) {
	a, ok := m.accounts[id]
	if !ok || a.TenantID != tenantID {
		return nil, ledger.ErrAccountNotFound
	}

	return copyAccount(a), nil
}

func (m *memoryStore) ListAccounts(_ context.Context, tenantID int64, registerOnly bool) ([]*ledger.Account, error) {
	var out []*ledger.Account

	for _, a := range m.accounts {
		if a.TenantID != tenantID {
			continue
		}

		if registerOnly && (a.Subtype == nil ||
			(*a.Subtype != ledger.SubtypeBank && *a.Subtype != ledger.SubtypeCreditCard)) {
			continue
		}

		out = append(out, copyAccount(a))
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (m *memoryStore) CreateAccount(_ context.Context, a *ledger.Account) error {
	m.nextAccountID++
	a.ID = m.nextAccountID
	a.CreatedAt = time.Now().UTC()
	m.accounts[a.ID] = copyAccount(a)

	return nil
}

func (m *memoryStore) UpdateAccount(_ context.Context, a *ledger.Account) error {
	existing, ok := m.accounts[a.ID]
	if !ok || existing.TenantID != a.TenantID {
		return ledger.ErrAccountNotFound
	}

	m.accounts[a.ID] = copyAccount(a)

	return nil
}

func (m *memoryStore) DeleteAccount(_ context.Context, tenantID, id int64) error {
	a, ok := m.accounts[id]
	if !ok || a.TenantID != tenantID {
		return ledger.ErrAccountNotFound
	}

	for _, t := range m.transactions {
		for _, l := range t.Lines {
			if l.AccountID == id {
				return ledger.ErrAccountInUse
			}
		}
	}

	delete(m.accounts, id)

	return nil
}

func (m *memoryStore) FindAccountByName(_ context.Context, tenantID int64, name string, typ ledger.AccountType) (*ledger.Account, error) {
	for _, a := range m.accounts {
		if a.TenantID == tenantID && a.Name == name && a.Type == typ {
			return copyAccount(a), nil
		}
	}

	return nil, ledger.ErrAccountNotFound
}

func (m *memoryStore) GetTransaction(_ context.Context, tenantID, id int64) (*ledger.Transaction, error) {
	t, ok := m.transactions[id]
	if !ok || t.TenantID != tenantID {
		return nil, ledger.ErrTransactionNotFound
	}

	return copyTransaction(t), nil
}

func (m *memoryStore) CreateTransaction(_ context.Context, t *ledger.Transaction) error {
	m.nextTxID++
	t.ID = m.nextTxID
	t.CreatedAt = time.Now().UTC()

	for i := range t.Lines {
		m.nextLineID++
		t.Lines[i].ID = m.nextLineID
		t.Lines[i].TransactionID = t.ID
	}

	m.transactions[t.ID] = copyTransaction(t)

	return nil
}

func (m *memoryStore) UpdateTransactionHeader(_ context.Context, t *ledger.Transaction) error {
	existing, ok := m.transactions[t.ID]
	if !ok || existing.TenantID != t.TenantID {
		return ledger.ErrTransactionNotFound
	}

	existing.Date = t.Date
	existing.Sequence = t.Sequence
	existing.Payee = t.Payee
	existing.Description = t.Description
	existing.CustomerID = t.CustomerID

	now := time.Now().UTC()
	existing.UpdatedAt = &now

	return nil
}

func (m *memoryStore) ReplaceLines(_ context.Context, transactionID int64, lines []ledger.Line) error {
	t, ok := m.transactions[transactionID]
	if !ok {
		return ledger.ErrTransactionNotFound
	}

	t.Lines = t.Lines[:0]

	for _, l := range lines {
		m.nextLineID++
		l.ID = m.nextLineID
		l.TransactionID = transactionID
		t.Lines = append(t.Lines, l)
	}

	return nil
}

func (m *memoryStore) SetDeletedAt(_ context.Context, tenantID, id int64, deletedAt *time.Time) error {
	t, ok := m.transactions[id]
	if !ok || t.TenantID != tenantID {
		return ledger.ErrTransactionNotFound
	}

	t.DeletedAt = deletedAt

	return nil
}

func (m *memoryStore) MaxSequence(_ context.Context, tenantID int64, date time.Time) (int64, error) {
	var max int64

	for _, t := range m.transactions {
		if t.TenantID == tenantID && t.Date.Equal(date) && t.Sequence > max {
			max = t.Sequence
		}
	}

	return max, nil
}

func (m *memoryStore) ListActiveIDsOnDate(_ context.Context, tenantID int64, date time.Time, excludeID int64) ([]int64, error) {
	var txs []*ledger.Transaction

	for _, t := range m.transactions {
		if t.TenantID == tenantID && t.Date.Equal(date) && t.DeletedAt == nil && t.ID != excludeID {
			txs = append(txs, t)
		}
	}

	sort.Slice(txs, func(i, j int) bool {
		if txs[i].Sequence != txs[j].Sequence {
			return txs[i].Sequence < txs[j].Sequence
		}

		return txs[i].ID < txs[j].ID
	})

	ids := make([]int64, len(txs))
	for i, t := range txs {
		ids[i] = t.ID
	}

	return ids, nil
}

func (m *memoryStore) UpdateOrdering(_ context.Context, tenantID, id int64, date time.Time, sequence int64) error {
	t, ok := m.transactions[id]
	if !ok || t.TenantID != tenantID {
		return ledger.ErrTransactionNotFound
	}

	t.Date = date
	t.Sequence = sequence

	return nil
}

func (m *memoryStore) ListTransactionsByAccount(_ context.Context, tenantID, accountID int64, ascending bool) ([]*ledger.Transaction, error) {
	var out []*ledger.Transaction

	for _, t := range m.transactions {
		if t.TenantID != tenantID || t.DeletedAt != nil {
			continue
		}

		for _, l := range t.Lines {
			if l.AccountID == accountID {
				out = append(out, m.annotated(t))
				break
			}
		}
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if ascending {
			a, b = b, a
		}

		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}

		if a.Sequence != b.Sequence {
			return a.Sequence > b.Sequence
		}

		return a.ID > b.ID
	})

	return out, nil
}

// annotated returns a copy with line account names and types filled in,
// like the store's JOIN does.
func (m *memoryStore) annotated(t *ledger.Transaction) *ledger.Transaction {
	cp := copyTransaction(t)
	for i, l := range cp.Lines {
		if a, ok := m.accounts[l.AccountID]; ok {
			cp.Lines[i].AccountName = a.Name
			cp.Lines[i].AccountType = a.Type
		}
	}

	return cp
}

func (m *memoryStore) RecalculateBalance(_ context.Context, tenantID, accountID int64) (decimal.Decimal, error) {
	a, ok := m.accounts[accountID]
	if !ok || a.TenantID != tenantID {
		return decimal.Zero, ledger.ErrAccountNotFound
	}

	sum := decimal.Zero

	for _, t := range m.transactions {
		if t.TenantID != tenantID || t.DeletedAt != nil {
			continue
		}

		for _, l := range t.Lines {
			if l.AccountID == accountID {
				sum = sum.Add(l.Amount)
			}
		}
	}

	a.CachedBalance = sum

	return sum, nil
}

func (m *memoryStore) SumBalancesByType(_ context.Context, tenantID int64, typ ledger.AccountType) (decimal.Decimal, error) {
	sum := decimal.Zero

	for _, a := range m.accounts {
		if a.TenantID == tenantID && a.Type == typ {
			sum = sum.Add(a.CachedBalance)
		}
	}

	return sum, nil
}

func (m *memoryStore) SumLineAmountsByType(_ context.Context, tenantID int64, typ ledger.AccountType) (decimal.Decimal, error) {
	sum := decimal.Zero

	for _, t := range m.transactions {
		if t.TenantID != tenantID || t.DeletedAt != nil {
			continue
		}

		for _, l := range t.Lines {
			a, ok := m.accounts[l.AccountID]
			if ok && a.Type == typ {
				sum = sum.Add(l.Amount.Abs())
			}
		}
	}

	return sum, nil
}
