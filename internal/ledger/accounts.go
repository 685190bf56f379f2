package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tidybooks/tidybooks/internal/auth"
)

// openingBalanceAccountName is the per-tenant equity account that absorbs
// the balancing entry when a register account starts with a nonzero
// balance.
const openingBalanceAccountName = "Opening Balance Equity"

// CreateAccountParams describes a new register account as entered in the
// UI: a name, a register kind and an optional starting balance.
type CreateAccountParams struct {
	Name           string
	UIType         Subtype
	InitialBalance decimal.Decimal
}

// ListAccounts returns the tenant's register accounts (Bank, Credit Card).
func (s *Service) ListAccounts(ctx context.Context, rc auth.RequestContext) ([]*Account, error) {
	return s.repo.ListAccounts(ctx, rc.TenantID, true)
}

// GetAccount returns one account scoped to the tenant.
func (s *Service) GetAccount(ctx context.Context, rc auth.RequestContext, id int64) (*Account, error) {
	return s.repo.GetAccount(ctx, rc.TenantID, id)
}

// CreateAccount creates a register account. A nonzero initial balance is
// posted as a regular two-line "Opening Balance" transaction against the
// tenant's Opening Balance Equity account; there is no path that writes a
// cached balance directly.
func (s *Service) CreateAccount(ctx context.Context, rc auth.RequestContext, params CreateAccountParams) (*Account, error) {
	if params.Name == "" {
		return nil, validationf("account name is required")
	}

	var accountType AccountType

	switch params.UIType {
	case SubtypeBank:
		accountType = TypeAsset
	case SubtypeCreditCard:
		accountType = TypeLiability
	default:
		return nil, validationf("account type must be %q or %q, got %q", SubtypeBank, SubtypeCreditCard, params.UIType)
	}

	subtype := params.UIType
	account := &Account{
		TenantID: rc.TenantID,
		Name:     params.Name,
		Type:     accountType,
		Subtype:  &subtype,
	}

	err := s.repo.WithTx(ctx, func(tx Tx) error {
		if err := tx.CreateAccount(ctx, account); err != nil {
			return err
		}

		if params.InitialBalance.IsZero() {
			return nil
		}

		equity, err := s.findOrCreateOpeningBalanceAccount(ctx, tx, rc.TenantID)
		if err != nil {
			return err
		}

		// Debit-positive: a positive user-entered Liability balance means
		// "I owe this much", a credit, hence negated.
		mainAmount := params.InitialBalance
		if accountType == TypeLiability {
			mainAmount = mainAmount.Neg()
		}

		date := dayOf(s.now().UTC())

		maxSeq, err := tx.MaxSequence(ctx, rc.TenantID, date)
		if err != nil {
			return err
		}

		opening := &Transaction{
			TenantID: rc.TenantID,
			Date:     date,
			Sequence: maxSeq + 1,
			Payee:    "Opening Balance",
			Lines: []Line{
				{AccountID: account.ID, Amount: mainAmount},
				{AccountID: equity.ID, Amount: mainAmount.Neg()},
			},
		}

		if err := checkBalanced(opening.Lines); err != nil {
			return err
		}

		if err := tx.CreateTransaction(ctx, opening); err != nil {
			return err
		}

		return recalculateAll(ctx, tx, rc.TenantID, []int64{account.ID, equity.ID})
	})
	if err != nil {
		return nil, err
	}

	return s.repo.GetAccount(ctx, rc.TenantID, account.ID)
}

func (s *Service) findOrCreateOpeningBalanceAccount(ctx context.Context, tx Tx, tenantID int64) (*Account, error) {
	equity, err := tx.FindAccountByName(ctx, tenantID, openingBalanceAccountName, TypeEquity)
	if err == nil {
		return equity, nil
	}

	if !IsNotFound(err) {
		return nil, err
	}

	equity = &Account{
		TenantID: tenantID,
		Name:     openingBalanceAccountName,
		Type:     TypeEquity,
	}
	if err := tx.CreateAccount(ctx, equity); err != nil {
		return nil, err
	}

	return equity, nil
}

// DeleteAccount removes an account with no transaction lines. The store's
// foreign key keeps referenced accounts alive; that surfaces as
// ErrAccountInUse.
func (s *Service) DeleteAccount(ctx context.Context, rc auth.RequestContext, id int64) error {
	return s.repo.WithTx(ctx, func(tx Tx) error {
		if _, err := tx.GetAccount(ctx, rc.TenantID, id); err != nil {
			return err
		}

		return tx.DeleteAccount(ctx, rc.TenantID, id)
	})
}

// ListChartOfAccounts returns every account of the tenant, registers and
// categories alike.
func (s *Service) ListChartOfAccounts(ctx context.Context, rc auth.RequestContext) ([]*Account, error) {
	return s.repo.ListAccounts(ctx, rc.TenantID, false)
}

// CreateCategory creates a plain chart-of-accounts entry of any type.
func (s *Service) CreateCategory(ctx context.Context, rc auth.RequestContext, name string, typ AccountType) (*Account, error) {
	if name == "" {
		return nil, validationf("category name is required")
	}

	if !ValidType(typ) {
		return nil, validationf("invalid account type %q", typ)
	}

	account := &Account{
		TenantID: rc.TenantID,
		Name:     name,
		Type:     typ,
	}

	err := s.repo.WithTx(ctx, func(tx Tx) error {
		return tx.CreateAccount(ctx, account)
	})
	if err != nil {
		return nil, err
	}

	return account, nil
}

// UpdateCategory renames or retypes a chart-of-accounts entry.
func (s *Service) UpdateCategory(ctx context.Context, rc auth.RequestContext, id int64, name string, typ AccountType) (*Account, error) {
	if name == "" {
		return nil, validationf("category name is required")
	}

	if !ValidType(typ) {
		return nil, validationf("invalid account type %q", typ)
	}

	var updated *Account

	err := s.repo.WithTx(ctx, func(tx Tx) error {
		account, err := tx.GetAccount(ctx, rc.TenantID, id)
		if err != nil {
			return err
		}

		account.Name = name
		account.Type = typ

		if err := tx.UpdateAccount(ctx, account); err != nil {
			return err
		}

		updated = account

		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}
