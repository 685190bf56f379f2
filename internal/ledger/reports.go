package ledger

import (
	"context"

	"github.com/tidybooks/tidybooks/internal/auth"
)

// GetBalanceSheet sums cached balances by account type. Liability and
// equity balances are credit-normal (stored negative) and reported as
// absolute values.
func (s *Service) GetBalanceSheet(ctx context.Context, rc auth.RequestContext) (*BalanceSheet, error) {
	assets, err := s.repo.SumBalancesByType(ctx, rc.TenantID, TypeAsset)
	if err != nil {
		return nil, err
	}

	liabilities, err := s.repo.SumBalancesByType(ctx, rc.TenantID, TypeLiability)
	if err != nil {
		return nil, err
	}

	equity, err := s.repo.SumBalancesByType(ctx, rc.TenantID, TypeEquity)
	if err != nil {
		return nil, err
	}

	return &BalanceSheet{
		Assets:      assets,
		Liabilities: liabilities.Abs(),
		Equity:      equity.Abs(),
	}, nil
}

// GetProfitLoss sums income and expense line amounts over active
// transactions.
func (s *Service) GetProfitLoss(ctx context.Context, rc auth.RequestContext) (*ProfitLoss, error) {
	income, err := s.repo.SumLineAmountsByType(ctx, rc.TenantID, TypeIncome)
	if err != nil {
		return nil, err
	}

	expenses, err := s.repo.SumLineAmountsByType(ctx, rc.TenantID, TypeExpense)
	if err != nil {
		return nil, err
	}

	return &ProfitLoss{
		Income:    income,
		Expenses:  expenses,
		NetIncome: income.Sub(expenses),
	}, nil
}
