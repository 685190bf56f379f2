package ledger

import "github.com/shopspring/decimal"

// Direction is the user-facing label for a transaction relative to the
// account whose register it is viewed in. It describes cash flow, not raw
// sign: Deposit means the main line is a debit (positive), Payment a credit
// (negative), for Asset and Liability registers alike. On a credit card
// that makes "Deposit" a paydown and "Payment" a charge.
type Direction string

const (
	DirectionPayment Direction = "Payment"
	DirectionDeposit Direction = "Deposit"
)

// SplitInput is a category leg as entered by the user: an unsigned amount
// against a chart-of-accounts entry. The resolver chooses the sign.
type SplitInput struct {
	AccountID int64
	Amount    decimal.Decimal
}

// ResolveLines maps user input to a balanced, signed line set. The main
// line takes the full amount, signed by direction; every split takes the
// opposite sign, so the set sums to zero by construction.
func ResolveLines(mainAccountID int64, amount decimal.Decimal, dir Direction, splits []SplitInput) ([]Line, error) {
	if amount.Sign() <= 0 {
		return nil, validationf("amount must be positive, got %s", amount)
	}

	if dir != DirectionPayment && dir != DirectionDeposit {
		return nil, validationf("type must be %q or %q, got %q", DirectionPayment, DirectionDeposit, dir)
	}

	if len(splits) == 0 {
		return nil, validationf("at least one split is required")
	}

	mainAmount := amount.Abs()
	if dir == DirectionPayment {
		mainAmount = mainAmount.Neg()
	}

	splitSign := decimal.NewFromInt(1)
	if mainAmount.IsPositive() {
		splitSign = splitSign.Neg()
	}

	lines := make([]Line, 0, len(splits)+1)
	lines = append(lines, Line{AccountID: mainAccountID, Amount: mainAmount})

	for _, s := range splits {
		if s.Amount.Sign() <= 0 {
			return nil, validationf("split amount must be positive, got %s", s.Amount)
		}

		lines = append(lines, Line{AccountID: s.AccountID, Amount: s.Amount.Abs().Mul(splitSign)})
	}

	if !sumLines(lines).IsZero() {
		return nil, validationf("lines do not balance: sum is %s", sumLines(lines))
	}

	return lines, nil
}

// DirectionForAmount is the inverse mapping used for display: the stored
// signed amount of the main line determines the label, uniformly for every
// account type.
func DirectionForAmount(amount decimal.Decimal) Direction {
	if amount.Sign() > 0 {
		return DirectionDeposit
	}

	return DirectionPayment
}
