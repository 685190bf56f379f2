package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidybooks/tidybooks/internal/ledger"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestResolveLines(t *testing.T) {
	type args struct {
		mainAccountID int64
		amount        decimal.Decimal
		dir           ledger.Direction
		splits        []ledger.SplitInput
	}

	type testCase struct {
		name        string
		args        args
		wantAmounts []string
		wantErr     bool
	}

	tests := []testCase{
		{
			name: "DepositMainPositiveSplitsNegative",
			args: args{
				mainAccountID: 1,
				amount:        d("100.00"),
				dir:           ledger.DirectionDeposit,
				splits:        []ledger.SplitInput{{AccountID: 2, Amount: d("100.00")}},
			},
			wantAmounts: []string{"100", "-100"},
		},
		{
			name: "PaymentMainNegativeSplitsPositive",
			args: args{
				mainAccountID: 1,
				amount:        d("42.50"),
				dir:           ledger.DirectionPayment,
				splits:        []ledger.SplitInput{{AccountID: 2, Amount: d("42.50")}},
			},
			wantAmounts: []string{"-42.5", "42.5"},
		},
		{
			name: "MultipleSplitsBalanceAgainstMain",
			args: args{
				mainAccountID: 1,
				amount:        d("150.00"),
				dir:           ledger.DirectionPayment,
				splits: []ledger.SplitInput{
					{AccountID: 2, Amount: d("100.00")},
					{AccountID: 3, Amount: d("50.00")},
				},
			},
			wantAmounts: []string{"-150", "100", "50"},
		},
		{
			name: "ZeroAmountRejected",
			args: args{
				mainAccountID: 1,
				amount:        decimal.Zero,
				dir:           ledger.DirectionDeposit,
				splits:        []ledger.SplitInput{{AccountID: 2, Amount: d("1")}},
			},
			wantErr: true,
		},
		{
			name: "NegativeAmountRejected",
			args: args{
				mainAccountID: 1,
				amount:        d("-5"),
				dir:           ledger.DirectionDeposit,
				splits:        []ledger.SplitInput{{AccountID: 2, Amount: d("5")}},
			},
			wantErr: true,
		},
		{
			name: "UnknownDirectionRejected",
			args: args{
				mainAccountID: 1,
				amount:        d("10"),
				dir:           ledger.Direction("Transfer"),
				splits:        []ledger.SplitInput{{AccountID: 2, Amount: d("10")}},
			},
			wantErr: true,
		},
		{
			name: "NoSplitsRejected",
			args: args{
				mainAccountID: 1,
				amount:        d("10"),
				dir:           ledger.DirectionDeposit,
			},
			wantErr: true,
		},
		{
			name: "NegativeSplitRejected",
			args: args{
				mainAccountID: 1,
				amount:        d("10"),
				dir:           ledger.DirectionDeposit,
				splits:        []ledger.SplitInput{{AccountID: 2, Amount: d("-10")}},
			},
			wantErr: true,
		},
		{
			name: "UnbalancedSplitsRejected",
			args: args{
				mainAccountID: 1,
				amount:        d("100"),
				dir:           ledger.DirectionDeposit,
				splits:        []ledger.SplitInput{{AccountID: 2, Amount: d("60")}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, err := ledger.ResolveLines(tt.args.mainAccountID, tt.args.amount, tt.args.dir, tt.args.splits)

			if tt.wantErr {
				require.Error(t, err)

				var verr *ledger.ValidationError
				assert.ErrorAs(t, err, &verr)

				return
			}

			require.NoError(t, err)
			require.Len(t, lines, len(tt.wantAmounts))

			sum := decimal.Zero
			for i, l := range lines {
				assert.True(t, l.Amount.Equal(d(tt.wantAmounts[i])),
					"line %d: want %s, got %s", i, tt.wantAmounts[i], l.Amount)
				sum = sum.Add(l.Amount)
			}

			assert.True(t, sum.IsZero(), "lines must sum to zero, got %s", sum)
			assert.Equal(t, tt.args.mainAccountID, lines[0].AccountID)
		})
	}
}

// The direction-to-sign mapping does not depend on the account type: a
// Deposit debits the main account whether it is a bank account or a credit
// card. The register label round-trips through the stored sign.
func TestDirectionRoundTrip(t *testing.T) {
	for _, dir := range []ledger.Direction{ledger.DirectionDeposit, ledger.DirectionPayment} {
		lines, err := ledger.ResolveLines(1, d("25"), dir, []ledger.SplitInput{{AccountID: 2, Amount: d("25")}})
		require.NoError(t, err)

		assert.Equal(t, dir, ledger.DirectionForAmount(lines[0].Amount))
	}
}

func TestDirectionForAmount(t *testing.T) {
	assert.Equal(t, ledger.DirectionDeposit, ledger.DirectionForAmount(d("0.01")))
	assert.Equal(t, ledger.DirectionPayment, ledger.DirectionForAmount(d("-0.01")))
	assert.Equal(t, ledger.DirectionPayment, ledger.DirectionForAmount(decimal.Zero))
}
