package transaction

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tidybooks/tidybooks/internal/ledger"
)

type lineResponse struct {
	ID        int64           `json:"id"`
	AccountID int64           `json:"account_id"`
	Amount    decimal.Decimal `json:"amount"`
}

type transactionResponse struct {
	ID          int64          `json:"id"`
	Date        string         `json:"date"`
	Sequence    int64          `json:"sequence"`
	Payee       string         `json:"payee"`
	Description string         `json:"description"`
	CustomerID  *int64         `json:"customer_id,omitempty"`
	Lines       []lineResponse `json:"lines"`
	DeletedAt   *time.Time     `json:"deleted_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   *time.Time     `json:"updated_at,omitempty"`
}

func toResponse(t *ledger.Transaction) transactionResponse {
	lines := make([]lineResponse, len(t.Lines))
	for i, l := range t.Lines {
		lines[i] = lineResponse{ID: l.ID, AccountID: l.AccountID, Amount: l.Amount}
	}

	return transactionResponse{
		ID:          t.ID,
		Date:        t.Date.Format(time.DateOnly),
		Sequence:    t.Sequence,
		Payee:       t.Payee,
		Description: t.Description,
		CustomerID:  t.CustomerID,
		Lines:       lines,
		DeletedAt:   t.DeletedAt,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
