package report

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/tidybooks/tidybooks/internal/auth"
	"github.com/tidybooks/tidybooks/internal/http/respond"
	"github.com/tidybooks/tidybooks/internal/ledger"
)

type Handler struct {
	svc *ledger.Service
}

func NewHandler(svc *ledger.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/balance-sheet", h.balanceSheet)
	r.Get("/profit-loss", h.profitLoss)
}

type balanceSheetResponse struct {
	Assets      decimal.Decimal `json:"assets"`
	Liabilities decimal.Decimal `json:"liabilities"`
	Equity      decimal.Decimal `json:"equity"`
}

func (h *Handler) balanceSheet(w http.ResponseWriter, r *http.Request) {
	rc, ok := auth.FromContext(r.Context())
	if !ok || rc.TenantID == 0 {
		respond.Message(w, http.StatusBadRequest, "tenant id required")
		return
	}

	bs, err := h.svc.GetBalanceSheet(r.Context(), rc)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, balanceSheetResponse{
		Assets:      bs.Assets,
		Liabilities: bs.Liabilities,
		Equity:      bs.Equity,
	})
}

type profitLossResponse struct {
	Income    decimal.Decimal `json:"income"`
	Expenses  decimal.Decimal `json:"expenses"`
	NetIncome decimal.Decimal `json:"net_income"`
}

func (h *Handler) profitLoss(w http.ResponseWriter, r *http.Request) {
	rc, ok := auth.FromContext(r.Context())
	if !ok || rc.TenantID == 0 {
		respond.Message(w, http.StatusBadRequest, "tenant id required")
		return
	}

	pl, err := h.svc.GetProfitLoss(r.Context(), rc)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, profitLossResponse{
		Income:    pl.Income,
		Expenses:  pl.Expenses,
		NetIncome: pl.NetIncome,
	})
}
