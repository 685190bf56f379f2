package account

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

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
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
	r.Get("/{id}/transactions", h.listTransactions)
}

type accountResponse struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Subtype   *string         `json:"subtype,omitempty"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
}

func toResponse(a *ledger.Account) accountResponse {
	resp := accountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Type:      string(a.Type),
		Balance:   a.CachedBalance,
		CreatedAt: a.CreatedAt,
	}

	if a.Subtype != nil {
		s := string(*a.Subtype)
		resp.Subtype = &s
	}

	return resp
}

func toResponseList(accounts []*ledger.Account) []accountResponse {
	resp := make([]accountResponse, len(accounts))
	for i, a := range accounts {
		resp[i] = toResponse(a)
	}

	return resp
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	rc, ok := auth.FromContext(r.Context())
	if !ok || rc.TenantID == 0 {
		respond.Message(w, http.StatusBadRequest, "tenant id required")
		return
	}

	accounts, err := h.svc.ListAccounts(r.Context(), rc)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(accounts))
}

type createAccountRequest struct {
	Name    string          `json:"name"`
	Type    string          `json:"type"`
	Balance decimal.Decimal `json:"balance"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	rc, ok := auth.FromContext(r.Context())
	if !ok || rc.TenantID == 0 {
		respond.Message(w, http.StatusBadRequest, "tenant id required")
		return
	}

	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	account, err := h.svc.CreateAccount(r.Context(), rc, ledger.CreateAccountParams{
		Name:           req.Name,
		UIType:         ledger.Subtype(req.Type),
		InitialBalance: req.Balance,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(account))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	rc, ok := auth.FromContext(r.Context())
	if !ok || rc.TenantID == 0 {
		respond.Message(w, http.StatusBadRequest, "tenant id required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid id")
		return
	}

	account, err := h.svc.GetAccount(r.Context(), rc, id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(account))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	rc, ok := auth.FromContext(r.Context())
	if !ok || rc.TenantID == 0 {
		respond.Message(w, http.StatusBadRequest, "tenant id required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.svc.DeleteAccount(r.Context(), rc, id); err != nil {
		respond.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type splitView struct {
	AccountID   int64           `json:"account_id"`
	AccountName string          `json:"account_name"`
	Amount      decimal.Decimal `json:"amount"`
}

type transactionView struct {
	ID          int64           `json:"id"`
	Date        string          `json:"date"`
	Sequence    int64           `json:"sequence"`
	Payee       string          `json:"payee"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	AccountID   int64           `json:"account_id"`
	CustomerID  *int64          `json:"customer_id,omitempty"`
	Splits      []splitView     `json:"splits"`
}

func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	rc, ok := auth.FromContext(r.Context())
	if !ok || rc.TenantID == 0 {
		respond.Message(w, http.StatusBadRequest, "tenant id required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid id")
		return
	}

	ascending := r.URL.Query().Get("order") == "asc"

	views, err := h.svc.ListTransactions(r.Context(), rc, id, ascending)
	if err != nil {
		respond.Error(w, err)
		return
	}

	resp := make([]transactionView, len(views))

	for i, v := range views {
		splits := make([]splitView, len(v.Splits))
		for j, s := range v.Splits {
			splits[j] = splitView{AccountID: s.AccountID, AccountName: s.AccountName, Amount: s.Amount}
		}

		resp[i] = transactionView{
			ID:          v.ID,
			Date:        v.Date.Format(time.DateOnly),
			Sequence:    v.Sequence,
			Payee:       v.Payee,
			Description: v.Description,
			Amount:      v.Amount,
			Type:        string(v.Type),
			AccountID:   v.AccountID,
			CustomerID:  v.CustomerID,
			Splits:      splits,
		}
	}

	respond.JSON(w, http.StatusOK, resp)
}
