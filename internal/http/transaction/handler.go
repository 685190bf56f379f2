package transaction

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
	r.Post("/", h.create)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/restore", h.restore)
	r.Put("/{id}/reorder", h.reorder)
}

type splitRequest struct {
	AccountID int64           `json:"account_id"`
	Amount    decimal.Decimal `json:"amount"`
}

type transactionRequest struct {
	Date        string          `json:"date"`
	Payee       string          `json:"payee"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	AccountID   int64           `json:"account_id"`
	CustomerID  *int64          `json:"customer_id"`
	Splits      []splitRequest  `json:"splits"`
}

func (req *transactionRequest) toParams() (ledger.TransactionParams, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return ledger.TransactionParams{}, err
	}

	splits := make([]ledger.SplitInput, len(req.Splits))
	for i, s := range req.Splits {
		splits[i] = ledger.SplitInput{AccountID: s.AccountID, Amount: s.Amount}
	}

	return ledger.TransactionParams{
		Date:        date,
		Payee:       req.Payee,
		Description: req.Description,
		AccountID:   req.AccountID,
		Amount:      req.Amount,
		Type:        ledger.Direction(req.Type),
		CustomerID:  req.CustomerID,
		Splits:      splits,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}

	return time.Parse(time.RFC3339, s)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	rc, ok := auth.FromContext(r.Context())
	if !ok || rc.TenantID == 0 {
		respond.Message(w, http.StatusBadRequest, "tenant id required")
		return
	}

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	params, err := req.toParams()
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid date")
		return
	}

	tx, err := h.svc.CreateTransaction(r.Context(), rc, params)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(tx))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
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

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	params, err := req.toParams()
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid date")
		return
	}

	tx, err := h.svc.UpdateTransaction(r.Context(), rc, id, params)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(tx))
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

	if err := h.svc.SoftDeleteTransaction(r.Context(), rc, id); err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]string{"message": "transaction deleted"})
}

func (h *Handler) restore(w http.ResponseWriter, r *http.Request) {
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

	if err := h.svc.RestoreTransaction(r.Context(), rc, id); err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]string{"message": "transaction restored"})
}

type reorderRequest struct {
	Date string `json:"date"`

	// Position is the logical ascending index within the date group.
	// Clients showing a descending register convert their visual drop
	// index before calling.
	Position int `json:"position"`
}

func (h *Handler) reorder(w http.ResponseWriter, r *http.Request) {
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

	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "invalid date")
		return
	}

	if err := h.svc.ReorderTransaction(r.Context(), rc, id, date, req.Position); err != nil {
		respond.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
