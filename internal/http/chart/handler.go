package chart

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
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type categoryResponse struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Subtype   *string         `json:"subtype,omitempty"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
}

func toResponse(a *ledger.Account) categoryResponse {
	resp := categoryResponse{
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

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	rc, ok := auth.FromContext(r.Context())
	if !ok || rc.TenantID == 0 {
		respond.Message(w, http.StatusBadRequest, "tenant id required")
		return
	}

	accounts, err := h.svc.ListChartOfAccounts(r.Context(), rc)
	if err != nil {
		respond.Error(w, err)
		return
	}

	resp := make([]categoryResponse, len(accounts))
	for i, a := range accounts {
		resp[i] = toResponse(a)
	}

	respond.JSON(w, http.StatusOK, resp)
}

type categoryRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	rc, ok := auth.FromContext(r.Context())
	if !ok || rc.TenantID == 0 {
		respond.Message(w, http.StatusBadRequest, "tenant id required")
		return
	}

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	account, err := h.svc.CreateCategory(r.Context(), rc, req.Name, ledger.AccountType(req.Type))
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(account))
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

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	account, err := h.svc.UpdateCategory(r.Context(), rc, id, req.Name, ledger.AccountType(req.Type))
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
