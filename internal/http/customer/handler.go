package customer

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tidybooks/tidybooks/internal/auth"
	"github.com/tidybooks/tidybooks/internal/customer"
	"github.com/tidybooks/tidybooks/internal/http/respond"
)

type Handler struct {
	svc *customer.Service
}

func NewHandler(svc *customer.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type customerRequest struct {
	Name       string `json:"name"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	IsBusiness bool   `json:"is_business"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
}

func (req *customerRequest) toParams() customer.Params {
	return customer.Params{
		Name:       req.Name,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		IsBusiness: req.IsBusiness,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
	}
}

type customerResponse struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	FirstName  string    `json:"first_name,omitempty"`
	LastName   string    `json:"last_name,omitempty"`
	IsBusiness bool      `json:"is_business"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Address    string    `json:"address,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func toResponse(c *customer.Customer) customerResponse {
	return customerResponse{
		ID:         c.ID,
		Name:       c.Name,
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		IsBusiness: c.IsBusiness,
		Email:      c.Email,
		Phone:      c.Phone,
		Address:    c.Address,
		CreatedAt:  c.CreatedAt,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	rc, ok := auth.FromContext(r.Context())
	if !ok || rc.TenantID == 0 {
		respond.Message(w, http.StatusBadRequest, "tenant id required")
		return
	}

	customers, err := h.svc.List(r.Context(), rc)
	if err != nil {
		respond.Error(w, err)
		return
	}

	resp := make([]customerResponse, len(customers))
	for i, c := range customers {
		resp[i] = toResponse(c)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	rc, ok := auth.FromContext(r.Context())
	if !ok || rc.TenantID == 0 {
		respond.Message(w, http.StatusBadRequest, "tenant id required")
		return
	}

	var req customerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	c, err := h.svc.Create(r.Context(), rc, req.toParams())
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(c))
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

	var req customerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	c, err := h.svc.Update(r.Context(), rc, id, req.toParams())
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(c))
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

	if err := h.svc.Delete(r.Context(), rc, id); err != nil {
		respond.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
