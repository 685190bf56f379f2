package tenant

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tidybooks/tidybooks/internal/http/respond"
	"github.com/tidybooks/tidybooks/internal/tenant"
)

type Handler struct {
	svc *tenant.Service
}

func NewHandler(svc *tenant.Service) *Handler {
	return &Handler{svc: svc}
}

// Routes are reachable without an X-Tenant-Id header: they are how a
// tenant scope comes to exist in the first place.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
}

type tenantResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func toResponse(t *tenant.Tenant) tenantResponse {
	return tenantResponse{ID: t.ID, Name: t.Name, CreatedAt: t.CreatedAt}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	tenants, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	resp := make([]tenantResponse, len(tenants))
	for i, t := range tenants {
		resp[i] = toResponse(t)
	}

	respond.JSON(w, http.StatusOK, resp)
}

type createTenantRequest struct {
	Name string `json:"name"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Name == "" {
		respond.Message(w, http.StatusBadRequest, "tenant name is required")
		return
	}

	t, err := h.svc.Create(r.Context(), req.Name)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(t))
}
