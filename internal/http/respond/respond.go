// Package respond writes JSON responses and maps domain errors to HTTP
// status codes.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/tidybooks/tidybooks/internal/customer"
	"github.com/tidybooks/tidybooks/internal/ledger"
	"github.com/tidybooks/tidybooks/internal/tenant"
)

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"error": msg})
}

// Error maps the four error kinds: validation 400, not found 404, lifecycle
// conflicts 409, everything else a generic 500. Not-found deliberately says
// nothing about whether the entity exists under another tenant.
func Error(w http.ResponseWriter, err error) {
	var ve *ledger.ValidationError

	switch {
	case errors.As(err, &ve):
		Message(w, http.StatusBadRequest, ve.Msg)
	case ledger.IsNotFound(err),
		errors.Is(err, customer.ErrNotFound),
		errors.Is(err, tenant.ErrNotFound):
		Message(w, http.StatusNotFound, err.Error())
	case ledger.IsConflict(err), errors.Is(err, customer.ErrInUse):
		Message(w, http.StatusConflict, err.Error())
	default:
		slog.Error("request failed", "error", err)
		Message(w, http.StatusInternalServerError, "internal error")
	}
}
