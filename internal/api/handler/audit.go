package handler

import (
	"net/http"
	"strconv"

	"github.com/frankenpanel/frankenpanel/internal/api/response"
	"github.com/frankenpanel/frankenpanel/internal/storage"
)

const defaultAuditLimit = 100

// AuditHandler handles audit log endpoints
type AuditHandler struct {
	storage storage.Storage
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(storage storage.Storage) *AuditHandler {
	return &AuditHandler{
		storage: storage,
	}
}

// List handles GET /api/v1/audit
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := defaultAuditLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			WriteError(w, NewInvalidRequestError("invalid limit"))
			return
		}
		limit = n
	}

	entries, err := h.storage.ListAuditEntries(r.Context(), limit)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.AuditEntriesFromModel(entries))
}
