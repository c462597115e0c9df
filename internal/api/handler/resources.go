package handler

import (
	"encoding/json"
	"net/http"

	"github.com/frankenpanel/frankenpanel/internal/api/request"
	"github.com/frankenpanel/frankenpanel/internal/api/response"
	"github.com/frankenpanel/frankenpanel/internal/services/panel"
	"github.com/frankenpanel/frankenpanel/internal/storage"
)

// ResourceHandler handles site child resources: databases, domains, backups
type ResourceHandler struct {
	panelService *panel.Service
	storage      storage.Storage
}

// NewResourceHandler creates a new resource handler
func NewResourceHandler(panelService *panel.Service, storage storage.Storage) *ResourceHandler {
	return &ResourceHandler{
		panelService: panelService,
		storage:      storage,
	}
}

// Databases

// ListDatabases handles GET /api/v1/databases
func (h *ResourceHandler) ListDatabases(w http.ResponseWriter, r *http.Request) {
	siteID, err := siteIDFilter(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	dbs, err := h.storage.ListDatabases(r.Context(), siteID)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.DatabasesFromModel(dbs))
}

// CreateDatabase handles POST /api/v1/databases
func (h *ResourceHandler) CreateDatabase(w http.ResponseWriter, r *http.Request) {
	var req request.CreateDatabaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.SiteID <= 0 {
		WriteError(w, NewInvalidRequestError("site_id is required"))
		return
	}
	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}

	db, err := h.panelService.CreateDatabase(r.Context(), req.SiteID, req.Name)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.DatabaseFromModel(db))
}

// DeleteDatabase handles DELETE /api/v1/databases/{id}
func (h *ResourceHandler) DeleteDatabase(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if _, err := h.storage.GetDatabase(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}
	if err := h.storage.DeleteDatabase(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// Domains

// ListDomains handles GET /api/v1/domains
func (h *ResourceHandler) ListDomains(w http.ResponseWriter, r *http.Request) {
	siteID, err := siteIDFilter(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	domains, err := h.storage.ListDomains(r.Context(), siteID)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.DomainsFromModel(domains))
}

// CreateDomain handles POST /api/v1/domains
func (h *ResourceHandler) CreateDomain(w http.ResponseWriter, r *http.Request) {
	var req request.CreateDomainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.SiteID <= 0 {
		WriteError(w, NewInvalidRequestError("site_id is required"))
		return
	}
	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}

	domain, err := h.panelService.CreateDomain(r.Context(), req.SiteID, req.Name, req.IsPrimary)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.DomainFromModel(domain))
}

// DeleteDomain handles DELETE /api/v1/domains/{id}
func (h *ResourceHandler) DeleteDomain(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if _, err := h.storage.GetDomain(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}
	if err := h.storage.DeleteDomain(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// Backups

// ListBackups handles GET /api/v1/backups
func (h *ResourceHandler) ListBackups(w http.ResponseWriter, r *http.Request) {
	siteID, err := siteIDFilter(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	backups, err := h.storage.ListBackups(r.Context(), siteID)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.BackupsFromModel(backups))
}

// CreateBackup handles POST /api/v1/backups
func (h *ResourceHandler) CreateBackup(w http.ResponseWriter, r *http.Request) {
	var req request.CreateBackupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.SiteID <= 0 {
		WriteError(w, NewInvalidRequestError("site_id is required"))
		return
	}

	backup, err := h.panelService.CreateBackup(r.Context(), req.SiteID)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.BackupFromModel(backup))
}

// RestoreBackup handles POST /api/v1/backups/{id}/restore
func (h *ResourceHandler) RestoreBackup(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	backup, err := h.panelService.RestoreBackup(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.BackupFromModel(backup))
}

// DeleteBackup handles DELETE /api/v1/backups/{id}
func (h *ResourceHandler) DeleteBackup(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if _, err := h.storage.GetBackup(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}
	if err := h.storage.DeleteBackup(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}
