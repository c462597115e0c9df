package handler

import (
	"encoding/json"
	"net/http"

	"github.com/frankenpanel/frankenpanel/internal/api/middleware"
	"github.com/frankenpanel/frankenpanel/internal/api/request"
	"github.com/frankenpanel/frankenpanel/internal/api/response"
	"github.com/frankenpanel/frankenpanel/internal/model"
	"github.com/frankenpanel/frankenpanel/internal/services/panel"
	"github.com/frankenpanel/frankenpanel/internal/storage"
)

// SiteHandler handles site endpoints
type SiteHandler struct {
	panelService *panel.Service
	storage      storage.Storage
}

// NewSiteHandler creates a new site handler
func NewSiteHandler(panelService *panel.Service, storage storage.Storage) *SiteHandler {
	return &SiteHandler{
		panelService: panelService,
		storage:      storage,
	}
}

// List handles GET /api/v1/sites
func (h *SiteHandler) List(w http.ResponseWriter, r *http.Request) {
	sites, err := h.storage.ListSites(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.SitesFromModel(sites))
}

// Create handles POST /api/v1/sites
func (h *SiteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateSiteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}
	if req.Domain == "" {
		WriteError(w, NewInvalidRequestError("domain is required"))
		return
	}
	siteType := model.SiteType(req.SiteType)
	switch siteType {
	case model.SiteWordPress, model.SiteJoomla, model.SiteCustomPHP, model.SiteStatic:
	default:
		WriteError(w, NewInvalidRequestError("invalid site_type"))
		return
	}

	user := middleware.MustGetUser(r.Context())
	createDB := true
	if req.CreateDatabase != nil {
		createDB = *req.CreateDatabase
	}

	site, err := h.panelService.CreateSite(r.Context(), panel.CreateSiteParams{
		Name:           req.Name,
		SiteType:       siteType,
		Domain:         req.Domain,
		PHPVersion:     req.PHPVersion,
		Description:    req.Description,
		CreateDatabase: createDB,
		OwnerID:        &user.ID,
	})
	if err != nil {
		h.panelService.RecordAction(r.Context(), user, model.AuditSiteCreate, req.Name, false, err.Error())
		WriteError(w, err)
		return
	}

	h.panelService.RecordAction(r.Context(), user, model.AuditSiteCreate, site.Name, true, "")
	response.JSON(w, http.StatusCreated, response.SiteFromModel(site))
}

// Get handles GET /api/v1/sites/{id}
func (h *SiteHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	site, err := h.storage.GetSite(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.SiteFromModel(site))
}

// Update handles PUT /api/v1/sites/{id}
func (h *SiteHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var req request.UpdateSiteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	site, err := h.panelService.UpdateSite(r.Context(), id, panel.UpdateSiteParams{
		Name:        req.Name,
		PHPVersion:  req.PHPVersion,
		Description: req.Description,
	})
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.SiteFromModel(site))
}

// Delete handles DELETE /api/v1/sites/{id}
func (h *SiteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	user := middleware.MustGetUser(r.Context())
	if err := h.panelService.DeleteSite(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	h.panelService.RecordAction(r.Context(), user, model.AuditSiteDelete, "", true, "")
	response.NoContent(w)
}

// Start handles POST /api/v1/sites/{id}/start
func (h *SiteHandler) Start(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	user := middleware.MustGetUser(r.Context())
	site, err := h.panelService.StartSite(r.Context(), id)
	if err != nil {
		h.panelService.RecordAction(r.Context(), user, model.AuditSiteStart, "", false, err.Error())
		WriteError(w, err)
		return
	}

	h.panelService.RecordAction(r.Context(), user, model.AuditSiteStart, site.Name, true, "")
	response.JSON(w, http.StatusOK, response.SiteFromModel(site))
}

// Stop handles POST /api/v1/sites/{id}/stop
func (h *SiteHandler) Stop(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	user := middleware.MustGetUser(r.Context())
	site, err := h.panelService.StopSite(r.Context(), id)
	if err != nil {
		h.panelService.RecordAction(r.Context(), user, model.AuditSiteStop, "", false, err.Error())
		WriteError(w, err)
		return
	}

	h.panelService.RecordAction(r.Context(), user, model.AuditSiteStop, site.Name, true, "")
	response.JSON(w, http.StatusOK, response.SiteFromModel(site))
}
