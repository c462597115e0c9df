package handler

import (
	"encoding/json"
	"net/http"

	"github.com/frankenpanel/frankenpanel/internal/api/middleware"
	"github.com/frankenpanel/frankenpanel/internal/api/request"
	"github.com/frankenpanel/frankenpanel/internal/api/response"
	"github.com/frankenpanel/frankenpanel/internal/services/auth"
	"github.com/frankenpanel/frankenpanel/internal/storage"
)

// UserHandler handles operator account endpoints
type UserHandler struct {
	authService *auth.Service
	storage     storage.Storage
}

// NewUserHandler creates a new user handler
func NewUserHandler(authService *auth.Service, storage storage.Storage) *UserHandler {
	return &UserHandler{
		authService: authService,
		storage:     storage,
	}
}

// List handles GET /api/v1/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.storage.ListUsers(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.UsersFromModel(users))
}

// Create handles POST /api/v1/users
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	}
	if len(req.Password) < 8 {
		WriteError(w, NewInvalidRequestError("password must be at least 8 characters"))
		return
	}
	if req.Email == "" {
		WriteError(w, NewInvalidRequestError("email is required"))
		return
	}

	user, err := h.authService.CreateUser(r.Context(), req.Username, req.Password, req.Email, req.FullName, req.IsSuperuser)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.UserFromModel(user))
}

// Get handles GET /api/v1/users/{id}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	user, err := h.storage.GetUser(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.UserFromModel(user))
}

// Delete handles DELETE /api/v1/users/{id}
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	caller := middleware.MustGetUser(r.Context())
	if caller.ID == id {
		WriteError(w, NewInvalidRequestError("cannot delete your own account"))
		return
	}

	if _, err := h.storage.GetUser(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}
	if err := h.storage.DeleteUser(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	h.authService.InvalidateUserSessions(id)
	response.NoContent(w)
}
