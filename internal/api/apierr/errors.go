package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/frankenpanel/frankenpanel/internal/model"
	"github.com/frankenpanel/frankenpanel/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUserInactive       = "USER_INACTIVE"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeUsernameExists     = "USERNAME_EXISTS"
	CodeSiteNotFound       = "SITE_NOT_FOUND"
	CodeSiteNameTaken      = "SITE_NAME_TAKEN"
	CodeSiteSuspended      = "SITE_SUSPENDED"
	CodeDatabaseNotFound   = "DATABASE_NOT_FOUND"
	CodeDomainNotFound     = "DOMAIN_NOT_FOUND"
	CodeDomainExists       = "DOMAIN_EXISTS"
	CodeBackupNotFound     = "BACKUP_NOT_FOUND"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrUserNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeUserNotFound, "User not found"}}
	case errors.Is(err, model.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}
	case errors.Is(err, model.ErrUserInactive):
		return &httpError{http.StatusForbidden, APIError{CodeUserInactive, "User account is inactive"}}
	case errors.Is(err, model.ErrSiteNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSiteNotFound, "Site not found"}}
	case errors.Is(err, model.ErrSiteNameTaken):
		return &httpError{http.StatusConflict, APIError{CodeSiteNameTaken, "Site name already in use"}}
	case errors.Is(err, model.ErrSiteSuspended):
		return &httpError{http.StatusConflict, APIError{CodeSiteSuspended, "Site is suspended"}}
	case errors.Is(err, model.ErrDatabaseNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeDatabaseNotFound, "Database not found"}}
	case errors.Is(err, model.ErrDomainNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeDomainNotFound, "Domain not found"}}
	case errors.Is(err, model.ErrDomainExists):
		return &httpError{http.StatusConflict, APIError{CodeDomainExists, "Domain already registered"}}
	case errors.Is(err, model.ErrBackupNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeBackupNotFound, "Backup not found"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Incorrect username or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewForbiddenError creates a forbidden error
func NewForbiddenError(message string) error {
	return &httpError{http.StatusForbidden, APIError{CodeForbidden, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
