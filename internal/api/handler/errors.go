package handler

import "github.com/frankenpanel/frankenpanel/internal/api/apierr"

// Re-export apierr helpers so handlers read cleanly
var (
	WriteError             = apierr.WriteError
	NewInvalidRequestError = apierr.NewInvalidRequestError
	NewUnauthorizedError   = apierr.NewUnauthorizedError
	NewForbiddenError      = apierr.NewForbiddenError
	NewInternalError       = apierr.NewInternalError
)
