package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound   = errors.New("user not found")
	ErrUsernameExists = errors.New("username already exists")
	ErrUserInactive   = errors.New("user account is inactive")

	// Site errors
	ErrSiteNotFound  = errors.New("site not found")
	ErrSiteNameTaken = errors.New("site name already in use")
	ErrSiteSuspended = errors.New("site is suspended")

	// Child resource errors
	ErrDatabaseNotFound = errors.New("database not found")
	ErrDomainNotFound   = errors.New("domain not found")
	ErrDomainExists     = errors.New("domain already registered")
	ErrBackupNotFound   = errors.New("backup not found")
)
