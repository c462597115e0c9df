package model

import "time"

// User is an operator account on the control plane.
type User struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	FullName     string     `json:"full_name,omitempty"`
	PasswordHash string     `json:"-"`
	IsActive     bool       `json:"is_active"`
	IsSuperuser  bool       `json:"is_superuser"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// SiteStatus is the lifecycle state of a hosted site.
type SiteStatus string

const (
	// SitePending is the transient state between creation and first start.
	SitePending   SiteStatus = "pending"
	SiteActive    SiteStatus = "active"
	SiteInactive  SiteStatus = "inactive"
	SiteSuspended SiteStatus = "suspended"
)

// SiteType identifies what kind of application a site runs.
type SiteType string

const (
	SiteWordPress SiteType = "wordpress"
	SiteJoomla    SiteType = "joomla"
	SiteCustomPHP SiteType = "custom_php"
	SiteStatic    SiteType = "static"
)

// Site is a hosted site managed by the control plane.
type Site struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	SiteType    SiteType   `json:"site_type"`
	Status      SiteStatus `json:"status"`
	Path        string     `json:"path"`
	WorkerPort  int        `json:"worker_port"`
	PHPVersion  string     `json:"php_version"`
	Description string     `json:"description,omitempty"`
	OwnerID     *int64     `json:"owner_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Database is a database provisioned for a site.
type Database struct {
	ID        int64     `json:"id"`
	SiteID    int64     `json:"site_id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Host      string    `json:"host"`
	Port      int       `json:"port"`
	CreatedAt time.Time `json:"created_at"`
}

// Domain is a domain name attached to a site.
type Domain struct {
	ID         int64     `json:"id"`
	SiteID     int64     `json:"site_id"`
	Name       string    `json:"name"`
	IsPrimary  bool      `json:"is_primary"`
	SSLEnabled bool      `json:"ssl_enabled"`
	CreatedAt  time.Time `json:"created_at"`
}

// Backup is a recorded backup of a site.
type Backup struct {
	ID        int64     `json:"id"`
	SiteID    int64     `json:"site_id"`
	Filename  string    `json:"filename"`
	SizeBytes int64     `json:"size_bytes"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// AuditEntry records an operator action and its outcome.
type AuditEntry struct {
	ID           int64     `json:"id"`
	UserID       *int64    `json:"user_id,omitempty"`
	Username     string    `json:"username"`
	Action       string    `json:"action"`
	Resource     string    `json:"resource,omitempty"`
	Success      bool      `json:"success"`
	ErrorMessage string    `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Audit actions recorded by the auth and panel services.
const (
	AuditLogin      = "login"
	AuditLogout     = "logout"
	AuditSiteCreate = "site_create"
	AuditSiteDelete = "site_delete"
	AuditSiteStart  = "site_start"
	AuditSiteStop   = "site_stop"
)
