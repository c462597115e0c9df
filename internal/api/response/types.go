package response

import (
	"time"

	"github.com/frankenpanel/frankenpanel/internal/model"
	"github.com/frankenpanel/frankenpanel/internal/services/auth"
)

// User represents an operator account in API responses
type User struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name,omitempty"`
	IsActive    bool       `json:"is_active"`
	IsSuperuser bool       `json:"is_superuser"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// UserFromModel converts a model.User to a response User
func UserFromModel(u *model.User) User {
	return User{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FullName:    u.FullName,
		IsActive:    u.IsActive,
		IsSuperuser: u.IsSuperuser,
		LastLogin:   u.LastLogin,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// TokenResponse is the response for POST /auth/login
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

// TokenResponseFromSession creates a TokenResponse from a session
func TokenResponseFromSession(s *auth.Session) TokenResponse {
	return TokenResponse{
		AccessToken: s.Token,
		TokenType:   "bearer",
		User:        UserFromModel(&s.User),
	}
}

// Site represents a site in API responses
type Site struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	SiteType    string    `json:"site_type"`
	Status      string    `json:"status"`
	Path        string    `json:"path"`
	WorkerPort  int       `json:"worker_port"`
	PHPVersion  string    `json:"php_version"`
	Description string    `json:"description,omitempty"`
	OwnerID     *int64    `json:"owner_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SiteFromModel converts a model.Site to a response Site
func SiteFromModel(s *model.Site) Site {
	return Site{
		ID:          s.ID,
		Name:        s.Name,
		Slug:        s.Slug,
		SiteType:    string(s.SiteType),
		Status:      string(s.Status),
		Path:        s.Path,
		WorkerPort:  s.WorkerPort,
		PHPVersion:  s.PHPVersion,
		Description: s.Description,
		OwnerID:     s.OwnerID,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// SitesFromModel converts a slice of sites
func SitesFromModel(sites []*model.Site) []Site {
	out := make([]Site, len(sites))
	for i, s := range sites {
		out[i] = SiteFromModel(s)
	}
	return out
}

// Database represents a database in API responses
type Database struct {
	ID        int64     `json:"id"`
	SiteID    int64     `json:"site_id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Host      string    `json:"host"`
	Port      int       `json:"port"`
	CreatedAt time.Time `json:"created_at"`
}

// DatabaseFromModel converts a model.Database
func DatabaseFromModel(d *model.Database) Database {
	return Database{
		ID:        d.ID,
		SiteID:    d.SiteID,
		Name:      d.Name,
		Username:  d.Username,
		Host:      d.Host,
		Port:      d.Port,
		CreatedAt: d.CreatedAt,
	}
}

// DatabasesFromModel converts a slice of databases
func DatabasesFromModel(dbs []*model.Database) []Database {
	out := make([]Database, len(dbs))
	for i, d := range dbs {
		out[i] = DatabaseFromModel(d)
	}
	return out
}

// Domain represents a domain in API responses
type Domain struct {
	ID         int64     `json:"id"`
	SiteID     int64     `json:"site_id"`
	Name       string    `json:"name"`
	IsPrimary  bool      `json:"is_primary"`
	SSLEnabled bool      `json:"ssl_enabled"`
	CreatedAt  time.Time `json:"created_at"`
}

// DomainFromModel converts a model.Domain
func DomainFromModel(d *model.Domain) Domain {
	return Domain{
		ID:         d.ID,
		SiteID:     d.SiteID,
		Name:       d.Name,
		IsPrimary:  d.IsPrimary,
		SSLEnabled: d.SSLEnabled,
		CreatedAt:  d.CreatedAt,
	}
}

// DomainsFromModel converts a slice of domains
func DomainsFromModel(domains []*model.Domain) []Domain {
	out := make([]Domain, len(domains))
	for i, d := range domains {
		out[i] = DomainFromModel(d)
	}
	return out
}

// Backup represents a backup in API responses
type Backup struct {
	ID        int64     `json:"id"`
	SiteID    int64     `json:"site_id"`
	Filename  string    `json:"filename"`
	SizeBytes int64     `json:"size_bytes"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// BackupFromModel converts a model.Backup
func BackupFromModel(b *model.Backup) Backup {
	return Backup{
		ID:        b.ID,
		SiteID:    b.SiteID,
		Filename:  b.Filename,
		SizeBytes: b.SizeBytes,
		Status:    b.Status,
		CreatedAt: b.CreatedAt,
	}
}

// BackupsFromModel converts a slice of backups
func BackupsFromModel(backups []*model.Backup) []Backup {
	out := make([]Backup, len(backups))
	for i, b := range backups {
		out[i] = BackupFromModel(b)
	}
	return out
}

// AuditEntry represents an audit log entry in API responses
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

// AuditEntryFromModel converts a model.AuditEntry
func AuditEntryFromModel(e *model.AuditEntry) AuditEntry {
	return AuditEntry{
		ID:           e.ID,
		UserID:       e.UserID,
		Username:     e.Username,
		Action:       e.Action,
		Resource:     e.Resource,
		Success:      e.Success,
		ErrorMessage: e.ErrorMessage,
		CreatedAt:    e.CreatedAt,
	}
}

// AuditEntriesFromModel converts a slice of audit entries
func AuditEntriesFromModel(entries []*model.AuditEntry) []AuditEntry {
	out := make([]AuditEntry, len(entries))
	for i, e := range entries {
		out[i] = AuditEntryFromModel(e)
	}
	return out
}

// UsersFromModel converts a slice of users
func UsersFromModel(users []*model.User) []User {
	out := make([]User, len(users))
	for i, u := range users {
		out[i] = UserFromModel(u)
	}
	return out
}
