package storage

import (
	"context"

	"github.com/frankenpanel/frankenpanel/internal/model"
)

// Storage defines the interface for control-plane data persistence
type Storage interface {
	// User operations
	SaveUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id int64) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
	DeleteUser(ctx context.Context, id int64) error
	CountUsers(ctx context.Context) (int, error)

	// Site operations
	SaveSite(ctx context.Context, site *model.Site) error
	GetSite(ctx context.Context, id int64) (*model.Site, error)
	GetSiteByName(ctx context.Context, name string) (*model.Site, error)
	ListSites(ctx context.Context) ([]*model.Site, error)
	DeleteSite(ctx context.Context, id int64) error

	// Database operations
	SaveDatabase(ctx context.Context, db *model.Database) error
	GetDatabase(ctx context.Context, id int64) (*model.Database, error)
	ListDatabases(ctx context.Context, siteID int64) ([]*model.Database, error)
	DeleteDatabase(ctx context.Context, id int64) error

	// Domain operations
	SaveDomain(ctx context.Context, domain *model.Domain) error
	GetDomain(ctx context.Context, id int64) (*model.Domain, error)
	GetDomainByName(ctx context.Context, name string) (*model.Domain, error)
	ListDomains(ctx context.Context, siteID int64) ([]*model.Domain, error)
	DeleteDomain(ctx context.Context, id int64) error

	// Backup operations
	SaveBackup(ctx context.Context, backup *model.Backup) error
	GetBackup(ctx context.Context, id int64) (*model.Backup, error)
	ListBackups(ctx context.Context, siteID int64) ([]*model.Backup, error)
	DeleteBackup(ctx context.Context, id int64) error

	// Audit operations
	SaveAuditEntry(ctx context.Context, entry *model.AuditEntry) error
	ListAuditEntries(ctx context.Context, limit int) ([]*model.AuditEntry, error)

	// NextID returns the next identifier in the named sequence
	NextID(ctx context.Context, sequence string) (int64, error)
}

// ListDatabases/ListDomains/ListBackups take siteID 0 to mean "all sites".
const AllSites int64 = 0
