package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/frankenpanel/frankenpanel/internal/model"
	"github.com/frankenpanel/frankenpanel/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	users         map[int64]*model.User
	usernameIndex map[string]int64
	sites         map[int64]*model.Site
	siteNameIndex map[string]int64
	databases     map[int64]*model.Database
	domains       map[int64]*model.Domain
	domainIndex   map[string]int64
	backups       map[int64]*model.Backup
	audit         []*model.AuditEntry
	sequences     map[string]int64
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:         make(map[int64]*model.User),
		usernameIndex: make(map[string]int64),
		sites:         make(map[int64]*model.Site),
		siteNameIndex: make(map[string]int64),
		databases:     make(map[int64]*model.Database),
		domains:       make(map[int64]*model.Domain),
		domainIndex:   make(map[string]int64),
		backups:       make(map[int64]*model.Backup),
		sequences:     make(map[string]int64),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
	s.usernameIndex[user.Username] = user.ID
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id int64) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func (s *Storage) ListUsers(ctx context.Context) ([]*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]*model.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (s *Storage) DeleteUser(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user, ok := s.users[id]; ok {
		delete(s.usernameIndex, user.Username)
	}
	delete(s.users, id)
	return nil
}

func (s *Storage) CountUsers(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users), nil
}

// Site operations

func (s *Storage) SaveSite(ctx context.Context, site *model.Site) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.sites[site.ID]; ok && old.Name != site.Name {
		delete(s.siteNameIndex, old.Name)
	}
	s.sites[site.ID] = site
	s.siteNameIndex[site.Name] = site.ID
	return nil
}

func (s *Storage) GetSite(ctx context.Context, id int64) (*model.Site, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	site, ok := s.sites[id]
	if !ok {
		return nil, model.ErrSiteNotFound
	}
	return site, nil
}

func (s *Storage) GetSiteByName(ctx context.Context, name string) (*model.Site, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.siteNameIndex[name]
	if !ok {
		return nil, model.ErrSiteNotFound
	}
	site, ok := s.sites[id]
	if !ok {
		return nil, model.ErrSiteNotFound
	}
	return site, nil
}

func (s *Storage) ListSites(ctx context.Context) ([]*model.Site, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sites := make([]*model.Site, 0, len(s.sites))
	for _, site := range s.sites {
		sites = append(sites, site)
	}
	sort.Slice(sites, func(i, j int) bool { return sites[i].ID < sites[j].ID })
	return sites, nil
}

func (s *Storage) DeleteSite(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if site, ok := s.sites[id]; ok {
		delete(s.siteNameIndex, site.Name)
	}
	delete(s.sites, id)
	return nil
}

// Database operations

func (s *Storage) SaveDatabase(ctx context.Context, db *model.Database) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.databases[db.ID] = db
	return nil
}

func (s *Storage) GetDatabase(ctx context.Context, id int64) (*model.Database, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	db, ok := s.databases[id]
	if !ok {
		return nil, model.ErrDatabaseNotFound
	}
	return db, nil
}

func (s *Storage) ListDatabases(ctx context.Context, siteID int64) ([]*model.Database, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	dbs := make([]*model.Database, 0, len(s.databases))
	for _, db := range s.databases {
		if siteID != storage.AllSites && db.SiteID != siteID {
			continue
		}
		dbs = append(dbs, db)
	}
	sort.Slice(dbs, func(i, j int) bool { return dbs[i].ID < dbs[j].ID })
	return dbs, nil
}

func (s *Storage) DeleteDatabase(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.databases, id)
	return nil
}

// Domain operations

func (s *Storage) SaveDomain(ctx context.Context, domain *model.Domain) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.domains[domain.ID]; ok && old.Name != domain.Name {
		delete(s.domainIndex, old.Name)
	}
	s.domains[domain.ID] = domain
	s.domainIndex[domain.Name] = domain.ID
	return nil
}

func (s *Storage) GetDomain(ctx context.Context, id int64) (*model.Domain, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	domain, ok := s.domains[id]
	if !ok {
		return nil, model.ErrDomainNotFound
	}
	return domain, nil
}

func (s *Storage) GetDomainByName(ctx context.Context, name string) (*model.Domain, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.domainIndex[name]
	if !ok {
		return nil, model.ErrDomainNotFound
	}
	domain, ok := s.domains[id]
	if !ok {
		return nil, model.ErrDomainNotFound
	}
	return domain, nil
}

func (s *Storage) ListDomains(ctx context.Context, siteID int64) ([]*model.Domain, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	domains := make([]*model.Domain, 0, len(s.domains))
	for _, d := range s.domains {
		if siteID != storage.AllSites && d.SiteID != siteID {
			continue
		}
		domains = append(domains, d)
	}
	sort.Slice(domains, func(i, j int) bool { return domains[i].ID < domains[j].ID })
	return domains, nil
}

func (s *Storage) DeleteDomain(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if domain, ok := s.domains[id]; ok {
		delete(s.domainIndex, domain.Name)
	}
	delete(s.domains, id)
	return nil
}

// Backup operations

func (s *Storage) SaveBackup(ctx context.Context, backup *model.Backup) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.backups[backup.ID] = backup
	return nil
}

func (s *Storage) GetBackup(ctx context.Context, id int64) (*model.Backup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	backup, ok := s.backups[id]
	if !ok {
		return nil, model.ErrBackupNotFound
	}
	return backup, nil
}

func (s *Storage) ListBackups(ctx context.Context, siteID int64) ([]*model.Backup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	backups := make([]*model.Backup, 0, len(s.backups))
	for _, b := range s.backups {
		if siteID != storage.AllSites && b.SiteID != siteID {
			continue
		}
		backups = append(backups, b)
	}
	sort.Slice(backups, func(i, j int) bool { return backups[i].ID < backups[j].ID })
	return backups, nil
}

func (s *Storage) DeleteBackup(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.backups, id)
	return nil
}

// Audit operations

func (s *Storage) SaveAuditEntry(ctx context.Context, entry *model.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audit = append(s.audit, entry)
	return nil
}

func (s *Storage) ListAuditEntries(ctx context.Context, limit int) ([]*model.AuditEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	// Newest first
	entries := make([]*model.AuditEntry, 0, len(s.audit))
	for i := len(s.audit) - 1; i >= 0; i-- {
		entries = append(entries, s.audit[i])
		if limit > 0 && len(entries) >= limit {
			break
		}
	}
	return entries, nil
}

// NextID returns the next identifier in the named sequence
func (s *Storage) NextID(ctx context.Context, sequence string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sequences[sequence]++
	return s.sequences[sequence], nil
}
