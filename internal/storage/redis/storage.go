package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/frankenpanel/frankenpanel/internal/model"
	"github.com/frankenpanel/frankenpanel/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	// Pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, userKey(user.ID), data, 0)
	pipe.Set(ctx, usernameIndexKey(user.Username), strconv.FormatInt(user.ID, 10), 0)
	pipe.SAdd(ctx, usersSetKey(), user.ID)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetUser(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	if err := s.getJSON(ctx, userKey(id), &user, model.ErrUserNotFound); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	id, err := s.lookupIndex(ctx, usernameIndexKey(username), model.ErrUserNotFound)
	if err != nil {
		return nil, err
	}
	return s.GetUser(ctx, id)
}

func (s *Storage) ListUsers(ctx context.Context) ([]*model.User, error) {
	ids, err := s.memberIDs(ctx, usersSetKey())
	if err != nil {
		return nil, err
	}

	users := make([]*model.User, 0, len(ids))
	for _, id := range ids {
		user, err := s.GetUser(ctx, id)
		if err != nil {
			if errors.Is(err, model.ErrUserNotFound) {
				continue
			}
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *Storage) DeleteUser(ctx context.Context, id int64) error {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil
		}
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, userKey(id))
	pipe.Del(ctx, usernameIndexKey(user.Username))
	pipe.SRem(ctx, usersSetKey(), id)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) CountUsers(ctx context.Context) (int, error) {
	n, err := s.client.SCard(ctx, usersSetKey()).Result()
	return int(n), err
}

// Site operations

func (s *Storage) SaveSite(ctx context.Context, site *model.Site) error {
	data, err := json.Marshal(site)
	if err != nil {
		return err
	}

	// Drop the stale name index on rename
	if old, err := s.GetSite(ctx, site.ID); err == nil && old.Name != site.Name {
		if err := s.client.Del(ctx, siteNameIndexKey(old.Name)).Err(); err != nil {
			return err
		}
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, siteKey(site.ID), data, 0)
	pipe.Set(ctx, siteNameIndexKey(site.Name), strconv.FormatInt(site.ID, 10), 0)
	pipe.SAdd(ctx, sitesSetKey(), site.ID)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetSite(ctx context.Context, id int64) (*model.Site, error) {
	var site model.Site
	if err := s.getJSON(ctx, siteKey(id), &site, model.ErrSiteNotFound); err != nil {
		return nil, err
	}
	return &site, nil
}

func (s *Storage) GetSiteByName(ctx context.Context, name string) (*model.Site, error) {
	id, err := s.lookupIndex(ctx, siteNameIndexKey(name), model.ErrSiteNotFound)
	if err != nil {
		return nil, err
	}
	return s.GetSite(ctx, id)
}

func (s *Storage) ListSites(ctx context.Context) ([]*model.Site, error) {
	ids, err := s.memberIDs(ctx, sitesSetKey())
	if err != nil {
		return nil, err
	}

	sites := make([]*model.Site, 0, len(ids))
	for _, id := range ids {
		site, err := s.GetSite(ctx, id)
		if err != nil {
			if errors.Is(err, model.ErrSiteNotFound) {
				continue
			}
			return nil, err
		}
		sites = append(sites, site)
	}
	return sites, nil
}

func (s *Storage) DeleteSite(ctx context.Context, id int64) error {
	site, err := s.GetSite(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrSiteNotFound) {
			return nil
		}
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, siteKey(id))
	pipe.Del(ctx, siteNameIndexKey(site.Name))
	pipe.SRem(ctx, sitesSetKey(), id)
	_, err = pipe.Exec(ctx)
	return err
}

// Database operations

func (s *Storage) SaveDatabase(ctx context.Context, db *model.Database) error {
	data, err := json.Marshal(db)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, databaseKey(db.ID), data, 0)
	pipe.SAdd(ctx, databasesSetKey(), db.ID)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetDatabase(ctx context.Context, id int64) (*model.Database, error) {
	var db model.Database
	if err := s.getJSON(ctx, databaseKey(id), &db, model.ErrDatabaseNotFound); err != nil {
		return nil, err
	}
	return &db, nil
}

func (s *Storage) ListDatabases(ctx context.Context, siteID int64) ([]*model.Database, error) {
	ids, err := s.memberIDs(ctx, databasesSetKey())
	if err != nil {
		return nil, err
	}

	dbs := make([]*model.Database, 0, len(ids))
	for _, id := range ids {
		db, err := s.GetDatabase(ctx, id)
		if err != nil {
			if errors.Is(err, model.ErrDatabaseNotFound) {
				continue
			}
			return nil, err
		}
		if siteID != storage.AllSites && db.SiteID != siteID {
			continue
		}
		dbs = append(dbs, db)
	}
	return dbs, nil
}

func (s *Storage) DeleteDatabase(ctx context.Context, id int64) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, databaseKey(id))
	pipe.SRem(ctx, databasesSetKey(), id)
	_, err := pipe.Exec(ctx)
	return err
}

// Domain operations

func (s *Storage) SaveDomain(ctx context.Context, domain *model.Domain) error {
	data, err := json.Marshal(domain)
	if err != nil {
		return err
	}

	if old, err := s.GetDomain(ctx, domain.ID); err == nil && old.Name != domain.Name {
		if err := s.client.Del(ctx, domainNameIndexKey(old.Name)).Err(); err != nil {
			return err
		}
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, domainKey(domain.ID), data, 0)
	pipe.Set(ctx, domainNameIndexKey(domain.Name), strconv.FormatInt(domain.ID, 10), 0)
	pipe.SAdd(ctx, domainsSetKey(), domain.ID)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetDomain(ctx context.Context, id int64) (*model.Domain, error) {
	var domain model.Domain
	if err := s.getJSON(ctx, domainKey(id), &domain, model.ErrDomainNotFound); err != nil {
		return nil, err
	}
	return &domain, nil
}

func (s *Storage) GetDomainByName(ctx context.Context, name string) (*model.Domain, error) {
	id, err := s.lookupIndex(ctx, domainNameIndexKey(name), model.ErrDomainNotFound)
	if err != nil {
		return nil, err
	}
	return s.GetDomain(ctx, id)
}

func (s *Storage) ListDomains(ctx context.Context, siteID int64) ([]*model.Domain, error) {
	ids, err := s.memberIDs(ctx, domainsSetKey())
	if err != nil {
		return nil, err
	}

	domains := make([]*model.Domain, 0, len(ids))
	for _, id := range ids {
		domain, err := s.GetDomain(ctx, id)
		if err != nil {
			if errors.Is(err, model.ErrDomainNotFound) {
				continue
			}
			return nil, err
		}
		if siteID != storage.AllSites && domain.SiteID != siteID {
			continue
		}
		domains = append(domains, domain)
	}
	return domains, nil
}

func (s *Storage) DeleteDomain(ctx context.Context, id int64) error {
	domain, err := s.GetDomain(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrDomainNotFound) {
			return nil
		}
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, domainKey(id))
	pipe.Del(ctx, domainNameIndexKey(domain.Name))
	pipe.SRem(ctx, domainsSetKey(), id)
	_, err = pipe.Exec(ctx)
	return err
}

// Backup operations

func (s *Storage) SaveBackup(ctx context.Context, backup *model.Backup) error {
	data, err := json.Marshal(backup)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, backupKey(backup.ID), data, 0)
	pipe.SAdd(ctx, backupsSetKey(), backup.ID)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetBackup(ctx context.Context, id int64) (*model.Backup, error) {
	var backup model.Backup
	if err := s.getJSON(ctx, backupKey(id), &backup, model.ErrBackupNotFound); err != nil {
		return nil, err
	}
	return &backup, nil
}

func (s *Storage) ListBackups(ctx context.Context, siteID int64) ([]*model.Backup, error) {
	ids, err := s.memberIDs(ctx, backupsSetKey())
	if err != nil {
		return nil, err
	}

	backups := make([]*model.Backup, 0, len(ids))
	for _, id := range ids {
		backup, err := s.GetBackup(ctx, id)
		if err != nil {
			if errors.Is(err, model.ErrBackupNotFound) {
				continue
			}
			return nil, err
		}
		if siteID != storage.AllSites && backup.SiteID != siteID {
			continue
		}
		backups = append(backups, backup)
	}
	return backups, nil
}

func (s *Storage) DeleteBackup(ctx context.Context, id int64) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, backupKey(id))
	pipe.SRem(ctx, backupsSetKey(), id)
	_, err := pipe.Exec(ctx)
	return err
}

// Audit operations

func (s *Storage) SaveAuditEntry(ctx context.Context, entry *model.AuditEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.LPush(ctx, auditListKey(), data)
	if s.cfg.AuditLogMax > 0 {
		pipe.LTrim(ctx, auditListKey(), 0, s.cfg.AuditLogMax-1)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) ListAuditEntries(ctx context.Context, limit int) ([]*model.AuditEntry, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}

	items, err := s.client.LRange(ctx, auditListKey(), 0, stop).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]*model.AuditEntry, 0, len(items))
	for _, item := range items {
		var entry model.AuditEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			return nil, err
		}
		entries = append(entries, &entry)
	}
	return entries, nil
}

// NextID returns the next identifier in the named sequence
func (s *Storage) NextID(ctx context.Context, sequence string) (int64, error) {
	return s.client.Incr(ctx, sequenceKey(sequence)).Result()
}

// Helpers

func (s *Storage) getJSON(ctx context.Context, key string, dest any, notFound error) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return notFound
		}
		return err
	}
	return json.Unmarshal(data, dest)
}

func (s *Storage) lookupIndex(ctx context.Context, key string, notFound error) (int64, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, notFound
		}
		return 0, err
	}
	return strconv.ParseInt(val, 10, 64)
}

func (s *Storage) memberIDs(ctx context.Context, key string) ([]int64, error) {
	members, err := s.client.SMembers(ctx, key).Result()
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}
