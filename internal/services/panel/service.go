package panel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/frankenpanel/frankenpanel/internal/dependencies/clock"
	"github.com/frankenpanel/frankenpanel/internal/model"
	"github.com/frankenpanel/frankenpanel/internal/storage"
)

// Worker ports are assigned sequentially starting here
const workerPortBase = 8080

// Service implements control-plane operations over stored resources.
// It does not provision anything: site start/stop and backup creation
// only transition stored state.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new panel service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// CreateSiteParams holds parameters for site creation
type CreateSiteParams struct {
	Name           string
	SiteType       model.SiteType
	Domain         string
	PHPVersion     string
	Description    string
	CreateDatabase bool
	OwnerID        *int64
}

// CreateSite registers a new site in pending state, with its primary
// domain and (optionally) an initial database.
func (s *Service) CreateSite(ctx context.Context, params CreateSiteParams) (*model.Site, error) {
	if _, err := s.storage.GetSiteByName(ctx, params.Name); err == nil {
		return nil, model.ErrSiteNameTaken
	} else if !errors.Is(err, model.ErrSiteNotFound) {
		return nil, err
	}

	id, err := s.storage.NextID(ctx, "site")
	if err != nil {
		return nil, err
	}

	phpVersion := params.PHPVersion
	if phpVersion == "" {
		phpVersion = "8.2"
	}

	now := s.clock.Now()
	slug := slugify(params.Name)
	site := &model.Site{
		ID:          id,
		Name:        params.Name,
		Slug:        slug,
		SiteType:    params.SiteType,
		Status:      model.SitePending,
		Path:        "/opt/frankenpanel/sites/" + slug,
		WorkerPort:  workerPortBase + int(id),
		PHPVersion:  phpVersion,
		Description: params.Description,
		OwnerID:     params.OwnerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.storage.SaveSite(ctx, site); err != nil {
		return nil, err
	}

	if params.Domain != "" {
		if _, err := s.CreateDomain(ctx, site.ID, params.Domain, true); err != nil {
			return nil, err
		}
	}

	if params.CreateDatabase {
		if _, err := s.CreateDatabase(ctx, site.ID, slug+"_db"); err != nil {
			return nil, err
		}
	}

	s.logger.Info("site created",
		slog.Int64("site_id", site.ID),
		slog.String("name", site.Name),
	)
	return site, nil
}

// UpdateSiteParams holds optional fields for site updates
type UpdateSiteParams struct {
	Name        *string
	PHPVersion  *string
	Description *string
}

// UpdateSite applies partial updates to a site
func (s *Service) UpdateSite(ctx context.Context, id int64, params UpdateSiteParams) (*model.Site, error) {
	site, err := s.storage.GetSite(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil && *params.Name != site.Name {
		if _, err := s.storage.GetSiteByName(ctx, *params.Name); err == nil {
			return nil, model.ErrSiteNameTaken
		} else if !errors.Is(err, model.ErrSiteNotFound) {
			return nil, err
		}
		site.Name = *params.Name
	}
	if params.PHPVersion != nil {
		site.PHPVersion = *params.PHPVersion
	}
	if params.Description != nil {
		site.Description = *params.Description
	}
	site.UpdatedAt = s.clock.Now()

	if err := s.storage.SaveSite(ctx, site); err != nil {
		return nil, err
	}
	return site, nil
}

// DeleteSite removes a site and all of its child resources
func (s *Service) DeleteSite(ctx context.Context, id int64) error {
	if _, err := s.storage.GetSite(ctx, id); err != nil {
		return err
	}

	dbs, err := s.storage.ListDatabases(ctx, id)
	if err != nil {
		return err
	}
	for _, db := range dbs {
		if err := s.storage.DeleteDatabase(ctx, db.ID); err != nil {
			return err
		}
	}

	domains, err := s.storage.ListDomains(ctx, id)
	if err != nil {
		return err
	}
	for _, domain := range domains {
		if err := s.storage.DeleteDomain(ctx, domain.ID); err != nil {
			return err
		}
	}

	backups, err := s.storage.ListBackups(ctx, id)
	if err != nil {
		return err
	}
	for _, backup := range backups {
		if err := s.storage.DeleteBackup(ctx, backup.ID); err != nil {
			return err
		}
	}

	return s.storage.DeleteSite(ctx, id)
}

// StartSite transitions a site to active. Suspended sites must be
// unsuspended by an administrator first.
func (s *Service) StartSite(ctx context.Context, id int64) (*model.Site, error) {
	site, err := s.storage.GetSite(ctx, id)
	if err != nil {
		return nil, err
	}
	if site.Status == model.SiteSuspended {
		return nil, model.ErrSiteSuspended
	}

	site.Status = model.SiteActive
	site.UpdatedAt = s.clock.Now()
	if err := s.storage.SaveSite(ctx, site); err != nil {
		return nil, err
	}
	return site, nil
}

// StopSite transitions a site to inactive
func (s *Service) StopSite(ctx context.Context, id int64) (*model.Site, error) {
	site, err := s.storage.GetSite(ctx, id)
	if err != nil {
		return nil, err
	}

	site.Status = model.SiteInactive
	site.UpdatedAt = s.clock.Now()
	if err := s.storage.SaveSite(ctx, site); err != nil {
		return nil, err
	}
	return site, nil
}

// CreateDatabase records a database for a site
func (s *Service) CreateDatabase(ctx context.Context, siteID int64, name string) (*model.Database, error) {
	if _, err := s.storage.GetSite(ctx, siteID); err != nil {
		return nil, err
	}

	id, err := s.storage.NextID(ctx, "database")
	if err != nil {
		return nil, err
	}

	db := &model.Database{
		ID:        id,
		SiteID:    siteID,
		Name:      name,
		Username:  name,
		Host:      "localhost",
		Port:      3306,
		CreatedAt: s.clock.Now(),
	}
	if err := s.storage.SaveDatabase(ctx, db); err != nil {
		return nil, err
	}
	return db, nil
}

// CreateDomain attaches a domain to a site
func (s *Service) CreateDomain(ctx context.Context, siteID int64, name string, primary bool) (*model.Domain, error) {
	if _, err := s.storage.GetSite(ctx, siteID); err != nil {
		return nil, err
	}
	if _, err := s.storage.GetDomainByName(ctx, name); err == nil {
		return nil, model.ErrDomainExists
	} else if !errors.Is(err, model.ErrDomainNotFound) {
		return nil, err
	}

	id, err := s.storage.NextID(ctx, "domain")
	if err != nil {
		return nil, err
	}

	domain := &model.Domain{
		ID:        id,
		SiteID:    siteID,
		Name:      name,
		IsPrimary: primary,
		CreatedAt: s.clock.Now(),
	}
	if err := s.storage.SaveDomain(ctx, domain); err != nil {
		return nil, err
	}
	return domain, nil
}

// CreateBackup records a backup for a site
func (s *Service) CreateBackup(ctx context.Context, siteID int64) (*model.Backup, error) {
	site, err := s.storage.GetSite(ctx, siteID)
	if err != nil {
		return nil, err
	}

	id, err := s.storage.NextID(ctx, "backup")
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	backup := &model.Backup{
		ID:        id,
		SiteID:    siteID,
		Filename:  fmt.Sprintf("%s-%s.tar.gz", site.Slug, now.Format("20060102-150405")),
		Status:    "completed",
		CreatedAt: now,
	}
	if err := s.storage.SaveBackup(ctx, backup); err != nil {
		return nil, err
	}
	return backup, nil
}

// RestoreBackup marks a backup as restored. The control plane owns the
// actual file restore; here it is a recorded state transition only.
func (s *Service) RestoreBackup(ctx context.Context, id int64) (*model.Backup, error) {
	backup, err := s.storage.GetBackup(ctx, id)
	if err != nil {
		return nil, err
	}

	backup.Status = "restored"
	if err := s.storage.SaveBackup(ctx, backup); err != nil {
		return nil, err
	}
	return backup, nil
}

// RecordAction writes an audit entry for an operator action
func (s *Service) RecordAction(ctx context.Context, user *model.User, action, resource string, success bool, errMsg string) {
	id, err := s.storage.NextID(ctx, "audit")
	if err != nil {
		s.logger.Warn("audit sequence failed", slog.String("error", err.Error()))
		return
	}
	entry := &model.AuditEntry{
		ID:           id,
		UserID:       &user.ID,
		Username:     user.Username,
		Action:       action,
		Resource:     resource,
		Success:      success,
		ErrorMessage: errMsg,
		CreatedAt:    s.clock.Now(),
	}
	if err := s.storage.SaveAuditEntry(ctx, entry); err != nil {
		s.logger.Warn("audit write failed", slog.String("error", err.Error()))
	}
}

func slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
