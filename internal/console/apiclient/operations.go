package apiclient

import (
	"context"
	"fmt"

	"github.com/frankenpanel/frankenpanel/internal/api/request"
	"github.com/frankenpanel/frankenpanel/internal/api/response"
	"github.com/frankenpanel/frankenpanel/internal/storage"
)

// Login authenticates against the control plane and stores the returned
// token on success.
func (c *Client) Login(ctx context.Context, username, password string) (*response.TokenResponse, error) {
	var token response.TokenResponse
	err := c.Post(ctx, loginPath, request.LoginRequest{
		Username: username,
		Password: password,
	}, &token)
	if err != nil {
		return nil, err
	}

	if err := c.store.Save(token.AccessToken); err != nil {
		return nil, fmt.Errorf("failed to store token: %w", err)
	}
	return &token, nil
}

// Logout ends the server-side session and clears the stored token. The
// token is cleared even when the server cannot be reached, so a logout
// always works locally.
func (c *Client) Logout(ctx context.Context) error {
	err := c.Post(ctx, "/api/v1/auth/logout", nil, nil)
	if clearErr := c.store.Clear(); clearErr != nil {
		return clearErr
	}
	return err
}

// Me returns the account behind the current session
func (c *Client) Me(ctx context.Context) (*response.User, error) {
	var user response.User
	if err := c.Get(ctx, "/api/v1/auth/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Health checks whether the control plane is reachable
func (c *Client) Health(ctx context.Context) error {
	return c.Get(ctx, "/api/v1/health", nil)
}

// Sites

// ListSites returns all sites
func (c *Client) ListSites(ctx context.Context) ([]response.Site, error) {
	var sites []response.Site
	if err := c.Get(ctx, "/api/v1/sites", &sites); err != nil {
		return nil, err
	}
	return sites, nil
}

// CreateSite provisions a new site
func (c *Client) CreateSite(ctx context.Context, req request.CreateSiteRequest) (*response.Site, error) {
	var site response.Site
	if err := c.Post(ctx, "/api/v1/sites", req, &site); err != nil {
		return nil, err
	}
	return &site, nil
}

// GetSite returns a single site
func (c *Client) GetSite(ctx context.Context, id int64) (*response.Site, error) {
	var site response.Site
	if err := c.Get(ctx, fmt.Sprintf("/api/v1/sites/%d", id), &site); err != nil {
		return nil, err
	}
	return &site, nil
}

// UpdateSite changes site settings
func (c *Client) UpdateSite(ctx context.Context, id int64, req request.UpdateSiteRequest) (*response.Site, error) {
	var site response.Site
	if err := c.Put(ctx, fmt.Sprintf("/api/v1/sites/%d", id), req, &site); err != nil {
		return nil, err
	}
	return &site, nil
}

// DeleteSite removes a site and its resources
func (c *Client) DeleteSite(ctx context.Context, id int64) error {
	return c.Delete(ctx, fmt.Sprintf("/api/v1/sites/%d", id))
}

// StartSite starts a site's worker
func (c *Client) StartSite(ctx context.Context, id int64) (*response.Site, error) {
	var site response.Site
	if err := c.Post(ctx, fmt.Sprintf("/api/v1/sites/%d/start", id), nil, &site); err != nil {
		return nil, err
	}
	return &site, nil
}

// StopSite stops a site's worker
func (c *Client) StopSite(ctx context.Context, id int64) (*response.Site, error) {
	var site response.Site
	if err := c.Post(ctx, fmt.Sprintf("/api/v1/sites/%d/stop", id), nil, &site); err != nil {
		return nil, err
	}
	return &site, nil
}

// Databases

// ListDatabases returns databases, optionally filtered to one site
func (c *Client) ListDatabases(ctx context.Context, siteID int64) ([]response.Database, error) {
	var dbs []response.Database
	if err := c.Get(ctx, listPath("/api/v1/databases", siteID), &dbs); err != nil {
		return nil, err
	}
	return dbs, nil
}

// CreateDatabase provisions a database for a site
func (c *Client) CreateDatabase(ctx context.Context, req request.CreateDatabaseRequest) (*response.Database, error) {
	var db response.Database
	if err := c.Post(ctx, "/api/v1/databases", req, &db); err != nil {
		return nil, err
	}
	return &db, nil
}

// DeleteDatabase removes a database
func (c *Client) DeleteDatabase(ctx context.Context, id int64) error {
	return c.Delete(ctx, fmt.Sprintf("/api/v1/databases/%d", id))
}

// Domains

// ListDomains returns domains, optionally filtered to one site
func (c *Client) ListDomains(ctx context.Context, siteID int64) ([]response.Domain, error) {
	var domains []response.Domain
	if err := c.Get(ctx, listPath("/api/v1/domains", siteID), &domains); err != nil {
		return nil, err
	}
	return domains, nil
}

// CreateDomain attaches a domain to a site
func (c *Client) CreateDomain(ctx context.Context, req request.CreateDomainRequest) (*response.Domain, error) {
	var domain response.Domain
	if err := c.Post(ctx, "/api/v1/domains", req, &domain); err != nil {
		return nil, err
	}
	return &domain, nil
}

// DeleteDomain detaches a domain
func (c *Client) DeleteDomain(ctx context.Context, id int64) error {
	return c.Delete(ctx, fmt.Sprintf("/api/v1/domains/%d", id))
}

// Backups

// ListBackups returns backups, optionally filtered to one site
func (c *Client) ListBackups(ctx context.Context, siteID int64) ([]response.Backup, error) {
	var backups []response.Backup
	if err := c.Get(ctx, listPath("/api/v1/backups", siteID), &backups); err != nil {
		return nil, err
	}
	return backups, nil
}

// CreateBackup takes a backup of a site
func (c *Client) CreateBackup(ctx context.Context, siteID int64) (*response.Backup, error) {
	var backup response.Backup
	if err := c.Post(ctx, "/api/v1/backups", request.CreateBackupRequest{SiteID: siteID}, &backup); err != nil {
		return nil, err
	}
	return &backup, nil
}

// RestoreBackup restores a site from a backup
func (c *Client) RestoreBackup(ctx context.Context, id int64) (*response.Backup, error) {
	var backup response.Backup
	if err := c.Post(ctx, fmt.Sprintf("/api/v1/backups/%d/restore", id), nil, &backup); err != nil {
		return nil, err
	}
	return &backup, nil
}

// DeleteBackup removes a backup
func (c *Client) DeleteBackup(ctx context.Context, id int64) error {
	return c.Delete(ctx, fmt.Sprintf("/api/v1/backups/%d", id))
}

// Users

// ListUsers returns all operator accounts
func (c *Client) ListUsers(ctx context.Context) ([]response.User, error) {
	var users []response.User
	if err := c.Get(ctx, "/api/v1/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser creates an operator account
func (c *Client) CreateUser(ctx context.Context, req request.CreateUserRequest) (*response.User, error) {
	var user response.User
	if err := c.Post(ctx, "/api/v1/users", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes an operator account
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.Delete(ctx, fmt.Sprintf("/api/v1/users/%d", id))
}

// Audit

// ListAudit returns the most recent audit entries
func (c *Client) ListAudit(ctx context.Context, limit int) ([]response.AuditEntry, error) {
	path := "/api/v1/audit"
	if limit > 0 {
		path = fmt.Sprintf("%s?limit=%d", path, limit)
	}
	var entries []response.AuditEntry
	if err := c.Get(ctx, path, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func listPath(base string, siteID int64) string {
	if siteID == storage.AllSites {
		return base
	}
	return fmt.Sprintf("%s?site_id=%d", base, siteID)
}
