package request

// LoginRequest is the body for POST /auth/login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateSiteRequest is the body for POST /sites
type CreateSiteRequest struct {
	Name           string `json:"name"`
	SiteType       string `json:"site_type"`
	Domain         string `json:"domain"`
	PHPVersion     string `json:"php_version,omitempty"`
	Description    string `json:"description,omitempty"`
	CreateDatabase *bool  `json:"create_database,omitempty"`
}

// UpdateSiteRequest is the body for PUT /sites/{id}
type UpdateSiteRequest struct {
	Name        *string `json:"name,omitempty"`
	PHPVersion  *string `json:"php_version,omitempty"`
	Description *string `json:"description,omitempty"`
}

// CreateDatabaseRequest is the body for POST /databases
type CreateDatabaseRequest struct {
	SiteID int64  `json:"site_id"`
	Name   string `json:"name"`
}

// CreateDomainRequest is the body for POST /domains
type CreateDomainRequest struct {
	SiteID    int64  `json:"site_id"`
	Name      string `json:"name"`
	IsPrimary bool   `json:"is_primary"`
}

// CreateBackupRequest is the body for POST /backups
type CreateBackupRequest struct {
	SiteID int64 `json:"site_id"`
}

// CreateUserRequest is the body for POST /users
type CreateUserRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	Email       string `json:"email"`
	FullName    string `json:"full_name,omitempty"`
	IsSuperuser bool   `json:"is_superuser"`
}
