package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frankenpanel/frankenpanel/internal/api"
	"github.com/frankenpanel/frankenpanel/internal/api/response"
	"github.com/frankenpanel/frankenpanel/internal/factory"
	"github.com/frankenpanel/frankenpanel/internal/model"
	"github.com/frankenpanel/frankenpanel/internal/services/auth"
	"github.com/frankenpanel/frankenpanel/internal/storage/memory"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	storage *memory.Storage
	auth    *auth.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// API tests are integration tests - use the production factory
	app, err := factory.New(factory.Config{})
	require.NoError(t, err)
	require.NoError(t, app.SeedAdmin(context.Background(), logger))

	router := api.NewRouter(api.RouterConfig{
		Logger:       logger,
		AuthService:  app.AuthService,
		PanelService: app.PanelService,
		Storage:      app.Storage,
	})

	return &testServer{
		handler: router,
		storage: app.Storage.(*memory.Storage),
		auth:    app.AuthService,
	}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// loginAdmin logs in with the seeded admin account and returns the token
func (ts *testServer) loginAdmin(t *testing.T) string {
	t.Helper()

	body := map[string]string{"username": "admin", "password": "changeme"}
	rr := ts.request(http.MethodPost, "/api/v1/auth/login", body, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.TokenResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.AccessToken
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestLoginSeededAdmin(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{"username": "admin", "password": "changeme"}
	rr := ts.request(http.MethodPost, "/api/v1/auth/login", body, "")

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.TokenResponse
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, "admin", resp.User.Username)
	assert.True(t, resp.User.IsSuperuser)
}

func TestLoginWrongPassword(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{"username": "admin", "password": "wrong"}
	rr := ts.request(http.MethodPost, "/api/v1/auth/login", body, "")

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "Incorrect username or password")
}

func TestMeRequiresAuth(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/auth/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/auth/me", nil, "fp_bogus")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestMeReturnsOperator(t *testing.T) {
	ts := newTestServer(t)
	token := ts.loginAdmin(t)

	rr := ts.request(http.MethodGet, "/api/v1/auth/me", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var user response.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &user))
	assert.Equal(t, "admin", user.Username)
}

func TestLogoutInvalidatesToken(t *testing.T) {
	ts := newTestServer(t)
	token := ts.loginAdmin(t)

	rr := ts.request(http.MethodPost, "/api/v1/auth/logout", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/auth/me", nil, token)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestSiteLifecycle(t *testing.T) {
	ts := newTestServer(t)
	token := ts.loginAdmin(t)

	// Create
	createBody := map[string]any{
		"name":      "My Blog",
		"site_type": "wordpress",
		"domain":    "blog.example.com",
	}
	rr := ts.request(http.MethodPost, "/api/v1/sites", createBody, token)
	require.Equal(t, http.StatusCreated, rr.Code)

	var site response.Site
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &site))
	assert.Equal(t, "pending", site.Status)
	assert.Equal(t, "my-blog", site.Slug)

	// Database and domain were provisioned alongside
	rr = ts.request(http.MethodGet, "/api/v1/databases", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)
	var dbs []response.Database
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dbs))
	require.Len(t, dbs, 1)
	assert.Equal(t, "my-blog_db", dbs[0].Name)

	// Start
	rr = ts.request(http.MethodPost, "/api/v1/sites/1/start", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &site))
	assert.Equal(t, "active", site.Status)

	// Stop
	rr = ts.request(http.MethodPost, "/api/v1/sites/1/stop", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &site))
	assert.Equal(t, "inactive", site.Status)

	// Delete
	rr = ts.request(http.MethodDelete, "/api/v1/sites/1", nil, token)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/sites/1", nil, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestStartSuspendedSiteRejected(t *testing.T) {
	ts := newTestServer(t)
	token := ts.loginAdmin(t)

	body := map[string]any{"name": "My Blog", "site_type": "wordpress", "domain": "blog.example.com"}
	rr := ts.request(http.MethodPost, "/api/v1/sites", body, token)
	require.Equal(t, http.StatusCreated, rr.Code)

	site, err := ts.storage.GetSite(context.Background(), 1)
	require.NoError(t, err)
	site.Status = model.SiteSuspended
	require.NoError(t, ts.storage.SaveSite(context.Background(), site))

	rr = ts.request(http.MethodPost, "/api/v1/sites/1/start", nil, token)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "SITE_SUSPENDED")
}

func TestCreateSiteValidation(t *testing.T) {
	ts := newTestServer(t)
	token := ts.loginAdmin(t)

	rr := ts.request(http.MethodPost, "/api/v1/sites", map[string]any{"site_type": "wordpress"}, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/sites", map[string]any{
		"name":      "Bad Type",
		"site_type": "rails",
		"domain":    "bad.example.com",
	}, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCreateSiteDuplicateName(t *testing.T) {
	ts := newTestServer(t)
	token := ts.loginAdmin(t)

	body := map[string]any{"name": "My Blog", "site_type": "wordpress", "domain": "one.example.com"}
	rr := ts.request(http.MethodPost, "/api/v1/sites", body, token)
	require.Equal(t, http.StatusCreated, rr.Code)

	body["domain"] = "two.example.com"
	rr = ts.request(http.MethodPost, "/api/v1/sites", body, token)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestBackupRestore(t *testing.T) {
	ts := newTestServer(t)
	token := ts.loginAdmin(t)

	body := map[string]any{"name": "My Blog", "site_type": "wordpress", "domain": "blog.example.com"}
	rr := ts.request(http.MethodPost, "/api/v1/sites", body, token)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/backups", map[string]any{"site_id": 1}, token)
	require.Equal(t, http.StatusCreated, rr.Code)

	var backup response.Backup
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &backup))
	assert.Equal(t, "completed", backup.Status)

	rr = ts.request(http.MethodPost, "/api/v1/backups/1/restore", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &backup))
	assert.Equal(t, "restored", backup.Status)
}

func TestUsersRequireSuperuser(t *testing.T) {
	ts := newTestServer(t)
	adminToken := ts.loginAdmin(t)

	// Create a regular operator
	rr := ts.request(http.MethodPost, "/api/v1/users", map[string]any{
		"username": "bob",
		"password": "password123",
		"email":    "bob@example.com",
	}, adminToken)
	require.Equal(t, http.StatusCreated, rr.Code)

	// Log in as the regular operator
	rr = ts.request(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"username": "bob", "password": "password123",
	}, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var resp response.TokenResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	bobToken := resp.AccessToken

	// Superuser-only routes are forbidden
	rr = ts.request(http.MethodGet, "/api/v1/users", nil, bobToken)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	rr = ts.request(http.MethodGet, "/api/v1/audit", nil, bobToken)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	// But regular resources are reachable
	rr = ts.request(http.MethodGet, "/api/v1/sites", nil, bobToken)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestDeleteUserInvalidatesSessions(t *testing.T) {
	ts := newTestServer(t)
	adminToken := ts.loginAdmin(t)

	rr := ts.request(http.MethodPost, "/api/v1/users", map[string]any{
		"username": "bob",
		"password": "password123",
		"email":    "bob@example.com",
	}, adminToken)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"username": "bob", "password": "password123",
	}, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var resp response.TokenResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	rr = ts.request(http.MethodDelete, "/api/v1/users/2", nil, adminToken)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/auth/me", nil, resp.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestDeleteOwnAccountRejected(t *testing.T) {
	ts := newTestServer(t)
	token := ts.loginAdmin(t)

	rr := ts.request(http.MethodDelete, "/api/v1/users/1", nil, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAuditLogRecordsActions(t *testing.T) {
	ts := newTestServer(t)
	token := ts.loginAdmin(t)

	body := map[string]any{"name": "My Blog", "site_type": "wordpress", "domain": "blog.example.com"}
	rr := ts.request(http.MethodPost, "/api/v1/sites", body, token)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/audit", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)

	var entries []response.AuditEntry
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &entries))
	require.NotEmpty(t, entries)

	// Newest first: site creation then the login before it
	assert.Equal(t, "site_create", entries[0].Action)
	assert.True(t, entries[0].Success)
	assert.Equal(t, "login", entries[1].Action)
}

func TestAuditLimitValidation(t *testing.T) {
	ts := newTestServer(t)
	token := ts.loginAdmin(t)

	rr := ts.request(http.MethodGet, "/api/v1/audit?limit=0", nil, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestListFiltersBySite(t *testing.T) {
	ts := newTestServer(t)
	token := ts.loginAdmin(t)

	for _, name := range []string{"First", "Second"} {
		body := map[string]any{"name": name, "site_type": "static", "domain": name + ".example.com"}
		rr := ts.request(http.MethodPost, "/api/v1/sites", body, token)
		require.Equal(t, http.StatusCreated, rr.Code)
	}

	rr := ts.request(http.MethodGet, "/api/v1/domains?site_id=2", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)

	var domains []response.Domain
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &domains))
	require.Len(t, domains, 1)
	assert.Equal(t, int64(2), domains[0].SiteID)
}
