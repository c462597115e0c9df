package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frankenpanel/frankenpanel/internal/console/apiclient"
	"github.com/frankenpanel/frankenpanel/internal/console/credstore"
)

// navRecorder counts screen transitions
type navRecorder struct {
	mu         sync.Mutex
	logins     int
	dashboards int
}

func (n *navRecorder) ShowLogin() {
	n.mu.Lock()
	n.logins++
	n.mu.Unlock()
}

func (n *navRecorder) ShowDashboard() {
	n.mu.Lock()
	n.dashboards++
	n.mu.Unlock()
}

func (n *navRecorder) counts() (int, int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.logins, n.dashboards
}

// fakeControlPlane serves login and me, honoring a revocation switch so
// tests can kill the session server-side mid-flight
type fakeControlPlane struct {
	server  *httptest.Server
	revoked atomic.Bool
}

func newFakeControlPlane(t *testing.T) *fakeControlPlane {
	t.Helper()

	f := &fakeControlPlane{}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if r.URL.Path == "/api/v1/auth/login" {
			_, _ = w.Write([]byte(`{"access_token":"fp_good","token_type":"bearer","user":{"id":1,"username":"admin","is_superuser":true}}`))
			return
		}

		if f.revoked.Load() || r.Header.Get("Authorization") != "Bearer fp_good" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"code":"unauthorized","message":"Invalid session"}}`))
			return
		}

		switch r.URL.Path {
		case "/api/v1/auth/me":
			_, _ = w.Write([]byte(`{"id":1,"username":"admin","is_superuser":true}`))
		default:
			_, _ = w.Write([]byte(`[]`))
		}
	}))
	t.Cleanup(f.server.Close)
	return f
}

func newManager(t *testing.T, url string, token string) (*Manager, *credstore.MemStore, *navRecorder) {
	t.Helper()

	store := credstore.NewMemStore()
	if token != "" {
		require.NoError(t, store.Save(token))
	}

	m := NewManager(apiclient.New(url, store))
	nav := &navRecorder{}
	m.Attach(nav)
	return m, store, nav
}

func TestStartWithoutTokenSettlesAnonymous(t *testing.T) {
	fake := newFakeControlPlane(t)
	m, _, nav := newManager(t, fake.server.URL, "")

	err := m.Start(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StateAnonymous, m.State())
	assert.Nil(t, m.User())

	logins, dashboards := nav.counts()
	assert.Equal(t, 1, logins)
	assert.Equal(t, 0, dashboards)
}

func TestStartWithValidTokenAuthenticates(t *testing.T) {
	fake := newFakeControlPlane(t)
	m, _, nav := newManager(t, fake.server.URL, "fp_good")

	err := m.Start(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StateAuthenticated, m.State())
	require.NotNil(t, m.User())
	assert.Equal(t, "admin", m.User().Username)

	logins, dashboards := nav.counts()
	assert.Equal(t, 0, logins)
	assert.Equal(t, 1, dashboards)
}

func TestStartWithDeadTokenRedirectsOnce(t *testing.T) {
	fake := newFakeControlPlane(t)
	m, store, nav := newManager(t, fake.server.URL, "fp_stale")

	err := m.Start(context.Background())
	require.Error(t, err)

	assert.Equal(t, StateAnonymous, m.State())
	assert.Nil(t, m.User())

	// The dead token is gone and login was shown exactly once even
	// though both the 401 callback and startup settle the session
	token, readErr := store.Read()
	require.NoError(t, readErr)
	assert.Empty(t, token)

	logins, dashboards := nav.counts()
	assert.Equal(t, 1, logins)
	assert.Equal(t, 0, dashboards)
}

func TestStartClearsTokenOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"code":"internal_error","message":"Internal server error"}}`))
	}))
	defer server.Close()

	m, store, nav := newManager(t, server.URL, "fp_stale")

	err := m.Start(context.Background())
	require.Error(t, err)

	assert.Equal(t, StateAnonymous, m.State())
	assert.Nil(t, m.User())

	// The token failed verification, so it is dropped even though the
	// failure was not a 401
	token, readErr := store.Read()
	require.NoError(t, readErr)
	assert.Empty(t, token)

	logins, dashboards := nav.counts()
	assert.Equal(t, 1, logins)
	assert.Equal(t, 0, dashboards)
}

func TestStartClearsTokenOnUnreachableServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	m, store, _ := newManager(t, server.URL, "fp_stale")

	err := m.Start(context.Background())
	require.Error(t, err)

	assert.Equal(t, StateAnonymous, m.State())

	token, readErr := store.Read()
	require.NoError(t, readErr)
	assert.Empty(t, token)
}

func TestLoginMovesToAuthenticated(t *testing.T) {
	fake := newFakeControlPlane(t)
	m, store, nav := newManager(t, fake.server.URL, "")

	err := m.Login(context.Background(), "admin", "changeme")
	require.NoError(t, err)

	assert.Equal(t, StateAuthenticated, m.State())
	require.NotNil(t, m.User())
	assert.True(t, m.User().IsSuperuser)

	token, readErr := store.Read()
	require.NoError(t, readErr)
	assert.Equal(t, "fp_good", token)

	_, dashboards := nav.counts()
	assert.Equal(t, 1, dashboards)
}

func TestLoginStaysAnonymousWhileInFlight(t *testing.T) {
	started := make(chan struct{}, 1)
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started <- struct{}{}
		<-release
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"fp_good","token_type":"bearer","user":{"id":1,"username":"admin"}}`))
	}))
	defer server.Close()

	m, _, _ := newManager(t, server.URL, "")
	require.NoError(t, m.Start(context.Background()))
	require.Equal(t, StateAnonymous, m.State())

	done := make(chan error, 1)
	go func() {
		done <- m.Login(context.Background(), "admin", "changeme")
	}()

	// While the attempt is in flight the session stays anonymous, so
	// the login screen keeps rendering instead of flipping to a
	// loading placeholder
	<-started
	assert.Equal(t, StateAnonymous, m.State())
	assert.Nil(t, m.User())

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, StateAuthenticated, m.State())
}

func TestFailedLoginStaysAnonymous(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"code":"unauthorized","message":"Incorrect username or password"}}`))
	}))
	defer server.Close()

	m, _, nav := newManager(t, server.URL, "")

	err := m.Login(context.Background(), "admin", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Incorrect username or password")

	assert.Equal(t, StateAnonymous, m.State())
	assert.Nil(t, m.User())

	// Still on the login screen, no extra redirect
	logins, dashboards := nav.counts()
	assert.Equal(t, 0, logins)
	assert.Equal(t, 0, dashboards)
}

func TestConcurrentUnauthorizedRedirectsOnce(t *testing.T) {
	fake := newFakeControlPlane(t)
	m, _, nav := newManager(t, fake.server.URL, "fp_good")

	require.NoError(t, m.Start(context.Background()))
	require.Equal(t, StateAuthenticated, m.State())

	fake.revoked.Store(true)

	// A burst of requests all failing with 401 together
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = m.Client().ListSites(context.Background())
		}()
	}
	wg.Wait()

	assert.Equal(t, StateAnonymous, m.State())
	assert.Nil(t, m.User())

	logins, _ := nav.counts()
	assert.Equal(t, 1, logins)
}

func TestLogoutSurvivesUnreachableServer(t *testing.T) {
	fake := newFakeControlPlane(t)
	m, store, nav := newManager(t, fake.server.URL, "fp_good")

	require.NoError(t, m.Start(context.Background()))

	fake.server.Close()
	m.Logout(context.Background())

	assert.Equal(t, StateAnonymous, m.State())
	assert.Nil(t, m.User())

	token, err := store.Read()
	require.NoError(t, err)
	assert.Empty(t, token)

	logins, _ := nav.counts()
	assert.Equal(t, 1, logins)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "unknown", StateUnknown.String())
	assert.Equal(t, "loading", StateLoading.String())
	assert.Equal(t, "authenticated", StateAuthenticated.String())
	assert.Equal(t, "anonymous", StateAnonymous.String())
}
