package session

import (
	"context"
	"sync"

	"github.com/frankenpanel/frankenpanel/internal/api/response"
	"github.com/frankenpanel/frankenpanel/internal/console/apiclient"
)

// State describes what the console knows about the current session
type State int

const (
	// StateUnknown means the session has not been checked yet
	StateUnknown State = iota
	// StateLoading means a session check is in flight
	StateLoading
	// StateAuthenticated means the operator has a valid session
	StateAuthenticated
	// StateAnonymous means there is no valid session
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateUnknown:
		return "unknown"
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "invalid"
	}
}

// Navigator is where the manager sends the operator when the session
// state settles
type Navigator interface {
	ShowLogin()
	ShowDashboard()
}

// Manager tracks the session lifecycle for the console.
//
// The operator identity is set exactly when the state is authenticated.
// When any request is rejected with 401, the manager drops to anonymous
// and sends the operator to the login screen once, no matter how many
// in-flight requests fail together.
type Manager struct {
	client *apiclient.Client

	mu    sync.Mutex
	state State
	user  *response.User
	nav   Navigator
}

// NewManager creates a session manager and registers it as the client's
// unauthorized handler
func NewManager(client *apiclient.Client) *Manager {
	m := &Manager{
		client: client,
		state:  StateUnknown,
	}
	client.SetOnUnauthorized(m.handleUnauthorized)
	return m
}

// Attach sets the navigator that receives screen transitions
func (m *Manager) Attach(nav Navigator) {
	m.mu.Lock()
	m.nav = nav
	m.mu.Unlock()
}

// State returns the current session state
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// User returns the operator identity, or nil unless authenticated
func (m *Manager) User() *response.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// Client returns the API client the manager drives
func (m *Manager) Client() *apiclient.Client {
	return m.client
}

// Start resolves the session on console startup. With a stored token it
// asks the server who the operator is; without one it settles on
// anonymous directly. The state never passes through authenticated
// unless the server confirms the token.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	m.state = StateLoading
	m.user = nil
	m.mu.Unlock()

	token, err := m.client.Store().Read()
	if err != nil {
		m.settleAnonymous()
		return err
	}
	if token == "" {
		m.settleAnonymous()
		return nil
	}

	user, err := m.client.Me(ctx)
	if err != nil {
		// A 401 already cleared the token through the client callback.
		// Clear it here too: a token that failed verification for any
		// reason is not kept around.
		_ = m.client.Store().Clear()
		m.settleAnonymous()
		return err
	}

	m.mu.Lock()
	m.state = StateAuthenticated
	m.user = user
	nav := m.nav
	m.mu.Unlock()

	if nav != nil {
		nav.ShowDashboard()
	}
	return nil
}

// Login authenticates the operator. The session stays anonymous until
// the server accepts the credentials, so the login screen keeps
// rendering while the attempt is in flight; on failure the error
// carries the server's message.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	token, err := m.client.Login(ctx, username, password)
	if err != nil {
		m.mu.Lock()
		m.state = StateAnonymous
		m.user = nil
		m.mu.Unlock()
		return err
	}

	m.mu.Lock()
	m.state = StateAuthenticated
	m.user = &token.User
	nav := m.nav
	m.mu.Unlock()

	if nav != nil {
		nav.ShowDashboard()
	}
	return nil
}

// Logout ends the session. The local token is dropped even when the
// server cannot be reached.
func (m *Manager) Logout(ctx context.Context) {
	_ = m.client.Logout(ctx)
	m.settleAnonymous()
}

// handleUnauthorized is the client's 401 callback. The transition to
// anonymous happens at most once per authenticated session, so a burst
// of failing requests produces a single login redirect.
func (m *Manager) handleUnauthorized() {
	m.settleAnonymous()
}

// settleAnonymous moves to anonymous and redirects to login. Already
// being anonymous makes it a no-op, so repeated 401s redirect once.
func (m *Manager) settleAnonymous() {
	m.mu.Lock()
	if m.state == StateAnonymous {
		m.mu.Unlock()
		return
	}
	m.state = StateAnonymous
	m.user = nil
	nav := m.nav
	m.mu.Unlock()

	if nav != nil {
		nav.ShowLogin()
	}
}
