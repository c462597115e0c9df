package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/frankenpanel/frankenpanel/internal/console"
	"github.com/frankenpanel/frankenpanel/internal/console/session"
)

// Navigator feeds session transitions into the running program
type Navigator struct {
	send func(tea.Msg)
}

// NewNavigator creates a navigator that posts messages with send
func NewNavigator(send func(tea.Msg)) *Navigator {
	return &Navigator{send: send}
}

// ShowLogin implements session.Navigator
func (n *Navigator) ShowLogin() {
	n.send(showLoginMsg{})
}

// ShowDashboard implements session.Navigator
func (n *Navigator) ShowDashboard() {
	n.send(showDashboardMsg{})
}

type (
	showLoginMsg     struct{}
	showDashboardMsg struct{}
)

// dataLoadedMsg carries the result of a section load. The generation
// ties it to the request that asked for it; stale results are dropped.
type dataLoadedMsg struct {
	key  string
	gen  int
	data any
	err  error
}

// Model is the interactive console's root state
type Model struct {
	sess *session.Manager

	login LoginModel

	nav    []console.NavEntry
	active int

	gen     int
	loading bool
	errMsg  string

	table table.Model
	dash  *dashboardData

	width  int
	height int
}

// New creates the root console model
func New(sess *session.Manager) Model {
	return Model{
		sess:  sess,
		login: NewLoginModel(sess),
		nav:   console.VisibleNav(console.DefaultNav(), nil),
		table: newSectionTable(),
	}
}

// Init resolves the session in the background. The session manager
// reports the outcome through the navigator.
func (m Model) Init() tea.Cmd {
	sess := m.sess
	return tea.Batch(
		textinput.Blink,
		func() tea.Msg {
			_ = sess.Start(context.Background())
			return nil
		},
	)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case showLoginMsg:
		m.login.Reset()
		m.dash = nil
		return m, nil

	case showDashboardMsg:
		m.nav = console.VisibleNav(console.DefaultNav(), m.sess.User())
		m.active = 0
		cmd := m.loadActive()
		return m, cmd

	case dataLoadedMsg:
		if msg.gen != m.gen || msg.key != m.activeKey() {
			// A stale response from a section we already left
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.applyData(msg.key, msg.data)
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(msg.Height-8, 4))
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		switch console.Resolve(m.sess.State()) {
		case console.DecisionLogin:
			var cmd tea.Cmd
			m.login, cmd = m.login.Update(msg)
			return m, cmd
		case console.DecisionRender:
			return m.handleSectionKey(msg)
		default:
			return m, nil
		}
	}

	// Non-key messages go to whichever screen is up
	switch console.Resolve(m.sess.State()) {
	case console.DecisionLogin:
		var cmd tea.Cmd
		m.login, cmd = m.login.Update(msg)
		return m, cmd
	case console.DecisionRender:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleSectionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "tab":
		m.active = (m.active + 1) % len(m.nav)
		cmd := m.loadActive()
		return m, cmd

	case "shift+tab":
		m.active = (m.active + len(m.nav) - 1) % len(m.nav)
		cmd := m.loadActive()
		return m, cmd

	case "r":
		cmd := m.loadActive()
		return m, cmd

	case "L":
		sess := m.sess
		return m, func() tea.Msg {
			sess.Logout(context.Background())
			return nil
		}
	}

	// Number keys jump straight to a section
	if n := int(msg.String()[0] - '1'); len(msg.String()) == 1 && n >= 0 && n < len(m.nav) {
		m.active = n
		cmd := m.loadActive()
		return m, cmd
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) activeKey() string {
	if m.active < 0 || m.active >= len(m.nav) {
		return ""
	}
	return m.nav[m.active].Key
}

// loadActive kicks off a load for the active section. Bumping the
// generation invalidates every response still in flight.
func (m *Model) loadActive() tea.Cmd {
	m.gen++
	m.loading = true
	m.errMsg = ""
	return m.loadSection(m.activeKey(), m.gen)
}

// View renders the console
func (m Model) View() string {
	switch console.Resolve(m.sess.State()) {
	case console.DecisionLogin:
		return StyleApp.Render(m.login.View())
	case console.DecisionRender:
		return StyleApp.Render(lipgloss.JoinVertical(lipgloss.Left,
			m.viewTopBar(),
			m.viewSection(),
			m.viewStatusLine(),
		))
	default:
		return StyleApp.Render(StyleSubtitle.Render("Resolving session..."))
	}
}

func (m Model) viewTopBar() string {
	items := []string{StyleTitle.Render("FRANKENPANEL ")}

	for i, entry := range m.nav {
		label := "[" + string(rune('1'+i)) + "] " + entry.Title
		if i == m.active {
			items = append(items, StyleMenuItemActive.Render(label))
		} else {
			items = append(items, StyleMenuItem.Render(label))
		}
	}

	return StyleTopBar.Render(lipgloss.JoinHorizontal(lipgloss.Top, items...))
}

func (m Model) viewStatusLine() string {
	who := ""
	if user := m.sess.User(); user != nil {
		who = user.Username + " @ " + m.sess.Client().BaseURL() + "  "
	}
	if m.errMsg != "" {
		return StyleStatusLine.Render(who) + StyleError.Render(m.errMsg)
	}
	return StyleStatusLine.Render(who + "tab next · r refresh · L logout · q quit")
}
