package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/frankenpanel/frankenpanel/internal/console/session"
)

// loginResultMsg reports the outcome of a login attempt
type loginResultMsg struct {
	err error
}

// LoginModel is the login screen
type LoginModel struct {
	sess *session.Manager

	username textinput.Model
	password textinput.Model
	focus    int
	busy     bool
	errMsg   string
}

// NewLoginModel creates the login screen
func NewLoginModel(sess *session.Manager) LoginModel {
	username := textinput.New()
	username.Prompt = "Username: "
	username.PromptStyle = StyleInputPrompt
	username.CharLimit = 64
	username.Focus()

	password := textinput.New()
	password.Prompt = "Password: "
	password.PromptStyle = StyleInputPrompt
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return LoginModel{
		sess:     sess,
		username: username,
		password: password,
	}
}

// Reset clears the form for a fresh login attempt
func (m *LoginModel) Reset() {
	m.username.SetValue("")
	m.password.SetValue("")
	m.username.Focus()
	m.password.Blur()
	m.focus = 0
	m.busy = false
	m.errMsg = ""
}

// Update implements the login screen's message handling
func (m LoginModel) Update(msg tea.Msg) (LoginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			m.password.SetValue("")
		}
		return m, nil

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			m.focus = (m.focus + 1) % 2
			m.applyFocus()
			return m, nil
		case "shift+tab", "up":
			m.focus = (m.focus + 1) % 2
			m.applyFocus()
			return m, nil
		case "enter":
			if m.focus == 0 {
				m.focus = 1
				m.applyFocus()
				return m, nil
			}
			user := m.username.Value()
			pass := m.password.Value()
			if user == "" || pass == "" {
				m.errMsg = "Username and password are required"
				return m, nil
			}
			m.busy = true
			m.errMsg = ""
			return m, m.submit(user, pass)
		}
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.username, cmd = m.username.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m *LoginModel) applyFocus() {
	if m.focus == 0 {
		m.username.Focus()
		m.password.Blur()
	} else {
		m.username.Blur()
		m.password.Focus()
	}
}

// submit runs the login attempt. On success the session manager drives
// the navigator to the dashboard; only the failure needs a message here.
func (m LoginModel) submit(user, pass string) tea.Cmd {
	sess := m.sess
	return func() tea.Msg {
		err := sess.Login(context.Background(), user, pass)
		return loginResultMsg{err: err}
	}
}

// View renders the login screen
func (m LoginModel) View() string {
	lines := []string{
		StyleTitle.Render("Sign in to FrankenPanel"),
		"",
		m.username.View(),
		m.password.View(),
	}

	if m.busy {
		lines = append(lines, "", StyleSubtitle.Render("Signing in..."))
	}
	if m.errMsg != "" {
		lines = append(lines, "", StyleError.Render(m.errMsg))
	}
	lines = append(lines, "", StyleSubtitle.Render("enter to submit, ctrl+c to quit"))

	return StyleCard.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
