package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/frankenpanel/frankenpanel/internal/api/response"
	"github.com/frankenpanel/frankenpanel/internal/storage"
)

// dashboardData is what the dashboard section shows
type dashboardData struct {
	sites   []response.Site
	healthy bool
}

func newSectionTable() table.Model {
	t := table.New(
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorDim).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(ColorDark).
		Background(ColorAccent).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadSection returns the command that fetches the active section's data
func (m Model) loadSection(key string, gen int) tea.Cmd {
	client := m.sess.Client()

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		var (
			data any
			err  error
		)
		switch key {
		case "dashboard":
			dash := dashboardData{}
			dash.sites, err = client.ListSites(ctx)
			dash.healthy = client.Health(ctx) == nil
			data = &dash
		case "sites":
			data, err = client.ListSites(ctx)
		case "databases":
			data, err = client.ListDatabases(ctx, storage.AllSites)
		case "domains":
			data, err = client.ListDomains(ctx, storage.AllSites)
		case "backups":
			data, err = client.ListBackups(ctx, storage.AllSites)
		case "users":
			data, err = client.ListUsers(ctx)
		case "audit":
			data, err = client.ListAudit(ctx, 200)
		}

		return dataLoadedMsg{key: key, gen: gen, data: data, err: err}
	}
}

// applyData installs freshly loaded data into the active section
func (m *Model) applyData(key string, data any) {
	if key == "dashboard" {
		if dash, ok := data.(*dashboardData); ok {
			m.dash = dash
		}
		return
	}

	var (
		cols []table.Column
		rows []table.Row
	)

	switch v := data.(type) {
	case []response.Site:
		cols = []table.Column{
			{Title: "ID", Width: 5},
			{Title: "Name", Width: 24},
			{Title: "Type", Width: 12},
			{Title: "Status", Width: 10},
			{Title: "Port", Width: 6},
			{Title: "PHP", Width: 6},
		}
		for _, s := range v {
			rows = append(rows, table.Row{
				fmt.Sprint(s.ID), s.Name, s.SiteType, s.Status,
				fmt.Sprint(s.WorkerPort), s.PHPVersion,
			})
		}

	case []response.Database:
		cols = []table.Column{
			{Title: "ID", Width: 5},
			{Title: "Site", Width: 6},
			{Title: "Name", Width: 24},
			{Title: "Username", Width: 18},
			{Title: "Host", Width: 14},
			{Title: "Port", Width: 6},
		}
		for _, d := range v {
			rows = append(rows, table.Row{
				fmt.Sprint(d.ID), fmt.Sprint(d.SiteID), d.Name, d.Username, d.Host, fmt.Sprint(d.Port),
			})
		}

	case []response.Domain:
		cols = []table.Column{
			{Title: "ID", Width: 5},
			{Title: "Site", Width: 6},
			{Title: "Name", Width: 30},
			{Title: "Primary", Width: 8},
			{Title: "SSL", Width: 5},
		}
		for _, d := range v {
			rows = append(rows, table.Row{
				fmt.Sprint(d.ID), fmt.Sprint(d.SiteID), d.Name, yesNo(d.IsPrimary), yesNo(d.SSLEnabled),
			})
		}

	case []response.Backup:
		cols = []table.Column{
			{Title: "ID", Width: 5},
			{Title: "Site", Width: 6},
			{Title: "Filename", Width: 34},
			{Title: "Size", Width: 10},
			{Title: "Status", Width: 10},
		}
		for _, b := range v {
			rows = append(rows, table.Row{
				fmt.Sprint(b.ID), fmt.Sprint(b.SiteID), b.Filename,
				fmt.Sprint(b.SizeBytes), b.Status,
			})
		}

	case []response.User:
		cols = []table.Column{
			{Title: "ID", Width: 5},
			{Title: "Username", Width: 18},
			{Title: "Email", Width: 28},
			{Title: "Active", Width: 7},
			{Title: "Super", Width: 6},
		}
		for _, u := range v {
			rows = append(rows, table.Row{
				fmt.Sprint(u.ID), u.Username, u.Email, yesNo(u.IsActive), yesNo(u.IsSuperuser),
			})
		}

	case []response.AuditEntry:
		cols = []table.Column{
			{Title: "Time", Width: 20},
			{Title: "User", Width: 14},
			{Title: "Action", Width: 14},
			{Title: "Resource", Width: 18},
			{Title: "OK", Width: 4},
		}
		for _, e := range v {
			rows = append(rows, table.Row{
				e.CreatedAt.Format("2006-01-02 15:04:05"), e.Username, e.Action, e.Resource, yesNo(e.Success),
			})
		}
	}

	m.table.SetColumns(cols)
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// viewSection renders the active section
func (m Model) viewSection() string {
	if m.loading {
		return StyleSubtitle.Render("Loading " + m.activeKey() + "...")
	}
	if m.activeKey() == "dashboard" {
		return m.viewDashboard()
	}
	return m.table.View()
}

func (m Model) viewDashboard() string {
	if m.dash == nil {
		return StyleSubtitle.Render("No data yet")
	}

	counts := map[string]int{}
	for _, s := range m.dash.sites {
		counts[s.Status]++
	}

	var statusLines []string
	for _, status := range []string{"active", "pending", "inactive", "suspended"} {
		statusLines = append(statusLines,
			fmt.Sprintf("%s %d", statusStyle(status).Render(status+":"), counts[status]))
	}

	sitesBlock := StyleCard.Render(lipgloss.JoinVertical(lipgloss.Left,
		append([]string{
			StyleTitle.Render("Sites"),
			fmt.Sprintf("total: %d", len(m.dash.sites)),
		}, statusLines...)...,
	))

	health := StyleStatusActive.Render("reachable")
	if !m.dash.healthy {
		health = StyleStatusSuspended.Render("unreachable")
	}
	serverBlock := StyleCard.Render(lipgloss.JoinVertical(lipgloss.Left,
		StyleTitle.Render("Control plane"),
		m.sess.Client().BaseURL(),
		health,
	))

	return lipgloss.JoinHorizontal(lipgloss.Top, sitesBlock, serverBlock)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
