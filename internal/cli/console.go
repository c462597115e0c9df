package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/frankenpanel/frankenpanel/internal/console/session"
	"github.com/frankenpanel/frankenpanel/internal/tui"
)

func newConsoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Start the interactive console",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := session.NewManager(client)

			p := tea.NewProgram(tui.New(sess), tea.WithAltScreen())
			sess.Attach(tui.NewNavigator(p.Send))

			if _, err := p.Run(); err != nil {
				return fmt.Errorf("console error: %w", err)
			}
			return nil
		},
	}
}
