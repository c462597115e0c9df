package cli

import (
	"github.com/spf13/cobra"
)

func newAuditCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show the audit log (superuser only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := client.ListAudit(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(entries)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 100, "Maximum entries to show")

	return cmd
}
