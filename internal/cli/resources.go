package cli

import (
	"github.com/spf13/cobra"

	"github.com/frankenpanel/frankenpanel/internal/api/request"
	"github.com/frankenpanel/frankenpanel/internal/storage"
)

// addSiteFilter registers the --site flag used by list commands
func addSiteFilter(cmd *cobra.Command, siteID *int64) {
	cmd.Flags().Int64Var(siteID, "site", storage.AllSites, "Filter by site id")
}

func newDatabaseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database management commands",
	}

	cmd.AddCommand(newDatabaseListCmd())
	cmd.AddCommand(newDatabaseCreateCmd())
	cmd.AddCommand(newDatabaseDeleteCmd())

	return cmd
}

func newDatabaseListCmd() *cobra.Command {
	var siteID int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List databases",
		RunE: func(cmd *cobra.Command, args []string) error {
			dbs, err := client.ListDatabases(cmd.Context(), siteID)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(dbs)
			return nil
		},
	}

	addSiteFilter(cmd, &siteID)
	return cmd
}

func newDatabaseCreateCmd() *cobra.Command {
	var (
		siteID int64
		name   string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Provision a database for a site",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := client.CreateDatabase(cmd.Context(), request.CreateDatabaseRequest{
				SiteID: siteID,
				Name:   name,
			})
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(*db)
			return nil
		},
	}

	cmd.Flags().Int64Var(&siteID, "site", 0, "Site id (required)")
	cmd.Flags().StringVar(&name, "name", "", "Database name (required)")
	_ = cmd.MarkFlagRequired("site")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newDatabaseDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if err := client.DeleteDatabase(cmd.Context(), id); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Database deleted")
			return nil
		},
	}
}

func newDomainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "domain",
		Short: "Domain management commands",
	}

	cmd.AddCommand(newDomainListCmd())
	cmd.AddCommand(newDomainCreateCmd())
	cmd.AddCommand(newDomainDeleteCmd())

	return cmd
}

func newDomainListCmd() *cobra.Command {
	var siteID int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List domains",
		RunE: func(cmd *cobra.Command, args []string) error {
			domains, err := client.ListDomains(cmd.Context(), siteID)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(domains)
			return nil
		},
	}

	addSiteFilter(cmd, &siteID)
	return cmd
}

func newDomainCreateCmd() *cobra.Command {
	var (
		siteID  int64
		name    string
		primary bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Attach a domain to a site",
		RunE: func(cmd *cobra.Command, args []string) error {
			domain, err := client.CreateDomain(cmd.Context(), request.CreateDomainRequest{
				SiteID:    siteID,
				Name:      name,
				IsPrimary: primary,
			})
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(*domain)
			return nil
		},
	}

	cmd.Flags().Int64Var(&siteID, "site", 0, "Site id (required)")
	cmd.Flags().StringVar(&name, "name", "", "Domain name (required)")
	cmd.Flags().BoolVar(&primary, "primary", false, "Make this the primary domain")
	_ = cmd.MarkFlagRequired("site")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newDomainDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Detach a domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if err := client.DeleteDomain(cmd.Context(), id); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Domain deleted")
			return nil
		},
	}
}

func newBackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Backup management commands",
	}

	cmd.AddCommand(newBackupListCmd())
	cmd.AddCommand(newBackupCreateCmd())
	cmd.AddCommand(newBackupRestoreCmd())
	cmd.AddCommand(newBackupDeleteCmd())

	return cmd
}

func newBackupListCmd() *cobra.Command {
	var siteID int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List backups",
		RunE: func(cmd *cobra.Command, args []string) error {
			backups, err := client.ListBackups(cmd.Context(), siteID)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(backups)
			return nil
		},
	}

	addSiteFilter(cmd, &siteID)
	return cmd
}

func newBackupCreateCmd() *cobra.Command {
	var siteID int64

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Take a backup of a site",
		RunE: func(cmd *cobra.Command, args []string) error {
			backup, err := client.CreateBackup(cmd.Context(), siteID)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(*backup)
			return nil
		},
	}

	cmd.Flags().Int64Var(&siteID, "site", 0, "Site id (required)")
	_ = cmd.MarkFlagRequired("site")

	return cmd
}

func newBackupRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <id>",
		Short: "Restore a site from a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			backup, err := client.RestoreBackup(cmd.Context(), id)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(*backup)
			return nil
		},
	}
}

func newBackupDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if err := client.DeleteBackup(cmd.Context(), id); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Backup deleted")
			return nil
		},
	}
}
