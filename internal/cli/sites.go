package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/frankenpanel/frankenpanel/internal/api/request"
)

func newSiteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "site",
		Short: "Site management commands",
	}

	cmd.AddCommand(newSiteListCmd())
	cmd.AddCommand(newSiteCreateCmd())
	cmd.AddCommand(newSiteGetCmd())
	cmd.AddCommand(newSiteUpdateCmd())
	cmd.AddCommand(newSiteDeleteCmd())
	cmd.AddCommand(newSiteStartCmd())
	cmd.AddCommand(newSiteStopCmd())

	return cmd
}

// parseID parses a positional numeric id argument
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

func newSiteListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all sites",
		RunE: func(cmd *cobra.Command, args []string) error {
			sites, err := client.ListSites(cmd.Context())
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(sites)
			return nil
		},
	}
}

func newSiteCreateCmd() *cobra.Command {
	var (
		name, siteType, domain, phpVersion, description string

		noDatabase bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Provision a new site",
		RunE: func(cmd *cobra.Command, args []string) error {
			createDB := !noDatabase
			site, err := client.CreateSite(cmd.Context(), request.CreateSiteRequest{
				Name:           name,
				SiteType:       siteType,
				Domain:         domain,
				PHPVersion:     phpVersion,
				Description:    description,
				CreateDatabase: &createDB,
			})
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(*site)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Site name (required)")
	cmd.Flags().StringVar(&siteType, "type", "wordpress", "Site type: wordpress, joomla, custom_php, static")
	cmd.Flags().StringVar(&domain, "domain", "", "Primary domain (required)")
	cmd.Flags().StringVar(&phpVersion, "php", "", "PHP version")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.Flags().BoolVar(&noDatabase, "no-database", false, "Skip database provisioning")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("domain")

	return cmd
}

func newSiteGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			site, err := client.GetSite(cmd.Context(), id)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(*site)
			return nil
		},
	}
}

func newSiteUpdateCmd() *cobra.Command {
	var name, phpVersion, description string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change site settings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var req request.UpdateSiteRequest
			if cmd.Flags().Changed("name") {
				req.Name = &name
			}
			if cmd.Flags().Changed("php") {
				req.PHPVersion = &phpVersion
			}
			if cmd.Flags().Changed("description") {
				req.Description = &description
			}

			site, err := client.UpdateSite(cmd.Context(), id, req)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(*site)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New site name")
	cmd.Flags().StringVar(&phpVersion, "php", "", "New PHP version")
	cmd.Flags().StringVar(&description, "description", "", "New description")

	return cmd
}

func newSiteDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a site and its resources",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if err := client.DeleteSite(cmd.Context(), id); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Site deleted")
			return nil
		},
	}
}

func newSiteStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <id>",
		Short: "Start a site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			site, err := client.StartSite(cmd.Context(), id)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(*site)
			return nil
		},
	}
}

func newSiteStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop <id>",
		Short: "Stop a site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			site, err := client.StopSite(cmd.Context(), id)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(*site)
			return nil
		},
	}
}
