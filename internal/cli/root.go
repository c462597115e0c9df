package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/frankenpanel/frankenpanel/internal/console/apiclient"
)

var (
	cfg    *Config
	client *apiclient.Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "panelctl",
		Short: "Operator console for the FrankenPanel control plane",
		Long: `panelctl manages sites, databases, domains, backups and operator
accounts on a FrankenPanel control plane.

Run a subcommand directly for scripting, or start the interactive
console with "panelctl console".`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			client = apiclient.New(cfg.ServerURL, cfg.Credentials())
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: PANELCTL_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.Token, "token", cfg.Token, "Session token (env: PANELCTL_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "Token file path (env: PANELCTL_TOKEN_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newSiteCmd())
	rootCmd.AddCommand(newDatabaseCmd())
	rootCmd.AddCommand(newDomainCmd())
	rootCmd.AddCommand(newBackupCmd())
	rootCmd.AddCommand(newUserCmd())
	rootCmd.AddCommand(newAuditCmd())
	rootCmd.AddCommand(newHealthCmd())
	rootCmd.AddCommand(newConsoleCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
