package cli

import (
	"github.com/spf13/cobra"

	"github.com/frankenpanel/frankenpanel/internal/api/request"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Operator account commands (superuser only)",
	}

	cmd.AddCommand(newUserListCmd())
	cmd.AddCommand(newUserCreateCmd())
	cmd.AddCommand(newUserDeleteCmd())

	return cmd
}

func newUserListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List operator accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := client.ListUsers(cmd.Context())
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(users)
			return nil
		},
	}
}

func newUserCreateCmd() *cobra.Command {
	var (
		username, password, email, fullName string

		superuser bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an operator account",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := client.CreateUser(cmd.Context(), request.CreateUserRequest{
				Username:    username,
				Password:    password,
				Email:       email,
				FullName:    fullName,
				IsSuperuser: superuser,
			})
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(*user)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "user", "", "Username (required)")
	cmd.Flags().StringVar(&password, "pass", "", "Password (required)")
	cmd.Flags().StringVar(&email, "email", "", "Email (required)")
	cmd.Flags().StringVar(&fullName, "name", "", "Full name")
	cmd.Flags().BoolVar(&superuser, "superuser", false, "Grant superuser access")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("pass")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newUserDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove an operator account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if err := client.DeleteUser(cmd.Context(), id); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("User deleted")
			return nil
		},
	}
}
