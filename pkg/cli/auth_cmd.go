package cli

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newLoginCmd(client *Client) *cobra.Command {
	var (
		username string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and print a session token",
		Long:  "Authenticate with a username and password. The password is prompted interactively unless --password is given. Export the printed token as CLINICDESK_TOKEN for later commands.",
		Example: `  # Interactive password prompt
  clinicdesk login --username admin

  # Non-interactive (scripts)
  clinicdesk login --username admin --password secret -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				fmt.Fprint(os.Stderr, "Password: ")
				raw, err := term.ReadPassword(int(syscall.Stdin))
				fmt.Fprintln(os.Stderr)
				if err != nil {
					return fmt.Errorf("read password: %w", err)
				}
				password = string(raw)
			}

			result, err := client.Login(username, password)
			if err != nil {
				return err
			}

			if getOutputFormat(cmd) == "json" {
				return printJSON(result)
			}
			fmt.Fprintf(os.Stderr, "Logged in as %s (%s)\n", result.Username, result.Role)
			fmt.Println(result.Token)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Account username")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prompted if empty)")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

func newLogoutCmd(client *Client) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Record the end of the current session",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := client.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, "Logged out")
			return nil
		},
	}
}
