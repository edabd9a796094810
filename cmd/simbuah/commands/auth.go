package commands

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// LoginCommand signs in and stores the session tokens
func LoginCommand(opts *globalOptions) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the warehouse API",
		Example: color.HiBlackString(`  # Sign in, reading the password from stdin
  echo "$PASSWORD" | simbuah login -u admin

  # Sign in against another server
  simbuah login -u admin -p secret --base-url=https://gudang.example.com/api`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" {
				return errors.New("--username is required")
			}
			if password == "" {
				line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				password = strings.TrimSpace(line)
				if password == "" {
					return errors.New("no password given")
				}
			}

			svc, closeStore, err := opts.newService(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeStore()
			role, err := svc.Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s (%s)\n", username, color.HiGreenString(role))
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password, read from stdin when empty")
	return cmd
}

// LogoutCommand ends the session and removes the stored tokens
func LogoutCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and remove the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeStore, err := opts.newService(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeStore()
			if err := svc.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return nil
		},
	}
}
