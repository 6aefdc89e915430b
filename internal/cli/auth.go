package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andydyb/roamstop-v1/internal/nav"
)

func newLoginCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "login <email>",
		Short: "Login as a reseller",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(a.out, "Password: ")
			password, err := bufio.NewReader(a.in).ReadString('\n')
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}
			password = strings.TrimRight(password, "\r\n")

			token, err := a.api.Login(cmd.Context(), args[0], password)
			if err != nil {
				return err
			}
			if token.AccessToken == "" {
				return errors.New("login successful, but no token received")
			}
			if err := a.session.SetAccessToken(token.AccessToken); err != nil {
				return fmt.Errorf("store access token: %w", err)
			}

			fmt.Fprintf(a.out, "Logged in. Continue at %s\n", nav.Dashboard)
			return nil
		},
	}
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logout the current reseller",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.ClearAccessToken(); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Logged out. Continue at %s\n", nav.Login)
			return nil
		},
	}
}
