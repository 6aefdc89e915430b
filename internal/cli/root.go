// Package cli is the terminal surface over the storefront and dashboard
// flows. Each command maps to one page of the original storefront; routes
// returned by flows are printed as the destination.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/andydyb/roamstop-v1/internal/api"
	"github.com/andydyb/roamstop-v1/internal/config"
	"github.com/andydyb/roamstop-v1/internal/nav"
	"github.com/andydyb/roamstop-v1/internal/session"
)

type app struct {
	cfg     *config.Config
	session *session.Session
	api     *api.Client
	out     io.Writer
	in      io.Reader
}

func Execute(cfg *config.Config) error {
	return newRootCmd(cfg).Execute()
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	a := &app{cfg: cfg, out: os.Stdout, in: os.Stdin}

	root := &cobra.Command{
		Use:           "roamstop",
		Short:         "RoamStop eSIM storefront and reseller dashboard",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			store, err := session.OpenSQLite(cfg.Session.Path)
			if err != nil {
				return err
			}
			a.session = session.New(store)
			a.api = api.NewClient(&cfg.API, a.session, a.onUnauthorized)
			return nil
		},
	}

	root.AddCommand(
		newVisitCmd(a),
		newProductsCmd(a),
		newSelectCmd(a),
		newCheckoutCmd(a),
		newLoginCmd(a),
		newLogoutCmd(a),
		newDashboardCmd(a),
		newCommissionsCmd(a),
		newPromoCmd(a),
	)
	return root
}

// onUnauthorized handles a 401 on any authenticated call: drop the token
// and point at the login view. Injected into the API client at construction.
func (a *app) onUnauthorized() {
	if err := a.session.ClearAccessToken(); err != nil {
		log.Printf("clear access token: %v", err)
	}
	fmt.Fprintf(a.out, "Session expired. Go to %s\n", nav.Login)
}

// requireLogin blocks authenticated commands when no live token is stored.
func (a *app) requireLogin() error {
	token := a.session.AccessToken()
	if token == "" || session.TokenExpired(token) {
		fmt.Fprintf(a.out, "Please login first: %s\n", nav.Login)
		return errors.New("not logged in")
	}
	return nil
}
