package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/andydyb/roamstop-v1/internal/catalog"
)

func newVisitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "visit <landing-url>",
		Short: "Open a landing link, capture its referral id and list countries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flow := catalog.NewFlow(a.api, a.session)

			ref, err := flow.CaptureReferral(args[0])
			if err != nil {
				return err
			}
			if ref != "" {
				fmt.Fprintf(a.out, "Referral id %s saved.\n", ref)
			}

			countries, err := flow.Countries(cmd.Context())
			if err != nil {
				return fmt.Errorf("load countries: %w", err)
			}
			if len(countries) == 0 {
				fmt.Fprintln(a.out, "No countries available")
				return nil
			}
			for _, c := range countries {
				fmt.Fprintln(a.out, c.DisplayName)
			}
			return nil
		},
	}
}

func newProductsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "products <country-code>",
		Short: "List active packages for a country",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flow := catalog.NewFlow(a.api, a.session)

			products, err := flow.Products(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("error loading packages: %w", err)
			}
			if len(products) == 0 {
				fmt.Fprintln(a.out, "No packages found for this country.")
				return nil
			}
			for _, p := range products {
				desc := ""
				if p.Description != nil {
					desc = *p.Description
				}
				fmt.Fprintf(a.out, "[%d] %s\n", p.ID, p.Name)
				if desc != "" {
					fmt.Fprintf(a.out, "    %s\n", desc)
				}
				fmt.Fprintf(a.out, "    Duration: %d days  Price: $%s\n", p.DurationDays, p.Price.StringFixed(2))
			}
			return nil
		},
	}
}

func newSelectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "select <product-id>",
		Short: "Select a package and move to checkout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			productID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}

			flow := catalog.NewFlow(a.api, a.session)
			sel, route, err := flow.Select(cmd.Context(), productID)
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Selected Package: %s ($%s)\n", sel.ProductName, sel.ProductPrice.StringFixed(2))
			fmt.Fprintf(a.out, "Continue at %s\n", route)
			return nil
		},
	}
}
