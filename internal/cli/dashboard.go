package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andydyb/roamstop-v1/internal/dashboard"
)

func newDashboardCmd(a *app) *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the reseller dashboard: profile, sales and commissions",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			loader := dashboard.NewLoader(a.api, a.cfg.API.Origin)
			ctx := cmd.Context()

			// Each section loads on its own; one failing section does not
			// block the others from rendering.
			profile, err := loader.Profile(ctx)
			if err != nil {
				fmt.Fprintf(a.out, "Error loading profile: %s\n", err)
			} else {
				fmt.Fprintf(a.out, "Welcome, %s\n", profile.DisplayName)
				fmt.Fprintf(a.out, "Recruitment link: %s\n", profile.RecruitmentLink)
				if profile.PromotionDetails != "" {
					fmt.Fprintf(a.out, "Promotion: %s\n", profile.PromotionDetails)
				}
			}

			if count, err := loader.SalesCount(ctx); err != nil {
				fmt.Fprintf(a.out, "Total sales: error (%s)\n", err)
			} else {
				fmt.Fprintf(a.out, "Total sales: %d\n", count)
			}

			fmt.Fprintln(a.out, "\nRecent sales:")
			if sales, err := loader.SalesPage(ctx, page); err != nil {
				fmt.Fprintf(a.out, "Error loading sales data: %s\n", err)
			} else {
				dashboard.RenderSalesTable(a.out, sales)
			}

			if total, err := loader.TotalUnpaid(ctx); err != nil {
				fmt.Fprintf(a.out, "\nUnpaid commissions: error (%s)\n", err)
			} else {
				fmt.Fprintf(a.out, "\nUnpaid commissions: %s\n", total.StringFixed(2))
			}

			fmt.Fprintln(a.out, "\nCommissions:")
			if commissions, err := loader.CommissionsPage(ctx, "", page); err != nil {
				fmt.Fprintf(a.out, "Error loading commissions: %s\n", err)
			} else {
				dashboard.RenderCommissionsTable(a.out, commissions)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "page number for sales and commissions")
	return cmd
}

func newCommissionsCmd(a *app) *cobra.Command {
	var (
		status string
		page   int
	)

	cmd := &cobra.Command{
		Use:   "commissions",
		Short: "List commission records",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			loader := dashboard.NewLoader(a.api, a.cfg.API.Origin)

			commissions, err := loader.CommissionsPage(cmd.Context(), status, page)
			if err != nil {
				return err
			}
			dashboard.RenderCommissionsTable(a.out, commissions)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by commission status (UNPAID, READY_FOR_PAYOUT, PAID)")
	cmd.Flags().IntVar(&page, "page", 0, "page number")
	return cmd
}

func newPromoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "promo <details>",
		Short: "Update the reseller promotion details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			loader := dashboard.NewLoader(a.api, a.cfg.API.Origin)

			details, err := loader.UpdatePromotion(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Promotion details updated successfully!")
			fmt.Fprintf(a.out, "Current promotion: %s\n", details)
			return nil
		},
	}
}
