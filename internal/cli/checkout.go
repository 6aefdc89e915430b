package cli

import (
	"errors"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/andydyb/roamstop-v1/internal/checkout"
	"github.com/andydyb/roamstop-v1/internal/stripe"
)

func newCheckoutCmd(a *app) *cobra.Command {
	var (
		email    string
		name     string
		card     string
		expMonth int
		expYear  int
		cvc      string
	)

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Pay for the selected package",
		RunE: func(cmd *cobra.Command, args []string) error {
			flow := checkout.NewFlow(a.api, stripe.NewConfirmer(&a.cfg.Stripe), a.session, log.Default())

			co, err := flow.Collect()
			if err != nil {
				// Precondition failures block the whole form; there is no
				// retry path besides going back to the catalog.
				if errors.Is(err, checkout.ErrNoProductSelected) || errors.Is(err, checkout.ErrNoReferral) {
					fmt.Fprintf(a.out, "%s\n", err)
					return err
				}
				return err
			}

			fmt.Fprintf(a.out, "Selected Package: %s ($%s)\n",
				co.Selection.ProductName, co.Selection.ProductPrice.StringFixed(2))
			fmt.Fprintf(a.out, "Referral ID: %d\n", co.ResellerID)
			fmt.Fprintln(a.out, "Processing...")

			result, err := flow.Submit(cmd.Context(), co, checkout.Customer{Email: email, Name: name},
				stripe.Card{Number: card, ExpMonth: expMonth, ExpYear: expYear, CVC: cvc})
			if err != nil {
				fmt.Fprintf(a.out, "Error: %s\n", err)
				return err
			}

			fmt.Fprintln(a.out, result.Message)
			if !result.Completed {
				return nil
			}

			fmt.Fprintf(a.out, "Continue at %s\n", result.Route)
			return a.showOrderSuccess()
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "customer email (required)")
	cmd.Flags().StringVar(&name, "name", "", "customer name")
	cmd.Flags().StringVar(&card, "card-number", "", "card number")
	cmd.Flags().IntVar(&expMonth, "exp-month", 0, "card expiry month")
	cmd.Flags().IntVar(&expYear, "exp-year", 0, "card expiry year")
	cmd.Flags().StringVar(&cvc, "cvc", "", "card security code")
	cmd.MarkFlagRequired("email")
	return cmd
}

// showOrderSuccess renders the order-success view from the session snapshot
// and clears it afterwards, as the success page does on display.
func (a *app) showOrderSuccess() error {
	order, err := a.session.LastOrder()
	if err != nil {
		return fmt.Errorf("read last order: %w", err)
	}
	if order == nil {
		return nil
	}

	fmt.Fprintf(a.out, "Your order (ID: %d) for %s has been received.\n", order.ID, order.ProductPackage.Name)
	fmt.Fprintf(a.out, "Customer Email: %s\n", order.CustomerEmail)
	fmt.Fprintf(a.out, "Price Paid: $%s %s\n", order.PricePaid.StringFixed(2), order.CurrencyPaid)
	if status, err := a.session.LastPaymentStatus(); err == nil && status != "" {
		fmt.Fprintf(a.out, "Payment Status: %s\n", status)
	}

	return a.session.ClearLastOrder()
}
