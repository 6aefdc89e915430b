package dashboard

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/andydyb/roamstop-v1/internal/api"
)

const dateLayout = "2006-01-02"

// RenderSalesTable writes the sales table. Output depends only on the
// slice: rendering the same sales twice produces identical text.
func RenderSalesTable(w io.Writer, sales []api.Order) {
	if len(sales) == 0 {
		fmt.Fprintln(w, "No sales found yet.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ORDER ID\tDATE\tPRODUCT\tCUSTOMER EMAIL\tPRICE PAID\tSTATUS")
	for _, order := range sales {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t$%s %s\t%s\n",
			order.ID,
			order.CreatedAt.Format(dateLayout),
			order.ProductPackage.Name,
			order.CustomerEmail,
			order.PricePaid.StringFixed(2),
			order.CurrencyPaid,
			order.OrderStatus,
		)
	}
	tw.Flush()
}

// RenderCommissionsTable writes the commissions table, same determinism as
// RenderSalesTable.
func RenderCommissionsTable(w io.Writer, commissions []api.Commission) {
	if len(commissions) == 0 {
		fmt.Fprintln(w, "No commission records found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tORDER ID\tTYPE\tAMOUNT\tCURRENCY\tSTATUS\tORIGINAL SELLER")
	for _, c := range commissions {
		originalSeller := "N/A"
		if c.OriginalOrderResellerID != nil {
			originalSeller = fmt.Sprint(*c.OriginalOrderResellerID)
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
			c.ID,
			c.CreatedAt.Format(dateLayout),
			c.OrderID,
			c.CommissionType,
			c.Amount.StringFixed(2),
			c.Currency,
			c.CommissionStatus,
			originalSeller,
		)
	}
	tw.Flush()
}
