// Package checkout orchestrates the purchase sequence: create order, create
// payment intent, confirm the card, reconcile the order status. The
// sequence is linear with no retries; steps already taken are not rolled
// back, so an order without a confirmed payment is an accepted terminal
// state reconciled server-side.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/andydyb/roamstop-v1/internal/api"
	"github.com/andydyb/roamstop-v1/internal/nav"
	"github.com/andydyb/roamstop-v1/internal/session"
	"github.com/andydyb/roamstop-v1/internal/stripe"
)

// Precondition failures. Both are terminal for the attempt: the only way
// forward is back to the catalog or a valid referral link.
var (
	ErrNoProductSelected = errors.New("no product selected, please go back and select a package")
	ErrNoReferral        = errors.New("referral id missing, please use a valid referral link")
)

type OrderAPI interface {
	CreatePublicOrder(ctx context.Context, in *api.OrderCreate) (*api.Order, error)
	CreatePaymentIntent(ctx context.Context, orderID int64) (*api.PaymentIntent, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status string) (*api.Order, error)
}

type Flow struct {
	api      OrderAPI
	payments stripe.Confirmer
	session  *session.Session
	log      *log.Logger
}

func NewFlow(orderAPI OrderAPI, payments stripe.Confirmer, sess *session.Session, logger *log.Logger) *Flow {
	if logger == nil {
		logger = log.Default()
	}
	return &Flow{api: orderAPI, payments: payments, session: sess, log: logger}
}

// Checkout is the state collected from the session before anything is
// submitted.
type Checkout struct {
	Selection  session.Selection
	ResellerID int64
}

type Customer struct {
	Email string
	Name  string
}

// Result of a submitted attempt. Route is empty when the flow stays put
// (a payment left in a non-final status).
type Result struct {
	Order         *api.Order
	PaymentStatus string
	Message       string
	Route         nav.Route
	Completed     bool
}

// Collect reads the selected product and referral id from the session.
// Missing either blocks checkout before any network call.
func (f *Flow) Collect() (*Checkout, error) {
	sel, err := f.session.Selection()
	if err != nil {
		return nil, fmt.Errorf("read selection: %w", err)
	}
	if sel == nil {
		return nil, ErrNoProductSelected
	}

	rawID, err := f.session.ResellerID()
	if err != nil {
		return nil, fmt.Errorf("read referral id: %w", err)
	}
	if rawID == "" {
		return nil, ErrNoReferral
	}
	resellerID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return nil, ErrNoReferral
	}

	return &Checkout{Selection: *sel, ResellerID: resellerID}, nil
}

// Submit runs the sequence. Every error returns to the caller for display;
// the caller re-enables submission. The payment intent is created with the
// reseller token currently in the session, so a reseller login must be
// present in the same session as the customer.
func (f *Flow) Submit(ctx context.Context, co *Checkout, customer Customer, card stripe.Card) (*Result, error) {
	if customer.Email == "" {
		return nil, errors.New("customer email is required")
	}

	attempt := uuid.NewString()
	f.log.Printf("checkout attempt=%s product=%d reseller=%d", attempt, co.Selection.ProductID, co.ResellerID)

	in := &api.OrderCreate{
		CustomerEmail:    customer.Email,
		ProductPackageID: co.Selection.ProductID,
		ResellerID:       co.ResellerID,
	}
	if customer.Name != "" {
		in.CustomerName = &customer.Name
	}

	// Step 1: order creation is public. No order exists yet on failure, so
	// there is nothing to reconcile.
	order, err := f.api.CreatePublicOrder(ctx, in)
	if err != nil {
		f.log.Printf("checkout attempt=%s: create order failed: %v", attempt, err)
		return nil, err
	}
	f.log.Printf("checkout attempt=%s order=%d created", attempt, order.ID)

	// Step 2: intent creation is authenticated. On failure the order is
	// left behind; mark it failed and surface the intent error, not the
	// side-channel one.
	intent, err := f.api.CreatePaymentIntent(ctx, order.ID)
	if err != nil {
		f.markOrderStatus(ctx, attempt, order.ID, api.OrderStatusFailedPayment)
		return nil, err
	}

	// Step 3: hand the client secret and card to the processor.
	pi, err := f.payments.ConfirmCardPayment(ctx, intent.ClientSecret, card, customer.Email)
	if err != nil {
		f.markOrderStatus(ctx, attempt, order.ID, api.OrderStatusFailedPayment)
		return nil, err
	}

	if pi.Status == stripe.StatusSucceeded {
		// Optimistic: the webhook settles the authoritative status later.
		f.markOrderStatus(ctx, attempt, order.ID, api.OrderStatusProcessing)

		if err := f.session.SetLastOrder(order); err != nil {
			f.log.Printf("checkout attempt=%s: store last order: %v", attempt, err)
		}
		if err := f.session.SetLastPaymentStatus(pi.Status); err != nil {
			f.log.Printf("checkout attempt=%s: store payment status: %v", attempt, err)
		}
		if err := f.session.ClearSelection(); err != nil {
			f.log.Printf("checkout attempt=%s: clear selection: %v", attempt, err)
		}

		return &Result{
			Order:         order,
			PaymentStatus: pi.Status,
			Message:       "Payment successful! Processing your order...",
			Route:         nav.OrderSuccess,
			Completed:     true,
		}, nil
	}

	// Any other status: record it and wait for the customer to act on the
	// processor's instructions. No polling; a reload shows the final state.
	f.markOrderStatus(ctx, attempt, order.ID, strings.ToUpper(pi.Status))
	return &Result{
		Order:         order,
		PaymentStatus: pi.Status,
		Message:       fmt.Sprintf("Payment status: %s. Please follow any instructions.", pi.Status),
	}, nil
}

// markOrderStatus is the best-effort side channel. It never returns an
// error: a failed status update is logged and must not mask the primary
// error the caller is about to surface.
func (f *Flow) markOrderStatus(ctx context.Context, attempt string, orderID int64, status string) {
	if _, err := f.api.UpdateOrderStatus(ctx, orderID, status); err != nil {
		f.log.Printf("checkout attempt=%s: mark order %d as %s failed: %v", attempt, orderID, status, err)
	}
}
