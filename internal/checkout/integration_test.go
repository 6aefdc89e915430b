package checkout_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andydyb/roamstop-v1/internal/api"
	"github.com/andydyb/roamstop-v1/internal/checkout"
	"github.com/andydyb/roamstop-v1/internal/config"
	"github.com/andydyb/roamstop-v1/internal/nav"
	"github.com/andydyb/roamstop-v1/internal/session"
	"github.com/andydyb/roamstop-v1/internal/stripe"
)

// fakeBackend runs the real API client against an in-process server, so
// the checkout sequence is exercised over the wire.
type fakeBackend struct {
	intentFails bool

	gotOrder   map[string]any
	gotUpdates map[int64]string
}

func (b *fakeBackend) start(t *testing.T) *api.Client {
	t.Helper()
	b.gotUpdates = make(map[int64]string)

	e := echo.New()
	e.POST("/orders/public/", func(c echo.Context) error {
		if err := c.Bind(&b.gotOrder); err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, map[string]any{
			"id":             101,
			"customer_email": b.gotOrder["customer_email"],
			"reseller_id":    b.gotOrder["reseller_id"],
			"price_paid":     "34.99",
			"currency_paid":  "USD",
			"order_status":   "PENDING_PAYMENT",
		})
	})
	e.POST("/payments/create-payment-intent", func(c echo.Context) error {
		if b.intentFails {
			return c.JSON(http.StatusBadGateway, map[string]string{"detail": "Stripe is unreachable"})
		}
		return c.JSON(http.StatusOK, map[string]any{
			"client_secret":     "pi_9_secret_z",
			"order_id":          101,
			"payment_intent_id": "pi_9",
		})
	})
	e.PATCH("/orders/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return err
		}
		var body map[string]string
		if err := c.Bind(&body); err != nil {
			return err
		}
		b.gotUpdates[id] = body["order_status"]
		return c.JSON(http.StatusOK, map[string]any{"id": id, "order_status": body["order_status"]})
	})

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	sess := session.New(session.NewMemoryStore())
	return api.NewClient(&config.API{BaseURL: srv.URL}, sess, nil)
}

func TestCheckoutOverTheWireIntentFailure(t *testing.T) {
	backend := &fakeBackend{intentFails: true}
	client := backend.start(t)

	sess := seededSession(t)
	flow := checkout.NewFlow(client, &fakeConfirmer{}, sess, nil)

	co, err := flow.Collect()
	require.NoError(t, err)

	_, err = flow.Submit(context.Background(), co, checkout.Customer{Email: "traveler@example.com"}, testCard)
	require.Error(t, err)

	// The displayed message is the intent failure detail, not a generic one.
	assert.EqualError(t, err, "Stripe is unreachable")
	assert.Equal(t, api.OrderStatusFailedPayment, backend.gotUpdates[101])
}

func TestCheckoutOverTheWireSuccess(t *testing.T) {
	backend := &fakeBackend{}
	client := backend.start(t)

	sess := seededSession(t)
	confirmer := &fakeConfirmer{intent: &stripe.PaymentIntent{ID: "pi_9", Status: stripe.StatusSucceeded}}
	flow := checkout.NewFlow(client, confirmer, sess, nil)

	co, err := flow.Collect()
	require.NoError(t, err)

	result, err := flow.Submit(context.Background(), co, checkout.Customer{Email: "traveler@example.com"}, testCard)
	require.NoError(t, err)

	assert.Equal(t, nav.OrderSuccess, result.Route)
	assert.Equal(t, "pi_9_secret_z", confirmer.gotSecret)
	assert.Equal(t, float64(11), backend.gotOrder["product_package_id"])
	assert.Equal(t, float64(42), backend.gotOrder["reseller_id"])
	assert.Equal(t, api.OrderStatusProcessing, backend.gotUpdates[101])

	lastOrder, err := sess.LastOrder()
	require.NoError(t, err)
	require.NotNil(t, lastOrder)
	assert.True(t, lastOrder.PricePaid.Equal(decimal.NewFromFloat(34.99)))
}
