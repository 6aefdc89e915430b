// Package stripe talks to the payment processor's REST API to confirm card
// payments with the publishable key, the same calls the hosted browser SDK
// makes. No webhooks and no polling live here.
package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/andydyb/roamstop-v1/internal/config"
)

type Card struct {
	Number   string
	ExpMonth int
	ExpYear  int
	CVC      string
}

type PaymentIntent struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

const StatusSucceeded = "succeeded"

// CardError is a failure the processor reports about the card itself
// (declined, expired, bad cvc). Message is shown to the customer verbatim.
type CardError struct {
	Code    string
	Message string
}

func (e *CardError) Error() string {
	return e.Message
}

type Confirmer interface {
	ConfirmCardPayment(ctx context.Context, clientSecret string, card Card, billingEmail string) (*PaymentIntent, error)
}

type confirmerImpl struct {
	httpClient     *http.Client
	baseApiURL     string
	publishableKey string
}

func NewConfirmer(cfg *config.Stripe) Confirmer {
	return &confirmerImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL:     strings.TrimRight(cfg.BaseApiURL, "/"),
		publishableKey: cfg.PublishableKey,
	}
}

func (c *confirmerImpl) ConfirmCardPayment(ctx context.Context, clientSecret string, card Card, billingEmail string) (*PaymentIntent, error) {
	intentID, err := intentIDFromSecret(clientSecret)
	if err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("key", c.publishableKey)
	form.Set("client_secret", clientSecret)
	form.Set("payment_method_data[type]", "card")
	form.Set("payment_method_data[card][number]", card.Number)
	form.Set("payment_method_data[card][exp_month]", strconv.Itoa(card.ExpMonth))
	form.Set("payment_method_data[card][exp_year]", strconv.Itoa(card.ExpYear))
	form.Set("payment_method_data[card][cvc]", card.CVC)
	if billingEmail != "" {
		form.Set("payment_method_data[billing_details][email]", billingEmail)
	}

	endpoint := fmt.Sprintf("%s/v1/payment_intents/%s/confirm", c.baseApiURL, intentID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("confirm card payment request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var payload struct {
			Error struct {
				Type    string `json:"type"`
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.Unmarshal(body, &payload); err == nil && payload.Error.Message != "" {
			return nil, &CardError{Code: payload.Error.Code, Message: payload.Error.Message}
		}
		return nil, fmt.Errorf("payment processor error %d: %s", resp.StatusCode, string(body))
	}

	var intent PaymentIntent
	if err := json.Unmarshal(body, &intent); err != nil {
		return nil, fmt.Errorf("decode payment intent: %w", err)
	}
	return &intent, nil
}

// intentIDFromSecret derives the intent id from a client secret of the form
// pi_xxx_secret_yyy.
func intentIDFromSecret(clientSecret string) (string, error) {
	id, _, found := strings.Cut(clientSecret, "_secret")
	if !found || id == "" {
		return "", fmt.Errorf("malformed client secret")
	}
	return id, nil
}
