package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/andydyb/roamstop-v1/internal/config"
)

// TokenSource yields the bearer token for authenticated calls. An empty
// string means no session; the Authorization header is then omitted.
type TokenSource interface {
	AccessToken() string
}

// Client wraps the backend REST API, one method per operation. Calls are
// fire-once: no retries, no caching. onUnauthorized runs before a 401 on an
// authenticated call propagates, so the caller can drop the session and
// route to login.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	tokens         TokenSource
	onUnauthorized func()
}

func NewClient(cfg *config.API, tokens TokenSource, onUnauthorized func()) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		tokens:         tokens,
		onUnauthorized: onUnauthorized,
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload any, authed bool, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal req payload: %w", err)
		}
		body = bytes.NewBuffer(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("http new request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		if token := c.tokens.AccessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if authed && resp.StatusCode == http.StatusUnauthorized {
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		apiErr := decodeError(resp.StatusCode, respBody)
		if apiErr.Detail == "" {
			apiErr.Detail = "Unauthorized. Please login again."
		}
		return apiErr
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp.StatusCode, respBody)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// CountryList returns the country codes that have active packages. Public.
func (c *Client) CountryList(ctx context.Context) ([]string, error) {
	var countries []string
	if err := c.do(ctx, http.MethodGet, "/products/countries/", nil, nil, false, &countries); err != nil {
		return nil, fmt.Errorf("fetch country list: %w", err)
	}
	return countries, nil
}

// ProductsByCountry returns the active packages for a country. Public.
func (c *Client) ProductsByCountry(ctx context.Context, countryCode string) ([]ProductPackage, error) {
	if countryCode == "" {
		return nil, errors.New("country code is required")
	}
	query := url.Values{}
	query.Set("country_code", strings.ToUpper(countryCode))
	query.Set("is_active", "true")

	var products []ProductPackage
	if err := c.do(ctx, http.MethodGet, "/products/", query, nil, false, &products); err != nil {
		return nil, fmt.Errorf("fetch products for %s: %w", countryCode, err)
	}
	return products, nil
}

// ProductDetails returns a single package, or nil when it does not exist. Public.
func (c *Client) ProductDetails(ctx context.Context, productID int64) (*ProductPackage, error) {
	var product ProductPackage
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", productID), nil, nil, false, &product)
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch product %d: %w", productID, err)
	}
	return &product, nil
}

// CreatePublicOrder creates an order through the public endpoint, no auth.
func (c *Client) CreatePublicOrder(ctx context.Context, in *OrderCreate) (*Order, error) {
	if in == nil || in.CustomerEmail == "" || in.ProductPackageID == 0 || in.ResellerID == 0 {
		return nil, errors.New("missing required fields for order creation")
	}

	var order Order
	if err := c.do(ctx, http.MethodPost, "/orders/public/", nil, in, false, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Login exchanges reseller credentials for a bearer token. The endpoint
// takes a form-encoded body, not JSON.
func (c *Client) Login(ctx context.Context, email, password string) (*Token, error) {
	if email == "" || password == "" {
		return nil, errors.New("email and password are required")
	}

	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login",
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeError(resp.StatusCode, respBody)
	}

	var token Token
	if err := json.Unmarshal(respBody, &token); err != nil {
		return nil, fmt.Errorf("decode login response: %w", err)
	}
	return &token, nil
}

// CreatePaymentIntent asks the backend for a processor payment intent for
// an order. Authenticated.
func (c *Client) CreatePaymentIntent(ctx context.Context, orderID int64) (*PaymentIntent, error) {
	if orderID == 0 {
		return nil, errors.New("order id is required to create a payment intent")
	}

	payload := map[string]int64{"order_id": orderID}
	var intent PaymentIntent
	if err := c.do(ctx, http.MethodPost, "/payments/create-payment-intent", nil, payload, true, &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

// UpdateOrderStatus patches an order's status. Authenticated.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID int64, status string) (*Order, error) {
	payload := map[string]string{"order_status": status}
	var order Order
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/orders/%d", orderID), nil, payload, true, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Profile returns the logged-in reseller. Authenticated.
func (c *Client) Profile(ctx context.Context) (*Reseller, error) {
	var profile Reseller
	if err := c.do(ctx, http.MethodGet, "/resellers/me", nil, nil, true, &profile); err != nil {
		return nil, fmt.Errorf("fetch reseller profile: %w", err)
	}
	return &profile, nil
}

// Sales returns a page of the reseller's orders. Authenticated.
func (c *Client) Sales(ctx context.Context, skip, limit int) ([]Order, error) {
	query := url.Values{}
	query.Set("skip", fmt.Sprint(skip))
	query.Set("limit", fmt.Sprint(limit))

	var sales []Order
	if err := c.do(ctx, http.MethodGet, "/orders/my-sales/", query, nil, true, &sales); err != nil {
		return nil, fmt.Errorf("fetch reseller sales: %w", err)
	}
	return sales, nil
}

// SalesCount returns the reseller's total number of sales. The endpoint
// responds with a bare integer. Authenticated.
func (c *Client) SalesCount(ctx context.Context) (int, error) {
	var count int
	if err := c.do(ctx, http.MethodGet, "/orders/my-sales/count", nil, nil, true, &count); err != nil {
		return 0, fmt.Errorf("fetch sales count: %w", err)
	}
	return count, nil
}

// UpdatePromotionDetails replaces the reseller's promotion text and returns
// the updated profile. Authenticated.
func (c *Client) UpdatePromotionDetails(ctx context.Context, details string) (*Reseller, error) {
	payload := map[string]string{"promotion_details": details}
	var profile Reseller
	if err := c.do(ctx, http.MethodPut, "/resellers/me/promotion-details", nil, payload, true, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Commissions returns a page of commission records, optionally filtered by
// status. Authenticated.
func (c *Client) Commissions(ctx context.Context, status string, skip, limit int) ([]Commission, error) {
	query := url.Values{}
	query.Set("skip", fmt.Sprint(skip))
	query.Set("limit", fmt.Sprint(limit))
	if status != "" {
		query.Set("status", status)
	}

	var commissions []Commission
	if err := c.do(ctx, http.MethodGet, "/resellers/me/commissions", query, nil, true, &commissions); err != nil {
		return nil, fmt.Errorf("fetch reseller commissions: %w", err)
	}
	return commissions, nil
}
