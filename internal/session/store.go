package session

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/andydyb/roamstop-v1/internal/api"
)

// Store is raw string-keyed persistence across runs, the local-storage
// analog. Implementations: sqlite file (real) and in-memory map (tests).
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// Recognized keys. Nothing else is ever written.
const (
	keyAccessToken          = "roamstop_access_token"
	keySelectedProductID    = "selectedProductId"
	keySelectedProductName  = "selectedProductName"
	keySelectedProductPrice = "selectedProductPrice"
	keyResellerID           = "resellerId"
	keyLastOrder            = "lastOrderDetails"
	keyLastPaymentStatus    = "lastPaymentIntentStatus"
)

// Selection is the single product the visitor picked from the catalog.
type Selection struct {
	ProductID    int64
	ProductName  string
	ProductPrice decimal.Decimal
}

// Session gives each recognized key a typed read/write contract over a
// Store. Write-through, read-on-demand; no expiry.
type Session struct {
	store Store
}

func New(store Store) *Session {
	return &Session{store: store}
}

// AccessToken returns the stored bearer token, or "" when logged out.
// Satisfies api.TokenSource.
func (s *Session) AccessToken() string {
	token, _, _ := s.store.Get(keyAccessToken)
	return token
}

func (s *Session) SetAccessToken(token string) error {
	return s.store.Set(keyAccessToken, token)
}

// ClearAccessToken logs the reseller out. Only the token is cleared; other
// keys are consumed by the flows that own them.
func (s *Session) ClearAccessToken() error {
	return s.store.Delete(keyAccessToken)
}

func (s *Session) SetSelection(sel Selection) error {
	if err := s.store.Set(keySelectedProductID, strconv.FormatInt(sel.ProductID, 10)); err != nil {
		return err
	}
	if err := s.store.Set(keySelectedProductName, sel.ProductName); err != nil {
		return err
	}
	return s.store.Set(keySelectedProductPrice, sel.ProductPrice.String())
}

// Selection returns the stored product selection, or nil when no product
// has been selected (or the stored values no longer parse).
func (s *Session) Selection() (*Selection, error) {
	rawID, ok, err := s.store.Get(keySelectedProductID)
	if err != nil || !ok {
		return nil, err
	}
	name, _, err := s.store.Get(keySelectedProductName)
	if err != nil {
		return nil, err
	}
	rawPrice, _, err := s.store.Get(keySelectedProductPrice)
	if err != nil {
		return nil, err
	}

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return nil, nil
	}
	price, err := decimal.NewFromString(rawPrice)
	if err != nil {
		price = decimal.Zero
	}
	return &Selection{ProductID: id, ProductName: name, ProductPrice: price}, nil
}

func (s *Session) ClearSelection() error {
	for _, key := range []string{keySelectedProductID, keySelectedProductName, keySelectedProductPrice} {
		if err := s.store.Delete(key); err != nil {
			return err
		}
	}
	return nil
}

// SetResellerID records the referral attribution. A later visit with a new
// referral id overwrites it.
func (s *Session) SetResellerID(id string) error {
	return s.store.Set(keyResellerID, id)
}

func (s *Session) ResellerID() (string, error) {
	id, _, err := s.store.Get(keyResellerID)
	return id, err
}

func (s *Session) SetLastOrder(order *api.Order) error {
	raw, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("marshal last order: %w", err)
	}
	return s.store.Set(keyLastOrder, string(raw))
}

// LastOrder returns the snapshot stored at checkout completion, or nil.
func (s *Session) LastOrder() (*api.Order, error) {
	raw, ok, err := s.store.Get(keyLastOrder)
	if err != nil || !ok {
		return nil, err
	}
	var order api.Order
	if err := json.Unmarshal([]byte(raw), &order); err != nil {
		return nil, fmt.Errorf("unmarshal last order: %w", err)
	}
	return &order, nil
}

func (s *Session) SetLastPaymentStatus(status string) error {
	return s.store.Set(keyLastPaymentStatus, status)
}

func (s *Session) LastPaymentStatus() (string, error) {
	status, _, err := s.store.Get(keyLastPaymentStatus)
	return status, err
}

// ClearLastOrder drops the order snapshot and payment status after the
// success view has shown them.
func (s *Session) ClearLastOrder() error {
	if err := s.store.Delete(keyLastOrder); err != nil {
		return err
	}
	return s.store.Delete(keyLastPaymentStatus)
}
