package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses the client sets optimistically. The authoritative state
// lives server-side and is reconciled by the payment webhook.
const (
	OrderStatusPendingPayment = "PENDING_PAYMENT"
	OrderStatusProcessing     = "PROCESSING"
	OrderStatusFailedPayment  = "FAILED_PAYMENT"
)

const (
	CommissionStatusUnpaid         = "UNPAID"
	CommissionStatusReadyForPayout = "READY_FOR_PAYOUT"
	CommissionStatusPaid           = "PAID"
)

type ProductPackage struct {
	ID                                int64           `json:"id"`
	Name                              string          `json:"name"`
	Description                       *string         `json:"description,omitempty"`
	DurationDays                      int             `json:"duration_days"`
	CountryCode                       string          `json:"country_code"`
	Price                             decimal.Decimal `json:"price"`
	DirectCommissionRateOrAmount      decimal.Decimal `json:"direct_commission_rate_or_amount"`
	RecruitmentCommissionRateOrAmount decimal.Decimal `json:"recruitment_commission_rate_or_amount"`
	IsActive                          bool            `json:"is_active"`
	CreatedAt                         time.Time       `json:"created_at"`
	UpdatedAt                         time.Time       `json:"updated_at"`
}

type Reseller struct {
	ID               int64     `json:"id"`
	Email            string    `json:"email"`
	ResellerType     string    `json:"reseller_type"`
	BusinessName     *string   `json:"business_name,omitempty"`
	ShippingAddress  *string   `json:"shipping_address,omitempty"`
	PromotionDetails *string   `json:"promotion_details,omitempty"`
	IsActive         bool      `json:"is_active"`
	IsSuperuser      bool      `json:"is_superuser"`
	RecruiterID      *int64    `json:"recruiter_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type Order struct {
	ID                     int64           `json:"id"`
	CustomerEmail          string          `json:"customer_email"`
	CustomerName           *string         `json:"customer_name,omitempty"`
	ProductPackageID       int64           `json:"product_package_id"`
	ResellerID             int64           `json:"reseller_id"`
	PricePaid              decimal.Decimal `json:"price_paid"`
	CurrencyPaid           string          `json:"currency_paid"`
	DurationDaysAtPurchase int             `json:"duration_days_at_purchase"`
	CountryCodeAtPurchase  string          `json:"country_code_at_purchase"`
	OrderStatus            string          `json:"order_status"`
	StripePaymentIntentID  *string         `json:"stripe_payment_intent_id,omitempty"`
	CreatedAt              time.Time       `json:"created_at"`
	UpdatedAt              time.Time       `json:"updated_at"`

	ProductPackage ProductPackage `json:"product_package"`
	Reseller       Reseller       `json:"reseller"`
}

// OrderCreate is the payload for the public order endpoint.
type OrderCreate struct {
	CustomerEmail    string  `json:"customer_email"`
	CustomerName     *string `json:"customer_name,omitempty"`
	ProductPackageID int64   `json:"product_package_id"`
	ResellerID       int64   `json:"reseller_id"`
}

type CommissionOrder struct {
	ID            int64     `json:"id"`
	CustomerEmail *string   `json:"customer_email,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type CommissionProductPackage struct {
	ID   int64   `json:"id"`
	Name *string `json:"name,omitempty"`
}

type Commission struct {
	ID                      int64           `json:"id"`
	OrderID                 int64           `json:"order_id"`
	ResellerID              int64           `json:"reseller_id"`
	CommissionType          string          `json:"commission_type"`
	Amount                  decimal.Decimal `json:"amount"`
	Currency                string          `json:"currency"`
	ProductPackageIDAtSale  int64           `json:"product_package_id_at_sale"`
	OriginalOrderResellerID *int64          `json:"original_order_reseller_id,omitempty"`
	CommissionStatus        string          `json:"commission_status"`
	CreatedAt               time.Time       `json:"created_at"`
	UpdatedAt               time.Time       `json:"updated_at"`

	Order          *CommissionOrder          `json:"order,omitempty"`
	ProductPackage *CommissionProductPackage `json:"product_package,omitempty"`
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type PaymentIntent struct {
	ClientSecret    string `json:"client_secret"`
	OrderID         int64  `json:"order_id"`
	PaymentIntentID string `json:"payment_intent_id"`
}
