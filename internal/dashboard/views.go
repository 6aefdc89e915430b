// Package dashboard loads and renders the reseller views: profile, sales,
// commissions. Read-only except for the promotion-details update. Each
// loader fetches independently; no ordering between them.
package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/andydyb/roamstop-v1/internal/api"
)

const (
	DefaultPageSize = 20

	// unpaidFetchLimit mirrors the oversized fetch the total-unpaid figure
	// is computed from. The figure undercounts once either status bucket
	// exceeds this limit.
	unpaidFetchLimit = 10000
)

type API interface {
	Profile(ctx context.Context) (*api.Reseller, error)
	Sales(ctx context.Context, skip, limit int) ([]api.Order, error)
	SalesCount(ctx context.Context) (int, error)
	Commissions(ctx context.Context, status string, skip, limit int) ([]api.Commission, error)
	UpdatePromotionDetails(ctx context.Context, details string) (*api.Reseller, error)
}

type Loader struct {
	api    API
	origin string
}

// NewLoader builds a dashboard over the API client. origin is the public
// storefront origin used for recruitment links.
func NewLoader(dashAPI API, origin string) *Loader {
	return &Loader{api: dashAPI, origin: strings.TrimRight(origin, "/")}
}

type ProfileView struct {
	DisplayName      string
	PromotionDetails string
	RecruitmentLink  string
	Profile          *api.Reseller
}

// Profile loads the reseller and derives the display fields: business name
// falling back to email, and the ?ref= landing link for recruitment.
func (l *Loader) Profile(ctx context.Context) (*ProfileView, error) {
	profile, err := l.api.Profile(ctx)
	if err != nil {
		return nil, err
	}

	view := &ProfileView{Profile: profile, DisplayName: profile.Email}
	if profile.BusinessName != nil && *profile.BusinessName != "" {
		view.DisplayName = *profile.BusinessName
	}
	if profile.PromotionDetails != nil {
		view.PromotionDetails = *profile.PromotionDetails
	}
	view.RecruitmentLink = fmt.Sprintf("%s/?ref=%d", l.origin, profile.ID)
	return view, nil
}

// SalesPage returns one fixed-size page of the reseller's sales.
func (l *Loader) SalesPage(ctx context.Context, page int) ([]api.Order, error) {
	if page < 0 {
		page = 0
	}
	return l.api.Sales(ctx, page*DefaultPageSize, DefaultPageSize)
}

func (l *Loader) SalesCount(ctx context.Context) (int, error) {
	return l.api.SalesCount(ctx)
}

// CommissionsPage returns one page of commissions, optionally filtered by
// status ("" for all).
func (l *Loader) CommissionsPage(ctx context.Context, status string, page int) ([]api.Commission, error) {
	if page < 0 {
		page = 0
	}
	return l.api.Commissions(ctx, status, page*DefaultPageSize, DefaultPageSize)
}

// TotalUnpaid sums the UNPAID and READY_FOR_PAYOUT buckets fetched with an
// oversized limit. Approximate: truncated pages undercount silently.
func (l *Loader) TotalUnpaid(ctx context.Context) (decimal.Decimal, error) {
	unpaid, err := l.api.Commissions(ctx, api.CommissionStatusUnpaid, 0, unpaidFetchLimit)
	if err != nil {
		return decimal.Zero, fmt.Errorf("fetch unpaid commissions: %w", err)
	}
	ready, err := l.api.Commissions(ctx, api.CommissionStatusReadyForPayout, 0, unpaidFetchLimit)
	if err != nil {
		return decimal.Zero, fmt.Errorf("fetch ready-for-payout commissions: %w", err)
	}

	total := decimal.Zero
	for _, c := range append(unpaid, ready...) {
		total = total.Add(c.Amount)
	}
	return total, nil
}

// UpdatePromotion performs the single authenticated update and echoes the
// server's stored value back for re-display.
func (l *Loader) UpdatePromotion(ctx context.Context, details string) (string, error) {
	profile, err := l.api.UpdatePromotionDetails(ctx, details)
	if err != nil {
		return "", err
	}
	if profile.PromotionDetails == nil {
		return "", nil
	}
	return *profile.PromotionDetails, nil
}
